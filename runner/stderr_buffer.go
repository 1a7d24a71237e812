package runner

import (
	"sync"
)

const defaultStderrTailBytes = 64 * 1024 // kept in memory per case

// tailBuffer keeps only the last N bytes written to it. Subject stderr is
// captured for diagnostics but never compared, so the head can be dropped.
type tailBuffer struct {
	maxBytes int

	mu       sync.Mutex
	total    int64
	contents []byte
	overflow bool
}

func newTailBuffer(maxBytes int) *tailBuffer {
	if maxBytes <= 0 {
		maxBytes = defaultStderrTailBytes
	}
	return &tailBuffer{
		maxBytes: maxBytes,
		contents: make([]byte, 0, 1024),
	}
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.total += int64(len(p))
	b.contents = append(b.contents, p...)
	if len(b.contents) > b.maxBytes {
		b.contents = b.contents[len(b.contents)-b.maxBytes:]
		b.overflow = true
	}
	return len(p), nil
}

func (b *tailBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	cp := make([]byte, len(b.contents))
	copy(cp, b.contents)
	return cp
}

func (b *tailBuffer) TotalBytes() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

func (b *tailBuffer) Truncated() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.overflow
}

// Snippet returns the retained tail, marked when earlier output was dropped
func (b *tailBuffer) Snippet() string {
	tail := b.Bytes()
	if len(tail) == 0 {
		return ""
	}
	if b.Truncated() {
		return "...(truncated)\n" + string(tail)
	}
	return string(tail)
}
