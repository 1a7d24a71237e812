package reporting

import (
	"io"

	"github.com/acarl005/stripansi"
)

// PlainWriter strips ANSI escape sequences before writing to the wrapped
// writer. Writes must not split an escape sequence.
type PlainWriter struct {
	w io.Writer
}

// NewPlainWriter wraps w
func NewPlainWriter(w io.Writer) *PlainWriter {
	return &PlainWriter{w: w}
}

// Write reports len(p) on success so it composes with io.MultiWriter
func (p *PlainWriter) Write(b []byte) (int, error) {
	if _, err := io.WriteString(p.w, stripansi.Strip(string(b))); err != nil {
		return 0, err
	}
	return len(b), nil
}
