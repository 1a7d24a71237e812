// Package verify turns captured and expected output into comparable forms and
// decides whether they match.
package verify

import (
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/ethereum-optimism/infra/op-bench/types"
)

// CommentPrefix marks subject output lines that are excluded from comparison
const CommentPrefix = "//"

// Normalize converts raw subject output into its comparable form.
//
// The bytes are decoded as UTF-8, replacing invalid sequences with U+FFFD, so
// the result is always text. Lines starting with CommentPrefix are dropped.
func Normalize(raw []byte) types.ComparableOutput {
	return types.Text(stripCommentLines(decodeLossy(raw)))
}

func decodeLossy(raw []byte) string {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "�")
	}
	return string(decoded)
}

func stripCommentLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, CommentPrefix) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
