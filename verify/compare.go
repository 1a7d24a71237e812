package verify

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/ethereum-optimism/infra/op-bench/types"
)

// Compare reports whether actual matches expected.
//
// When both sides are text, trailing whitespace is ignored and the rest must
// match exactly. Otherwise the raw bytes are compared after trailing '\n' and
// '\r' bytes are removed from each side.
func Compare(actual types.ComparableOutput, actualRaw []byte, expected types.ComparableOutput, expectedRaw []byte) bool {
	if actual.IsText() && expected.IsText() {
		return strings.TrimRightFunc(actual.Text, unicode.IsSpace) == strings.TrimRightFunc(expected.Text, unicode.IsSpace)
	}
	return bytes.Equal(trimNewlines(actualRaw), trimNewlines(expectedRaw))
}

func trimNewlines(b []byte) []byte {
	return bytes.TrimRight(b, "\r\n")
}
