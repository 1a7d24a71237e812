package types

// OutputKind tags a ComparableOutput
type OutputKind int

const (
	OutputText OutputKind = iota
	OutputBinary
)

// ComparableOutput is the normalized form of an output used for equality checks.
// The kind is decided once, when the value is built.
type ComparableOutput struct {
	Kind OutputKind
	Text string // OutputText
	Data []byte // OutputBinary
}

// Text wraps decoded text
func Text(s string) ComparableOutput {
	return ComparableOutput{Kind: OutputText, Text: s}
}

// Binary wraps bytes that are not valid text
func Binary(b []byte) ComparableOutput {
	return ComparableOutput{Kind: OutputBinary, Data: b}
}

// IsText reports whether the output was decoded as text
func (c ComparableOutput) IsText() bool {
	return c.Kind == OutputText
}
