package addrspec

import "fmt"

// ErrorKind identifies the grammar rule a ParseError violated.
type ErrorKind int

const (
	// UnterminatedToken reports a quoted string, comment or domain literal
	// that was opened but never closed. The offset is the opening byte.
	UnterminatedToken ErrorKind = iota
	// EmptyDotAtomSegment reports a leading, trailing or doubled dot in a
	// dot-atom or domain name.
	EmptyDotAtomSegment
	// InvalidCharacter reports a byte or codepoint that is not permitted
	// in its grammar context.
	InvalidCharacter
	// UnexpectedToken reports a token of the wrong class where the grammar
	// expects another, such as a missing "@".
	UnexpectedToken
	// DisabledFeature reports input that requires a capability not enabled
	// on the Parser.
	DisabledFeature
	// TrailingInput reports unconsumed bytes after a complete addr-spec.
	TrailingInput
	// EmptyPart reports a local part or domain of zero length.
	EmptyPart
)

func (k ErrorKind) String() string {
	switch k {
	case UnterminatedToken:
		return "unterminated token"
	case EmptyDotAtomSegment:
		return "empty dot-atom segment"
	case InvalidCharacter:
		return "invalid character"
	case UnexpectedToken:
		return "unexpected token"
	case DisabledFeature:
		return "disabled feature"
	case TrailingInput:
		return "trailing input"
	case EmptyPart:
		return "empty part"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError describes the first grammar violation in the input. Parsing
// is fail-fast: at most one ParseError is produced per call, and malformed
// input never panics.
type ParseError struct {
	Kind    ErrorKind
	Offset  int    // byte offset of the first offending byte
	Length  int    // length of the offending run, 0 when not applicable
	Message string // static description of the violated rule
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
}

func parseErr(kind ErrorKind, offset int, message string) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Message: message}
}
