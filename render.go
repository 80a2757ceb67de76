package addrspec

import "github.com/mathematic-inc/go-addr-spec/internal/ascii"

// quotedStringEscapes is the set of bytes needing an escape inside a
// serialized quoted string; the escape character itself is always escaped
// by the escaper. WSP is quoted-string content and is emitted raw.
var quotedStringEscapes = ascii.MakeSet('"')

// Append appends the canonical serialization of a to b and returns the
// extended buffer. Comments and folding white space are never emitted;
// they are discarded at parse time by design.
func (a *AddrSpec) Append(b []byte) []byte {
	b = a.local.appendTo(b)
	b = append(b, '@')
	return a.domain.appendTo(b)
}

// String returns the canonical serialization. Two AddrSpec values denote
// the same mailbox exactly when their String results are identical.
func (a *AddrSpec) String() string {
	return string(a.Append(nil))
}

// AppendParts appends the serialized local part and domain to their
// respective buffers, for callers that transport the two over line-based
// protocols and re-insert folding themselves.
func (a *AddrSpec) AppendParts(localPart, domain []byte) ([]byte, []byte) {
	return a.local.appendTo(localPart), a.domain.appendTo(domain)
}

// SerializedParts returns the serialized local part and domain as two
// independent strings.
func (a *AddrSpec) SerializedParts() (localPart, domain string) {
	l, d := a.AppendParts(nil, nil)
	return string(l), string(d)
}

// appendLocalText emits text in dot-atom form when it needs no quoting,
// and as a minimally escaped quoted string otherwise.
func appendLocalText(b []byte, text string) []byte {
	if _, ok := dotAtomSegments(text); ok {
		return append(b, text...)
	}
	b = append(b, '"')
	b = ascii.AppendEscape(b, []byte(text), '\\', quotedStringEscapes)
	return append(b, '"')
}

func (d DotAtom) appendTo(b []byte) []byte {
	return appendLocalText(b, d.Text())
}

func (q QuotedString) appendTo(b []byte) []byte {
	return appendLocalText(b, q.Content)
}

func (d DomainName) appendTo(b []byte) []byte {
	for i, label := range d.Labels {
		if i > 0 {
			b = append(b, '.')
		}
		b = append(b, label...)
	}
	return b
}

func (d DomainLiteral) appendTo(b []byte) []byte {
	b = append(b, '[')
	b = append(b, d.Content...)
	return append(b, ']')
}
