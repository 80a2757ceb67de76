/*
Package addrspec parses and serializes the addr-spec production of the
email address grammar (local-part "@" domain) as defined by RFC 5322
3.4.1 and extended for UTF-8 mailboxes by RFC 6532.

For the most part this package follows the syntax as specified by RFC
5322. Notable divergences:
  - Obsolete address forms (obs-local-part, obs-domain) are not parsed.
  - Comments and folding white space are accepted only when the
    corresponding Parser capabilities are enabled, and are discarded;
    serialization never reproduces them.
  - With normalization enabled, stored text is NFC-normalized as
    recommended by RFC 6532 3.1, so codepoint-equivalent inputs serialize
    to identical bytes. Such strings work well as unique lookup keys.
*/
package addrspec

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// defaultParser accepts the full legal superset of the grammar.
var defaultParser = &Parser{
	Comments:          true,
	FoldingWhiteSpace: true,
	Literals:          true,
	Normalization:     true,
}

// Parse parses address with every capability enabled: comments, folding
// white space, domain literals and NFC normalization.
func Parse(address string) (*AddrSpec, error) {
	return defaultParser.Parse(address)
}

// Normalize parses address and returns its canonical serialization. It is
// shorthand for Parse followed by String.
func Normalize(address string) (string, error) {
	a, err := Parse(address)
	if err != nil {
		return "", err
	}
	return a.String(), nil
}

// LocalPart is the local part of an addr-spec: either a DotAtom or a
// QuotedString.
type LocalPart interface {
	// Text returns the semantic (unescaped, unquoted) text.
	Text() string
	appendTo(b []byte) []byte
	isLocalPart()
}

// DotAtom is an unquoted local part: atom segments joined by single dots.
// Segments are non-empty and composed solely of atext characters.
type DotAtom struct {
	Segments []string
}

func (DotAtom) isLocalPart() {}

// Text returns the segments joined by dots.
func (d DotAtom) Text() string { return strings.Join(d.Segments, ".") }

// QuotedString is a quoted local part. Content holds the semantic text
// with all quoted-pair escapes already resolved.
type QuotedString struct {
	Content string
}

func (QuotedString) isLocalPart() {}

// Text returns the unescaped content.
func (q QuotedString) Text() string { return q.Content }

// Domain is the domain of an addr-spec: either a DomainName or a
// DomainLiteral.
type Domain interface {
	// Text returns the semantic domain text, without brackets for
	// literals.
	Text() string
	appendTo(b []byte) []byte
	isDomain()
}

// DomainName is a DNS-style domain: labels joined by single dots. Labels
// are non-empty and composed solely of atext characters.
type DomainName struct {
	Labels []string
}

func (DomainName) isDomain() {}

// Text returns the labels joined by dots.
func (d DomainName) Text() string { return strings.Join(d.Labels, ".") }

// DomainLiteral is a bracketed address literal such as "[192.0.2.1]".
// Content holds the interior without brackets. The engine validates the
// bracket and dtext grammar only; it never interprets the content as an
// actual IP address.
type DomainLiteral struct {
	Content string
}

func (DomainLiteral) isDomain() {}

// Text returns the unbracketed literal content.
func (d DomainLiteral) Text() string { return d.Content }

// AddrSpec is a parsed, validated addr-spec. Values are immutable: they
// are produced by a Parser or by the New constructors, and any change
// means constructing a new value. An AddrSpec is safe for concurrent use.
type AddrSpec struct {
	local  LocalPart
	domain Domain
}

// LocalPart returns the local part variant.
func (a *AddrSpec) LocalPart() LocalPart { return a.local }

// Domain returns the domain variant.
func (a *AddrSpec) Domain() Domain { return a.domain }

// IsQuoted reports whether the local part requires quoted-string form
// when serialized.
func (a *AddrSpec) IsQuoted() bool {
	_, ok := dotAtomSegments(a.local.Text())
	return !ok
}

// IsLiteral reports whether the domain is a bracketed literal.
func (a *AddrSpec) IsLiteral() bool {
	_, ok := a.domain.(DomainLiteral)
	return ok
}

// Parts returns the semantic local part and domain texts.
func (a *AddrSpec) Parts() (localPart, domain string) {
	return a.local.Text(), a.domain.Text()
}

// Equal reports whether a and b serialize to identical canonical bytes,
// the engine's definition of denoting the same mailbox. It holds across
// quoting differences and, when the values were parsed with normalization
// enabled, across Unicode canonical equivalence.
func (a *AddrSpec) Equal(b *AddrSpec) bool {
	if a == nil || b == nil {
		return a == b
	}
	return bytes.Equal(a.Append(nil), b.Append(nil))
}

// New builds an AddrSpec from a semantic local part and a domain name,
// applying the same validation as parsing plus NFC normalization. The
// local part may be any text a quoted string can carry; the domain must
// be a valid dot-atom.
func New(localPart, domain string) (*AddrSpec, error) {
	local, perr := newLocalPart(localPart)
	if perr != nil {
		return nil, perr
	}
	d, perr := newDomainName(domain)
	if perr != nil {
		return nil, perr
	}
	return &AddrSpec{local: local, domain: d}, nil
}

// NewLiteral builds an AddrSpec with a literal domain from its semantic
// parts, applying the same validation as parsing plus NFC normalization.
// The domain is the unbracketed literal content and must be dtext.
func NewLiteral(localPart, domain string) (*AddrSpec, error) {
	local, perr := newLocalPart(localPart)
	if perr != nil {
		return nil, perr
	}
	if domain == "" {
		return nil, parseErr(EmptyPart, 0, "empty domain literal")
	}
	for i := 0; i < len(domain); {
		c := domain[i]
		if c < 0x80 {
			if !isDtext(c) {
				return nil, parseErr(InvalidCharacter, i, "invalid character in literal domain")
			}
			i++
			continue
		}
		size, perr := decodeRuneAt(domain, i)
		if perr != nil {
			return nil, perr
		}
		i += size
	}
	return &AddrSpec{
		local:  local,
		domain: DomainLiteral{Content: normalizeNFC(domain)},
	}, nil
}

func newLocalPart(s string) (LocalPart, *ParseError) {
	if s == "" {
		return nil, parseErr(EmptyPart, 0, "local part cannot be empty")
	}
	for i := 0; i < len(s); {
		c := s[i]
		if c < 0x80 {
			if !isVchar(c) && !isWSP(c) {
				return nil, parseErr(InvalidCharacter, i, "invalid character in local part")
			}
			i++
			continue
		}
		size, perr := decodeRuneAt(s, i)
		if perr != nil {
			return nil, perr
		}
		i += size
	}
	s = normalizeNFC(s)
	if segments, ok := dotAtomSegments(s); ok {
		return DotAtom{Segments: segments}, nil
	}
	return QuotedString{Content: s}, nil
}

// newDomainName validates a dot-atom domain the same way the parser does,
// reusing the grammar machinery so error offsets stay accurate.
func newDomainName(s string) (Domain, *ParseError) {
	p := &addrParser{opts: &Parser{Normalization: true}, scan: scanner{input: s}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.typ == tokenDomainLiteral {
		return nil, parseErr(UnexpectedToken, 0, "expected domain name, not literal")
	}
	d, err := p.parseDomain()
	if err != nil {
		return nil, err
	}
	if p.tok.typ != tokenEOF {
		return nil, &ParseError{
			Kind:    TrailingInput,
			Offset:  p.tok.span.start,
			Length:  len(s) - p.tok.span.start,
			Message: "invalid character in domain",
		}
	}
	return d, nil
}

func decodeRuneAt(s string, i int) (int, *ParseError) {
	r, size := utf8.DecodeRuneInString(s[i:])
	if r == utf8.RuneError && size <= 1 {
		return 0, parseErr(InvalidCharacter, i, "malformed UTF-8 sequence")
	}
	return size, nil
}

// dotAtomSegments splits s into dot-atom segments, reporting whether s is
// representable as a dot-atom at all.
func dotAtomSegments(s string) ([]string, bool) {
	if s == "" {
		return nil, false
	}
	segments := strings.Split(s, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, false
		}
		for i := 0; i < len(segment); i++ {
			if !isAtext(segment[i]) {
				return nil, false
			}
		}
	}
	return segments, true
}
