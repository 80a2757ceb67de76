package addrspec

// A Parser parses addr-spec productions under a set of capability flags.
// The zero value accepts only the bare grammar: no comments, no folding
// white space, no domain literals, no normalization. Parsers are stateless
// and safe for concurrent use.
type Parser struct {
	// Comments permits parenthesized comments at the grammar boundaries
	// (around the local part, the "@" and the domain). Comment text is
	// discarded; it is never retained in the parsed value.
	Comments bool
	// FoldingWhiteSpace permits folding white space at the grammar
	// boundaries and inside domain literals, where it is discarded.
	FoldingWhiteSpace bool
	// Literals permits bracketed domain literals such as "[192.0.2.1]".
	// The literal content is validated for grammar only; the engine does
	// not check that it is a well-formed IP address.
	Literals bool
	// Normalization applies Unicode canonical composition (NFC) to every
	// stored text span, as recommended by RFC 6532 3.1, so that
	// codepoint-equivalent inputs serialize identically.
	Normalization bool
}

// Parse parses a single addr-spec. The error, if any, is a *ParseError
// carrying the kind of violation and the byte offset of the first
// offending byte.
func (p *Parser) Parse(address string) (*AddrSpec, error) {
	a, perr := (&addrParser{opts: p, scan: scanner{input: address}}).parse()
	if perr != nil {
		return nil, perr
	}
	return a, nil
}

// ParseBytes is Parse for byte-slice inputs. The returned AddrSpec never
// aliases address.
func (p *Parser) ParseBytes(address []byte) (*AddrSpec, error) {
	return p.Parse(string(address))
}

// addrParser drives the scanner through the addr-spec grammar with a
// one-token lookahead.
type addrParser struct {
	opts *Parser
	scan scanner
	tok  token
}

func (p *addrParser) advance() *ParseError {
	t, err := p.scan.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *addrParser) text(sp span) string {
	s := p.scan.input[sp.start:sp.end]
	if p.opts.Normalization {
		return normalizeNFC(s)
	}
	return s
}

func (p *addrParser) parse() (*AddrSpec, *ParseError) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.skipCFWS(); err != nil {
		return nil, err
	}
	local, err := p.parseLocalPart()
	if err != nil {
		return nil, err
	}
	if err := p.skipCFWS(); err != nil {
		return nil, err
	}
	if p.tok.typ != tokenAt {
		return nil, parseErr(UnexpectedToken, p.tok.span.start, "expected '@'")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.skipCFWS(); err != nil {
		return nil, err
	}
	domain, err := p.parseDomain()
	if err != nil {
		return nil, err
	}
	if err := p.skipCFWS(); err != nil {
		return nil, err
	}
	if p.tok.typ != tokenEOF {
		return nil, &ParseError{
			Kind:    TrailingInput,
			Offset:  p.tok.span.start,
			Length:  len(p.scan.input) - p.tok.span.start,
			Message: "expected end of address",
		}
	}
	return &AddrSpec{local: local, domain: domain}, nil
}

// skipCFWS consumes comments and folding white space at a grammar
// boundary, enforcing the corresponding capabilities.
func (p *addrParser) skipCFWS() *ParseError {
	for {
		switch p.tok.typ {
		case tokenFWS:
			if !p.opts.FoldingWhiteSpace {
				return p.disabled("folding white space is not enabled")
			}
		case tokenComment:
			if !p.opts.Comments {
				return p.disabled("comments are not enabled")
			}
		default:
			return nil
		}
		if err := p.advance(); err != nil {
			return err
		}
	}
}

func (p *addrParser) disabled(message string) *ParseError {
	return &ParseError{
		Kind:    DisabledFeature,
		Offset:  p.tok.span.start,
		Length:  p.tok.span.len(),
		Message: message,
	}
}

func (p *addrParser) parseLocalPart() (LocalPart, *ParseError) {
	switch p.tok.typ {
	case tokenQuotedString:
		sp := p.tok.span
		content := unescapeQuotedString(p.scan.input[sp.start+1 : sp.end-1])
		if content == "" {
			return nil, &ParseError{
				Kind:    EmptyPart,
				Offset:  sp.start,
				Length:  sp.len(),
				Message: "empty quoted string in local part",
			}
		}
		if p.opts.Normalization {
			content = normalizeNFC(content)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return QuotedString{Content: content}, nil
	case tokenAtom:
		segments, err := p.parseDotAtom("empty label in local part")
		if err != nil {
			return nil, err
		}
		return DotAtom{Segments: segments}, nil
	case tokenDot:
		return nil, parseErr(EmptyDotAtomSegment, p.tok.span.start, "empty label in local part")
	case tokenEOF, tokenAt:
		return nil, parseErr(EmptyPart, p.tok.span.start, "local part cannot be empty")
	default:
		return nil, parseErr(UnexpectedToken, p.tok.span.start, "expected local part")
	}
}

// parseDotAtom consumes Atom (Dot Atom)*, starting at the current Atom
// token. A dot not followed by another atom is reported at the position
// where the atom was required.
func (p *addrParser) parseDotAtom(emptyLabel string) ([]string, *ParseError) {
	segments := []string{p.text(p.tok.span)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.tok.typ == tokenDot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.typ != tokenAtom {
			return nil, parseErr(EmptyDotAtomSegment, p.tok.span.start, emptyLabel)
		}
		segments = append(segments, p.text(p.tok.span))
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return segments, nil
}

func (p *addrParser) parseDomain() (Domain, *ParseError) {
	switch p.tok.typ {
	case tokenDomainLiteral:
		sp := p.tok.span
		if !p.opts.Literals {
			return nil, p.disabled("domain literals are not enabled")
		}
		content, err := p.literalContent(sp)
		if err != nil {
			return nil, err
		}
		if content == "" {
			return nil, &ParseError{
				Kind:    EmptyPart,
				Offset:  sp.start,
				Length:  sp.len(),
				Message: "empty domain literal",
			}
		}
		if p.opts.Normalization {
			content = normalizeNFC(content)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return DomainLiteral{Content: content}, nil
	case tokenAtom:
		labels, err := p.parseDotAtom("empty label in domain")
		if err != nil {
			return nil, err
		}
		return DomainName{Labels: labels}, nil
	case tokenDot:
		return nil, parseErr(EmptyDotAtomSegment, p.tok.span.start, "empty label in domain")
	case tokenEOF:
		return nil, parseErr(EmptyPart, p.tok.span.start, "domain cannot be empty")
	default:
		return nil, parseErr(UnexpectedToken, p.tok.span.start, "expected domain")
	}
}

// literalContent extracts the interior of a domain-literal token. Folding
// white space inside the brackets is discarded when the capability permits
// it and rejected otherwise; everything kept must be dtext.
func (p *addrParser) literalContent(sp span) (string, *ParseError) {
	raw := p.scan.input[sp.start+1 : sp.end-1]
	base := sp.start + 1
	var stripped []byte
	s := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if !isWSP(c) && c != '\r' && c != '\n' {
			continue
		}
		if !p.opts.FoldingWhiteSpace {
			return "", &ParseError{
				Kind:    DisabledFeature,
				Offset:  base + i,
				Message: "folding white space is not enabled",
			}
		}
		if c == '\r' && (i+1 >= len(raw) || raw[i+1] != '\n') {
			return "", parseErr(InvalidCharacter, base+i, "bare CR in domain literal")
		}
		if c == '\n' && (i == 0 || raw[i-1] != '\r') {
			return "", parseErr(InvalidCharacter, base+i, "bare line break in domain literal")
		}
		if stripped == nil {
			stripped = make([]byte, 0, len(raw))
		}
		stripped = append(stripped, raw[s:i]...)
		s = i + 1
	}
	if stripped == nil {
		return raw, nil
	}
	return string(append(stripped, raw[s:]...)), nil
}

// unescapeQuotedString resolves quoted-pair escapes in the interior of a
// quoted string. The scanner has already validated every escape.
func unescapeQuotedString(s string) string {
	var r []byte
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			continue
		}
		if r == nil {
			r = make([]byte, 0, len(s))
		}
		r = append(r, s[start:i]...)
		i++
		if i < len(s) {
			r = append(r, s[i])
		}
		start = i + 1
	}
	if r == nil {
		return s
	}
	return string(append(r, s[start:]...))
}
