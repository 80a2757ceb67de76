package addrspec

import "unicode/utf8"

// span is a byte-offset reference into the scanner's input, end exclusive.
// Spans never outlive the parse call that produced them.
type span struct {
	start, end int
}

func (sp span) len() int { return sp.end - sp.start }

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenAtom
	tokenDot
	tokenAt
	tokenQuotedString
	tokenDomainLiteral
	tokenComment
	tokenFWS
)

type token struct {
	typ  tokenType
	span span
}

// scanner is a cursor over the input producing grammar tokens. It
// recognizes the full token alphabet unconditionally; capability gating is
// the parser's concern, so that a disabled feature can be reported as such
// rather than as a stray character.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) next() (token, *ParseError) {
	if s.pos >= len(s.input) {
		return token{typ: tokenEOF, span: span{s.pos, s.pos}}, nil
	}
	switch c := s.input[s.pos]; {
	case c == '.':
		return s.single(tokenDot), nil
	case c == '@':
		return s.single(tokenAt), nil
	case c == '"':
		return s.scanQuotedString()
	case c == '(':
		return s.scanComment()
	case c == '[':
		return s.scanDomainLiteral()
	case isWSP(c) || c == '\r' || c == '\n':
		return s.scanFWS()
	default:
		return s.scanAtom()
	}
}

func (s *scanner) single(typ tokenType) token {
	t := token{typ: typ, span: span{s.pos, s.pos + 1}}
	s.pos++
	return t
}

// decodeRune validates the UTF-8 sequence at the cursor and returns its
// width. Called only for lead bytes at or above 0x80.
func (s *scanner) decodeRune() (int, *ParseError) {
	r, size := utf8.DecodeRuneInString(s.input[s.pos:])
	if r == utf8.RuneError && size <= 1 {
		return 0, parseErr(InvalidCharacter, s.pos, "malformed UTF-8 sequence")
	}
	return size, nil
}

func (s *scanner) unterminated(start int, message string) *ParseError {
	return &ParseError{
		Kind:    UnterminatedToken,
		Offset:  start,
		Length:  len(s.input) - start,
		Message: message,
	}
}

func (s *scanner) scanAtom() (token, *ParseError) {
	start := s.pos
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		if c < 0x80 {
			if !isAtext(c) {
				break
			}
			s.pos++
			continue
		}
		size, err := s.decodeRune()
		if err != nil {
			return token{}, err
		}
		s.pos += size
	}
	if s.pos == start {
		return token{}, parseErr(InvalidCharacter, start, "invalid character")
	}
	return token{typ: tokenAtom, span: span{start, s.pos}}, nil
}

func (s *scanner) scanQuotedString() (token, *ParseError) {
	start := s.pos
	s.pos++
	for s.pos < len(s.input) {
		switch c := s.input[s.pos]; {
		case c == '"':
			s.pos++
			return token{typ: tokenQuotedString, span: span{start, s.pos}}, nil
		case c == '\\':
			s.pos++
			if s.pos < len(s.input) {
				if err := s.scanQuotedPair(); err != nil {
					return token{}, err
				}
			}
		case c < 0x80:
			// WSP is quoted-string content (RFC 5322 3.2.4), kept verbatim.
			if !isQtext(c) && !isWSP(c) {
				return token{}, parseErr(InvalidCharacter, s.pos, "invalid character in quoted string")
			}
			s.pos++
		default:
			size, err := s.decodeRune()
			if err != nil {
				return token{}, err
			}
			s.pos += size
		}
	}
	return token{}, s.unterminated(start, "unterminated quoted string")
}

// scanQuotedPair consumes the character following a backslash. Any VCHAR
// or WSP may be escaped (RFC 5322 3.2.1).
func (s *scanner) scanQuotedPair() *ParseError {
	c := s.input[s.pos]
	if c < 0x80 {
		if !isVchar(c) && !isWSP(c) {
			return parseErr(InvalidCharacter, s.pos, "invalid character in quoted pair")
		}
		s.pos++
		return nil
	}
	size, err := s.decodeRune()
	if err != nil {
		return err
	}
	s.pos += size
	return nil
}

func (s *scanner) scanComment() (token, *ParseError) {
	start := s.pos
	s.pos++
	depth := 1
	for s.pos < len(s.input) {
		switch c := s.input[s.pos]; {
		case c == '(':
			depth++
			s.pos++
		case c == ')':
			depth--
			s.pos++
			if depth == 0 {
				return token{typ: tokenComment, span: span{start, s.pos}}, nil
			}
		case c == '\\':
			s.pos++
			if s.pos < len(s.input) {
				if err := s.scanQuotedPair(); err != nil {
					return token{}, err
				}
			}
		case c < 0x80:
			// Line breaks are legal inside comments as folding white space.
			if !isVchar(c) && !isWSP(c) && c != '\r' && c != '\n' {
				return token{}, parseErr(InvalidCharacter, s.pos, "invalid character in comment")
			}
			s.pos++
		default:
			size, err := s.decodeRune()
			if err != nil {
				return token{}, err
			}
			s.pos += size
		}
	}
	return token{}, s.unterminated(start, "unterminated comment")
}

func (s *scanner) scanDomainLiteral() (token, *ParseError) {
	start := s.pos
	s.pos++
	for s.pos < len(s.input) {
		switch c := s.input[s.pos]; {
		case c == ']':
			s.pos++
			return token{typ: tokenDomainLiteral, span: span{start, s.pos}}, nil
		case c < 0x80:
			// WSP and line breaks are handled by the parser, which knows
			// whether the folding-white-space capability is enabled.
			if !isDtext(c) && !isWSP(c) && c != '\r' && c != '\n' {
				return token{}, parseErr(InvalidCharacter, s.pos, "invalid character in domain literal")
			}
			s.pos++
		default:
			size, err := s.decodeRune()
			if err != nil {
				return token{}, err
			}
			s.pos += size
		}
	}
	return token{}, s.unterminated(start, "unterminated domain literal")
}

// scanFWS consumes a folding-white-space run: white space with at most one
// embedded CRLF, which must be followed by more white space
// (RFC 5322 3.2.2).
func (s *scanner) scanFWS() (token, *ParseError) {
	start := s.pos
	for s.pos < len(s.input) && isWSP(s.input[s.pos]) {
		s.pos++
	}
	if s.pos < len(s.input) && s.input[s.pos] == '\r' {
		crlf := s.pos
		if s.pos+1 >= len(s.input) || s.input[s.pos+1] != '\n' {
			return token{}, parseErr(InvalidCharacter, crlf, "bare CR in input")
		}
		s.pos += 2
		if s.pos >= len(s.input) || !isWSP(s.input[s.pos]) {
			return token{}, parseErr(InvalidCharacter, crlf, "folding line break not followed by white space")
		}
		for s.pos < len(s.input) && isWSP(s.input[s.pos]) {
			s.pos++
		}
	}
	if s.pos == start {
		// Entered on a bare LF.
		return token{}, parseErr(InvalidCharacter, start, "bare line break in input")
	}
	return token{typ: tokenFWS, span: span{start, s.pos}}, nil
}
