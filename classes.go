// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package addrspec

// isAtext reports whether c is an RFC 5322 atext character. Bytes at or
// above 0x80 are admitted, following RFC 6532; the scanner checks UTF-8
// well-formedness separately.
func isAtext(c byte) bool {
	switch c {
	// RFC 5322 3.2.3. specials
	case '(', ')', '<', '>', '[', ']', ':', ';', '@', '\\', ',', '.', '"':
		return false
	}
	return isVchar(c)
}

func isBackslashOrQuote(c byte) bool {
	return c == '\\' || c == '"'
}

// isQtext reports whether c is an RFC 5322 qtext character.
func isQtext(c byte) bool {
	// Printable US-ASCII, excluding backslash or quote.
	if isBackslashOrQuote(c) {
		return false
	}
	return isVchar(c)
}

// isVchar reports whether c is an RFC 5322 VCHAR character.
func isVchar(c byte) bool {
	// Visible (printing) characters.
	return '!' <= c && c <= '~' || c >= 0x80
}

// isWSP reports whether c is a WSP (white space).
// WSP is a space or horizontal tab (RFC 5234 Appendix B).
func isWSP(c byte) bool {
	return c == ' ' || c == '\t'
}

// isDtext reports whether c is an RFC 5322 dtext character.
func isDtext(c byte) bool {
	// Printable US-ASCII, excluding "[", "]", or "\".
	if c == '[' || c == ']' || c == '\\' {
		return false
	}
	return isVchar(c)
}
