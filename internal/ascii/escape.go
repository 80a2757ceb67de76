// Package ascii provides the byte-escaping primitive used by the
// addr-spec serializer.
package ascii

// Set is a 256-bit membership mask over byte values.
type Set [4]uint64

// MakeSet builds a Set containing the given bytes.
func MakeSet(bytes ...byte) Set {
	var s Set
	for _, c := range bytes {
		s[c>>6] |= 1 << (c & 63)
	}
	return s
}

// Contains reports whether c is in the set.
func (s *Set) Contains(c byte) bool {
	return s[c>>6]&(1<<(c&63)) != 0
}

// Escape writes src into dst, inserting esc before every byte contained in
// set and before every occurrence of esc itself; all other bytes pass
// through unchanged. It returns the number of bytes written, which is
// len(src) plus the number of escaped bytes.
//
// dst must be at least twice the length of src. A shorter buffer is a
// caller bug, not a parse failure, and panics.
func Escape(dst, src []byte, esc byte, set Set) int {
	if len(dst) < len(src)*2 {
		panic("ascii: escape destination shorter than twice the source")
	}
	n := 0
	for _, c := range src {
		if c == esc || set.Contains(c) {
			dst[n] = esc
			n++
		}
		dst[n] = c
		n++
	}
	return n
}

// AppendEscape appends the escaped form of src to b and returns the
// extended buffer. Unescaped runs are copied in chunks.
func AppendEscape(b, src []byte, esc byte, set Set) []byte {
	s := 0
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == esc || set.Contains(c) {
			b = append(b, src[s:i]...)
			b = append(b, esc, c)
			s = i + 1
		}
	}
	return append(b, src[s:]...)
}
