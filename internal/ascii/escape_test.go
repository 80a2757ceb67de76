package ascii

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendEscape(t *testing.T) {
	set := MakeSet('"')
	cases := []struct{ in, want string }{
		{"", ""},
		{"abc", "abc"},
		{`a\b`, `a\\b`},
		{`a"b`, `a\"b`},
		{`a\"b`, `a\\\"b`},
		{`"`, `\"`},
		{"😄\"😄😄", "😄\\\"😄😄"},
		{"😄😄😄\"", "😄😄😄\\\""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, string(AppendEscape(nil, []byte(tc.in), '\\', set)), "input %q", tc.in)
	}
}

func unescape(b []byte) []byte {
	var r []byte
	for i := 0; i < len(b); i++ {
		if b[i] == '\\' {
			i++
		}
		r = append(r, b[i])
	}
	return r
}

func TestEscapeLengthAndRoundTrip(t *testing.T) {
	set := MakeSet('"', ' ', '\t')
	inputs := []string{
		"",
		"plain",
		`quite "quoted" \ and spaced`,
		"\tleading and trailing\t",
		"😄 wide 😄",
	}
	for _, in := range inputs {
		dst := make([]byte, 2*len(in))
		n := Escape(dst, []byte(in), '\\', set)
		escaped := strings.Count(in, `"`) + strings.Count(in, " ") +
			strings.Count(in, "\t") + strings.Count(in, `\`)
		assert.Equal(t, len(in)+escaped, n, "input %q", in)
		assert.Equal(t, in, string(unescape(dst[:n])), "input %q", in)
		assert.Equal(t, string(dst[:n]), string(AppendEscape(nil, []byte(in), '\\', set)))
	}
}

func TestEscapeShortBufferPanics(t *testing.T) {
	require.Panics(t, func() {
		Escape(make([]byte, 3), []byte("ab"), '\\', MakeSet('"'))
	})
}

func TestSetContains(t *testing.T) {
	set := MakeSet('"', ' ', 0x00, 0xff)
	for c := 0; c < 256; c++ {
		want := c == '"' || c == ' ' || c == 0x00 || c == 0xff
		assert.Equal(t, want, set.Contains(byte(c)), "byte %#x", c)
	}
}
