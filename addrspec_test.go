package addrspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cases := []struct {
		localPart string
		domain    string
		want      string
	}{
		{"simple", "example.com", "simple@example.com"},
		{"very.common", "example.com", "very.common@example.com"},
		// Text that cannot stand as a dot-atom is quoted on the way out.
		{"quoted user", "example.com", `"quoted user"@example.com`},
		{`quo"te`, "example.com", `"quo\"te"@example.com`},
		{"..", "machine.example", `".."@machine.example`},
		{"Abc@def", "example.com", `"Abc@def"@example.com`},
		{"用户", "例子.广告", "用户@例子.广告"},
	}
	for _, tc := range cases {
		a, err := New(tc.localPart, tc.domain)
		require.NoError(t, err, "New(%q, %q)", tc.localPart, tc.domain)
		assert.Equal(t, tc.want, a.String(), "New(%q, %q)", tc.localPart, tc.domain)

		// The semantic local part survives unchanged.
		gotLocal, gotDomain := a.Parts()
		assert.Equal(t, tc.localPart, gotLocal)
		assert.Equal(t, tc.domain, gotDomain)
	}
}

func TestNewMatchesParse(t *testing.T) {
	a, err := New("quoted user", "example.com")
	require.NoError(t, err)
	b := mustParse(t, `"quoted user"@example.com`)
	assert.True(t, a.Equal(b))
}

func TestNewNormalizes(t *testing.T) {
	a, err := New("cafe\u0301", "cafe\u0301.example")
	require.NoError(t, err)
	assert.Equal(t, "café@café.example", a.String())
}

func TestNewErrors(t *testing.T) {
	cases := []struct {
		localPart  string
		domain     string
		wantKind   ErrorKind
		wantOffset int
	}{
		{"", "example.com", EmptyPart, 0},
		{"user", "", EmptyPart, 0},
		{"us\x00er", "example.com", InvalidCharacter, 2},
		{"user", "exa mple.com", TrailingInput, 3},
		{"user", ".com", EmptyDotAtomSegment, 0},
		{"user", "com.", EmptyDotAtomSegment, 4},
		{"user", "exa..mple", EmptyDotAtomSegment, 4},
		{"user", "exa<mple", InvalidCharacter, 3},
		// A bracketed literal is not a domain name.
		{"user", "[192.0.2.1]", UnexpectedToken, 0},
	}
	for _, tc := range cases {
		_, err := New(tc.localPart, tc.domain)
		require.Error(t, err, "New(%q, %q)", tc.localPart, tc.domain)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, "New(%q, %q)", tc.localPart, tc.domain)
		assert.Equal(t, tc.wantKind, perr.Kind, "New(%q, %q)", tc.localPart, tc.domain)
		assert.Equal(t, tc.wantOffset, perr.Offset, "New(%q, %q)", tc.localPart, tc.domain)
	}
}

func TestNewLiteral(t *testing.T) {
	a, err := NewLiteral("user", "300.300.300.300")
	require.NoError(t, err)
	assert.Equal(t, "user@[300.300.300.300]", a.String())
	assert.True(t, a.IsLiteral())

	localPart, domain := a.Parts()
	assert.Equal(t, "user", localPart)
	assert.Equal(t, "300.300.300.300", domain)
}

func TestNewLiteralErrors(t *testing.T) {
	cases := []struct {
		localPart  string
		domain     string
		wantKind   ErrorKind
		wantOffset int
	}{
		{"", "192.0.2.1", EmptyPart, 0},
		{"user", "", EmptyPart, 0},
		{"user", "a[b", InvalidCharacter, 1},
		{"user", `a\b`, InvalidCharacter, 1},
		{"user", "a b", InvalidCharacter, 1},
	}
	for _, tc := range cases {
		_, err := NewLiteral(tc.localPart, tc.domain)
		require.Error(t, err, "NewLiteral(%q, %q)", tc.localPart, tc.domain)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, "NewLiteral(%q, %q)", tc.localPart, tc.domain)
		assert.Equal(t, tc.wantKind, perr.Kind, "NewLiteral(%q, %q)", tc.localPart, tc.domain)
		assert.Equal(t, tc.wantOffset, perr.Offset, "NewLiteral(%q, %q)", tc.localPart, tc.domain)
	}
}

func TestLocalPartText(t *testing.T) {
	assert.Equal(t, "a.b.c", DotAtom{Segments: []string{"a", "b", "c"}}.Text())
	assert.Equal(t, "a b", QuotedString{Content: "a b"}.Text())
	assert.Equal(t, "example.com", DomainName{Labels: []string{"example", "com"}}.Text())
	assert.Equal(t, "192.0.2.1", DomainLiteral{Content: "192.0.2.1"}.Text())
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "unterminated token", UnterminatedToken.String())
	assert.Equal(t, "empty dot-atom segment", EmptyDotAtomSegment.String())
	assert.Equal(t, "invalid character", InvalidCharacter.String())
	assert.Equal(t, "unexpected token", UnexpectedToken.String())
	assert.Equal(t, "disabled feature", DisabledFeature.String())
	assert.Equal(t, "trailing input", TrailingInput.String())
	assert.Equal(t, "empty part", EmptyPart.String())
	assert.Equal(t, "ErrorKind(42)", ErrorKind(42).String())
}
