package addrspec

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMailAddress(t *testing.T) {
	addr, err := mail.ParseAddress(`"Joe Q. Public" <john.q.public@example.com>`)
	require.NoError(t, err)

	a, err := FromMailAddress(addr)
	require.NoError(t, err)
	assert.Equal(t, "john.q.public@example.com", a.String())
}

func TestFromMailAddressInvalid(t *testing.T) {
	_, err := FromMailAddress(&mail.Address{Address: "a..b@example.com"})
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, EmptyDotAtomSegment, perr.Kind)
}

func TestMailAddress(t *testing.T) {
	a := mustParse(t, `"quoted user"@example.com`)
	addr := a.MailAddress()
	assert.Equal(t, `"quoted user"@example.com`, addr.Address)
	assert.Empty(t, addr.Name)
}

func TestMailAddressRoundTrip(t *testing.T) {
	// Converting to net/mail and back is the identity on parsed values.
	inputs := []string{
		"simple@example.com",
		`"quoted user"@example.com`,
		"user@[192.0.2.1]",
	}
	for _, input := range inputs {
		a := mustParse(t, input)
		b, err := FromMailAddress(a.MailAddress())
		require.NoError(t, err, "input %q", input)
		assert.True(t, a.Equal(b), "input %q", input)
	}
}
