package addrspec

import "net/mail"

// FromMailAddress converts a net/mail address, which carries its address
// text verbatim, into a validated AddrSpec. The display name is dropped.
//
// The conversion pair is a right inverse: converting an AddrSpec to a
// mail.Address and back yields an equal AddrSpec. The converse does not
// hold, because parsing normalizes away quoting and codepoint differences
// that net/mail preserves verbatim.
func FromMailAddress(addr *mail.Address) (*AddrSpec, error) {
	return Parse(addr.Address)
}

// MailAddress converts a to its net/mail representation, carrying the
// canonical serialization and no display name.
func (a *AddrSpec) MailAddress() *mail.Address {
	return &mail.Address{Address: a.String()}
}
