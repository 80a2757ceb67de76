package addrspec

import "golang.org/x/text/unicode/norm"

// normalizeNFC applies Unicode canonical composition, with a cheap pass
// for input that is already in form NFC (the common case for ASCII and
// most real-world UTF-8).
func normalizeNFC(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}
