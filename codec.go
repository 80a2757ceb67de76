package addrspec

import "gopkg.in/yaml.v3"

// MarshalText implements encoding.TextMarshaler, emitting the canonical
// serialization. encoding/json picks this up, so an AddrSpec field
// marshals as a plain JSON string.
func (a *AddrSpec) MarshalText() ([]byte, error) {
	return a.Append(nil), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The input is subject
// to the same validation as Parse.
func (a *AddrSpec) UnmarshalText(text []byte) error {
	parsed, err := defaultParser.ParseBytes(text)
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler, emitting the canonical
// serialization as a scalar.
func (a *AddrSpec) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. The scalar is subject to the
// same validation as Parse.
func (a *AddrSpec) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}
