package deci

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// The decoders in this file are fail-safe: malformed input decodes to Zero
// and no error is returned, so one bad field never aborts a whole document.

// MarshalText implements [encoding.TextMarshaler] interface.
// Also see method [Deci.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (d Deci) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// Malformed text decodes to [Zero]. Also see method [ParseOrZero].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (d *Deci) UnmarshalText(text []byte) error {
	*d = ParseOrZero(string(text))
	return nil
}

// MarshalJSON implements [json.Marshaler] interface.
// The decimal is written as a JSON string, such as "123.45", never as a
// JSON number.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (d Deci) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements [json.Unmarshaler] interface.
// It accepts a JSON string or a plain JSON number. Malformed content decodes
// to [Zero] and null leaves d unchanged.
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (d *Deci) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*d = Zero
			return nil
		}
		*d = ParseOrZero(s)
	default:
		*d = ParseOrZero(string(data))
	}
	return nil
}

// MarshalYAML implements [yaml.Marshaler] interface.
// The decimal is written as a double-quoted string scalar.
//
// [yaml.Marshaler]: https://pkg.go.dev/gopkg.in/yaml.v3#Marshaler
func (d Deci) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: d.String(),
		Style: yaml.DoubleQuotedStyle,
	}, nil
}

// UnmarshalYAML implements [yaml.Unmarshaler] interface.
// Any scalar is accepted; malformed content and non-scalar nodes decode to
// [Zero].
//
// [yaml.Unmarshaler]: https://pkg.go.dev/gopkg.in/yaml.v3#Unmarshaler
func (d *Deci) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		*d = Zero
		return nil
	}
	if value.ShortTag() == "!!null" {
		return nil
	}
	*d = ParseOrZero(value.Value)
	return nil
}

// Scan implements the [sql.Scanner] interface.
// Text columns are decoded fail-safe, as by [ParseOrZero].
// See also constructors [NewFromInt64] and [NewFromFloat64].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (d *Deci) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*d = ParseOrZero(value)
	case []byte:
		*d = ParseOrZero(string(value))
	case int64:
		*d = NewFromInt64(value)
	case float64:
		*d, err = NewFromFloat64(value)
	case nil:
		err = errors.Wrap(ErrValidation, "converting NULL to decimal")
	default:
		err = errors.Wrapf(ErrValidation, "converting from %T to decimal", value)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// The decimal is stored as its plain text.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (d Deci) Value() (driver.Value, error) {
	return d.String(), nil
}

// NullDeci represents a decimal that can be null.
// Its zero value is null.
// NullDeci is safe for concurrent use by multiple goroutines.
type NullDeci struct {
	Deci  Deci
	Valid bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Deci.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullDeci) Scan(value any) error {
	if value == nil {
		n.Deci = Deci{}
		n.Valid = false
		return nil
	}
	err := n.Deci.Scan(value)
	if err != nil {
		n.Deci = Deci{}
		n.Valid = false
		return err
	}
	n.Valid = true
	return nil
}

// Value implements the [driver.Valuer] interface.
// See also method [Deci.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullDeci) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Deci.Value()
}
