package slug

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalText encodes the slug as its plain text. JSON uses it as well,
// so a Slug is a JSON string.
func (s Slug) MarshalText() ([]byte, error) {
	return []byte(s.s), nil
}

// UnmarshalText parses text with DefaultOptions.
// Fails with ErrDecode joined with the parse error.
func (s *Slug) UnmarshalText(text []byte) error {
	return s.decode(string(text))
}

// MarshalYAML encodes the slug as a YAML string scalar.
func (s Slug) MarshalYAML() (any, error) {
	return s.s, nil
}

// UnmarshalYAML parses a scalar node with DefaultOptions.
func (s *Slug) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Join(ErrDecode, fmt.Errorf("yaml: expected a scalar, got kind %d at line %d", node.Kind, node.Line))
	}
	return s.decode(node.Value)
}

// Value implements driver.Valuer. The zero Slug is stored as NULL.
func (s Slug) Value() (driver.Value, error) {
	if s.IsZero() {
		return nil, nil
	}
	return s.s, nil
}

// Scan implements sql.Scanner for text columns, parsing with DefaultOptions.
func (s *Slug) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return s.decode(v)
	case []byte:
		return s.decode(string(v))
	case nil:
		return errors.Join(ErrDecode, errors.New("sql: NULL slug"))
	default:
		return errors.Join(ErrDecode, fmt.Errorf("sql: unsupported source type %T", src))
	}
}

func (s *Slug) decode(text string) error {
	parsed, err := Parse(text)
	if err != nil {
		return errors.Join(ErrDecode, err)
	}
	*s = parsed
	return nil
}

var (
	_ encoding.TextMarshaler   = Slug{}
	_ encoding.TextUnmarshaler = (*Slug)(nil)
	_ yaml.Marshaler           = Slug{}
	_ yaml.Unmarshaler         = (*Slug)(nil)
	_ driver.Valuer            = Slug{}
	_ sql.Scanner              = (*Slug)(nil)
)
