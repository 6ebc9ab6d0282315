package ast

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teranos/tscr/errors"
)

// Modifier is a bit set of declaration and parameter modifiers.
type Modifier uint16

const (
	ModExport Modifier = 1 << iota
	ModPublic
	ModPrivate
	ModProtected
	ModReadonly
	ModStatic
	ModAsync
	ModRest
	ModOptional
)

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{ModExport, "export"},
	{ModPublic, "public"},
	{ModPrivate, "private"},
	{ModProtected, "protected"},
	{ModReadonly, "readonly"},
	{ModStatic, "static"},
	{ModAsync, "async"},
	{ModRest, "rest"},
	{ModOptional, "optional"},
}

// Has reports whether every bit of m2 is set in m.
func (m Modifier) Has(m2 Modifier) bool {
	return m&m2 == m2
}

// Accessibility returns only the public/private/protected bits.
func (m Modifier) Accessibility() Modifier {
	return m & (ModPublic | ModPrivate | ModProtected)
}

// Names returns the modifier names in canonical order.
func (m Modifier) Names() []string {
	var names []string
	for _, mn := range modifierNames {
		if m.Has(mn.mod) {
			names = append(names, mn.name)
		}
	}
	return names
}

func (m Modifier) String() string {
	return strings.Join(m.Names(), " ")
}

// ParseModifiers builds a modifier set from names.
func ParseModifiers(names []string) (Modifier, error) {
	var m Modifier
	for _, name := range names {
		found := false
		for _, mn := range modifierNames {
			if mn.name == name {
				m |= mn.mod
				found = true
				break
			}
		}
		if !found {
			return 0, errors.NewInvalidTreeError("unknown modifier %q", name)
		}
	}
	return m, nil
}

// MarshalYAML implements yaml.Marshaler
func (m Modifier) MarshalYAML() (interface{}, error) {
	return m.Names(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (m *Modifier) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	if err := value.Decode(&names); err != nil {
		return errors.Wrapf(err, "modifiers at line %d", value.Line)
	}
	parsed, err := ParseModifiers(names)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalJSON implements json.Marshaler
func (m Modifier) MarshalJSON() ([]byte, error) {
	names := m.Names()
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Modifier) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return errors.Wrap(err, "modifiers")
	}
	parsed, err := ParseModifiers(names)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
