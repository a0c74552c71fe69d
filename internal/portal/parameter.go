// Package portal defines the user-facing parameter schema of a profile and
// binds supplied values against it.
//
// Binding is layered: schema defaults first, then each Source in order.
// A later source overrides an earlier one for the names it supplies. Every
// supplied value is checked against the parameter's legal set, and the first
// illegal value fails the whole bind.
package portal

import (
	"slices"

	"powderteam/oaiprofile/internal/util"
)

// ParameterType is the value type of a parameter.
type ParameterType string

const (
	// TypeString is a free-form string, optionally checked by a validator.
	TypeString ParameterType = "string"

	// TypeEnum is a string restricted to a fixed legal-value set.
	TypeEnum ParameterType = "enum"
)

// LegalValue is one entry of an enum parameter's legal set.
type LegalValue struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Parameter describes a single profile parameter.
type Parameter struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Type        ParameterType `json:"type"`
	Default     string        `json:"default"`
	LegalValues []LegalValue  `json:"legal_values,omitempty"`
	Advanced    bool          `json:"advanced"`

	// Validate, when set, checks non-empty values of a string parameter.
	Validate func(value string) error `json:"-"`
}

// IsLegal reports whether value may be bound to the parameter. Enum values
// are compared after normalization; the empty string is always legal for
// string parameters and means "not overridden".
func (p Parameter) IsLegal(value string) bool {
	return p.check(value) == nil
}

// LegalNames returns the values of the legal set in definition order.
func (p Parameter) LegalNames() []string {
	names := make([]string, len(p.LegalValues))
	for i, lv := range p.LegalValues {
		names[i] = lv.Value
	}
	return names
}

// Label returns the display label for a legal value, or the value itself.
func (p Parameter) Label(value string) string {
	for _, lv := range p.LegalValues {
		if lv.Value == value {
			return lv.Label
		}
	}
	return value
}

func (p Parameter) normalize(value string) string {
	if p.Type == TypeEnum {
		return util.NormalizeKey(value)
	}
	return value
}

func (p Parameter) check(value string) error {
	switch p.Type {
	case TypeEnum:
		if !slices.Contains(p.LegalNames(), p.normalize(value)) {
			return ErrIllegalValue
		}
	default:
		if value != "" && p.Validate != nil {
			if err := p.Validate(value); err != nil {
				return err
			}
		}
	}
	return nil
}
