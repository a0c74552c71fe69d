package portal

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// OriginDefault marks a value that came from the schema default.
const OriginDefault = "default"

// Source supplies parameter values for binding.
type Source interface {
	// Name identifies the source in error messages and Bindings.Origin.
	Name() string

	// Values returns the supplied values keyed by parameter name. Empty
	// values are treated as not supplied.
	Values() (map[string]string, error)
}

type staticSource struct {
	name   string
	values map[string]string
	reset  bool
}

func (s staticSource) Name() string { return s.name }

func (s staticSource) Values() (map[string]string, error) { return s.values, nil }

func (s staticSource) resetsEmpty() bool { return s.reset }

// Values returns a Source backed by an in-memory map.
func Values(name string, values map[string]string) Source {
	return staticSource{name: name, values: values}
}

// Answers returns a Source holding a user's final answers. Unlike Values,
// an empty answer is a choice: it restores the schema default and drops
// whatever an earlier source supplied for that parameter.
func Answers(name string, values map[string]string) Source {
	return staticSource{name: name, values: values, reset: true}
}

// Bindings is an immutable snapshot of bound parameter values.
type Bindings struct {
	values map[string]string
	origin map[string]string
}

// Get returns the bound value for name, or "" if the name is not bound.
func (b *Bindings) Get(name string) string {
	return b.values[CanonicalName(name)]
}

// Or returns the bound value for name when it is non-empty, and fallback
// otherwise. This is the conditional default substitution used for optional
// overrides: the override is used verbatim when supplied.
func (b *Bindings) Or(name, fallback string) string {
	if v := b.Get(name); v != "" {
		return v
	}
	return fallback
}

// Origin returns the name of the source that supplied the bound value.
func (b *Bindings) Origin(name string) string {
	return b.origin[CanonicalName(name)]
}

// Map returns a copy of all bound values.
func (b *Bindings) Map() map[string]string {
	return maps.Clone(b.values)
}

// Bind resolves every parameter in the schema: the schema default first,
// then each source in order. It fails on the first unknown name or illegal
// value.
func (c *Context) Bind(sources ...Source) (*Bindings, error) {
	b := &Bindings{
		values: make(map[string]string, len(c.params)),
		origin: make(map[string]string, len(c.params)),
	}
	for _, p := range c.params {
		b.values[p.Name] = p.Default
		b.origin[p.Name] = OriginDefault
	}

	for _, src := range sources {
		supplied, err := src.Values()
		if err != nil {
			return nil, fmt.Errorf("portal: reading %s: %w", src.Name(), err)
		}

		reset := false
		if r, ok := src.(interface{ resetsEmpty() bool }); ok {
			reset = r.resetsEmpty()
		}

		// Sorted so that the reported error is stable when several values are bad.
		for _, rawName := range slices.Sorted(maps.Keys(supplied)) {
			value := strings.TrimSpace(supplied[rawName])
			if value == "" && !reset {
				continue
			}

			p, ok := c.Lookup(rawName)
			if !ok {
				return nil, fmt.Errorf("portal: %s: %w %q (known: %s)",
					src.Name(), ErrUnknownParameter, rawName, strings.Join(c.Names(), ", "))
			}

			if value == "" {
				b.values[p.Name] = p.Default
				b.origin[p.Name] = OriginDefault
				continue
			}

			if err := p.check(value); err != nil {
				return nil, illegalValueError(src.Name(), p, value, err)
			}

			b.values[p.Name] = p.normalize(value)
			b.origin[p.Name] = src.Name()
		}
	}

	return b, nil
}

func illegalValueError(source string, p Parameter, value string, cause error) error {
	if p.Type == TypeEnum {
		return fmt.Errorf("portal: %s: %w %q for %s (legal: %s)",
			source, ErrIllegalValue, value, p.Name, strings.Join(p.LegalNames(), ", "))
	}
	if errors.Is(cause, ErrIllegalValue) {
		return fmt.Errorf("portal: %s: %w %q for %s", source, ErrIllegalValue, value, p.Name)
	}
	return fmt.Errorf("portal: %s: %w %q for %s: %v", source, ErrIllegalValue, value, p.Name, cause)
}
