package portal

import (
	"fmt"
	"strings"

	"powderteam/oaiprofile/internal/util"
)

// Context holds the parameter schema of a profile.
type Context struct {
	params []Parameter
	index  map[string]int
}

// NewContext returns an empty parameter schema.
func NewContext() *Context {
	return &Context{index: map[string]int{}}
}

// DefineParameter adds a parameter to the schema. The name must be unique
// and the default value must itself be legal.
func (c *Context) DefineParameter(p Parameter) error {
	p.Name = CanonicalName(p.Name)
	if p.Name == "" {
		return fmt.Errorf("portal: parameter name must not be empty")
	}
	if _, exists := c.index[p.Name]; exists {
		return fmt.Errorf("portal: %w: %q", ErrDuplicateParameter, p.Name)
	}
	if p.Type == "" {
		p.Type = TypeString
		if len(p.LegalValues) > 0 {
			p.Type = TypeEnum
		}
	}
	if p.Type == TypeEnum && len(p.LegalValues) == 0 {
		return fmt.Errorf("portal: enum parameter %q has no legal values", p.Name)
	}
	if err := p.check(p.Default); err != nil {
		return fmt.Errorf("portal: default for %q: %w", p.Name, err)
	}
	p.LegalValues = append([]LegalValue(nil), p.LegalValues...)

	c.index[p.Name] = len(c.params)
	c.params = append(c.params, p)
	return nil
}

// MustDefineParameter is DefineParameter for static schemas; it panics on error.
func (c *Context) MustDefineParameter(p Parameter) {
	if err := c.DefineParameter(p); err != nil {
		panic(err)
	}
}

// Parameters returns the schema in definition order.
func (c *Context) Parameters() []Parameter {
	return append([]Parameter(nil), c.params...)
}

// Lookup returns the parameter with the given name. Hyphens and underscores
// are interchangeable and the match is case-insensitive.
func (c *Context) Lookup(name string) (Parameter, bool) {
	i, ok := c.index[CanonicalName(name)]
	if !ok {
		return Parameter{}, false
	}
	return c.params[i], true
}

// Names returns the parameter names in definition order.
func (c *Context) Names() []string {
	names := make([]string, len(c.params))
	for i, p := range c.params {
		names[i] = p.Name
	}
	return names
}

// CanonicalName normalizes a parameter name: lower-case, trimmed, with
// hyphens replaced by underscores.
func CanonicalName(name string) string {
	return strings.ReplaceAll(util.NormalizeKey(name), "-", "_")
}
