package portal

import "errors"

var (
	// ErrUnknownParameter indicates a value was supplied for a name the
	// schema does not define.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrIllegalValue indicates a supplied value is outside the parameter's
	// legal set or failed its validator.
	ErrIllegalValue = errors.New("illegal parameter value")

	// ErrDuplicateParameter indicates a parameter name was defined twice.
	ErrDuplicateParameter = errors.New("duplicate parameter")
)
