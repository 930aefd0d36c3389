package cpacs

import "fmt"

// MissingFieldError reports a required element that is absent.
type MissingFieldError struct {
	Element string // tag of the element the path was resolved against
	Path    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("cpacs: <%s> has no required field %q", e.Element, e.Path)
}

// ParseError reports text that could not be converted to a number.
type ParseError struct {
	Path  string
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cpacs: field %q: cannot parse %q as a number", e.Path, e.Token)
}

func (e *ParseError) Unwrap() error { return e.Err }

// GeometryError reports arrays or records that do not line up, such as a
// cabin geometry level with the wrong number of samples.
type GeometryError struct {
	Element string
	Message string
}

func (e *GeometryError) Error() string {
	if e.Element == "" {
		return "cpacs: " + e.Message
	}
	return fmt.Sprintf("cpacs: %s: %s", e.Element, e.Message)
}
