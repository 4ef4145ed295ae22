package filter

import "fmt"

// UnsupportedFilterError reports a filter this system recognizes by
// name but does not decode. Callers that only need metadata (not
// decoded stream bytes — e.g. image dimension probing) can choose to
// ignore this error and work with the raw encoded bytes instead.
type UnsupportedFilterError struct {
	Filter string
}

func (e *UnsupportedFilterError) Error() string {
	return fmt.Sprintf("filter: %s is not implemented", e.Filter)
}

// NotImplemented constructs an UnsupportedFilterError for name.
func NotImplemented(name string) error {
	return &UnsupportedFilterError{Filter: name}
}
