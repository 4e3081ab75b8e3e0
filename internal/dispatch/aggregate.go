package dispatch

import "strings"

// AggregateError is returned when every selected platform failed.
// Errors keeps the iOS error first and the Android error second.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is and errors.As see every cause.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}
