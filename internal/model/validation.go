package model

import "fmt"

// ValidationError is a client-side validation failure. It is raised before
// any request reaches the backend.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
