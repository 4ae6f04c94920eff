package employee

import "errors"

var (
	ErrNotFound        = errors.New("employee not found")
	ErrEmailExists     = errors.New("email already exists")
	ErrAccountIDExists = errors.New("jira account id already exists")
)

// ValidationError rejects malformed resource inputs; the record is left
// unmodified when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}
