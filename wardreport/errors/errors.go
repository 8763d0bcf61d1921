package errors

import "fmt"

// MissingFieldError indicates a source record arrived without a field the
// report cannot be computed without, or with a value outside the closed set
// the field allows. Always fatal; there is no partial-report mode.
type MissingFieldError struct {
	Field    string
	RecordID string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record %s is missing required field %s", e.RecordID, e.Field)
}
