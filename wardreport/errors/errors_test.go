package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingFieldError(t *testing.T) {
	err := &MissingFieldError{Field: "age", RecordID: "abc-123"}
	assert.Equal(t, "record abc-123 is missing required field age", err.Error())
}
