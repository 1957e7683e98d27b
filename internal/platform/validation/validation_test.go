package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	EventTypeName string  `json:"event_type_name" validate:"required"`
	Description   *string `json:"description,omitempty"`
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	err := New().Validate(&sample{})
	require.Error(t, err)

	body := ErrorResponse(err)
	assert.Equal(t, "validation_failed", body.Error)
	assert.Equal(t, []string{"required"}, body.Fields["event_type_name"])
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, New().Validate(&sample{EventTypeName: "sleep"}))
}

func TestErrorResponse_PlainError(t *testing.T) {
	body := ErrorResponse(errors.New("invalid timestamp"))
	assert.Equal(t, "invalid timestamp", body.Error)
	assert.Empty(t, body.Fields)
}

func TestFieldError(t *testing.T) {
	body := FieldError("timestamp", "datetime")
	assert.Equal(t, "validation_failed", body.Error)
	assert.Equal(t, map[string][]string{"timestamp": {"datetime"}}, body.Fields)
}
