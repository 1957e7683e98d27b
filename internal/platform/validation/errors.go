package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ErrorBody is the 422 payload: a summary plus failed rules keyed by JSON field name.
type ErrorBody struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields"`
}

const failed = "validation_failed"

// ErrorResponse converts a validator error into an ErrorBody. Errors that are
// not field errors are passed through as the summary.
func ErrorResponse(err error) ErrorBody {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ErrorBody{Error: err.Error(), Fields: map[string][]string{}}
	}
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], fe.Tag())
	}
	return ErrorBody{Error: failed, Fields: fields}
}

// FieldError reports a single rule failure on field, for checks done outside the validator.
func FieldError(field, rule string) ErrorBody {
	return ErrorBody{Error: failed, Fields: map[string][]string{field: {rule}}}
}
