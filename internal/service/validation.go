package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
)

// NewValidator builds the request validator used across services. Field names
// in error reports follow the json tag so messages match the wire payload.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// invalidPayload converts a validator error into the per-field report the API
// contract expects. Requests failing here never reach storage.
func invalidPayload(err error, message string) *appErrors.Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]appErrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, appErrors.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
		return appErrors.Validation(message, fields)
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "invalid email format"
	case "oneof":
		return "invalid status"
	case "datetime":
		return "must be a valid date (YYYY-MM-DD)"
	default:
		return fe.Field() + " is invalid"
	}
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
