package http

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/opencourse/transcripts/pkg/examsdk"
	"github.com/opencourse/transcripts/pkg/httpx"
)

// validate checks request body shape (required fields, email format,
// length bounds). Domain invariants like vote bounds are enforced by the
// services so they keep their own error codes.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields under their json names so the details map lines up
	// with what the client actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// writeValidationError maps a validator failure onto the validation
// envelope with one detail line per offending field.
func writeValidationError(w http.ResponseWriter, err error) {
	details := make(map[string]string)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Param() != "" {
				details[fe.Field()] = fmt.Sprintf("failed %s=%s validation", fe.Tag(), fe.Param())
				continue
			}
			details[fe.Field()] = fmt.Sprintf("failed %s validation", fe.Tag())
		}
	}

	httpx.WriteJSON(w, http.StatusBadRequest, examsdk.ValidationErrorResponse{
		Code:    examsdk.ErrorCodeValidationError,
		Message: "validation failed for some fields",
		Details: details,
	})
}
