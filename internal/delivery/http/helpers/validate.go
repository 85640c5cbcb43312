package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Validator is implemented by request DTOs that need checks beyond struct tags.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// DecodeAndValidate decodes the request body into dest (with DisallowUnknownFields),
// runs the struct's validate tags and, if dest implements Validator, Validate().
// On decode or validation failure it writes a 400 JSON error and returns false; otherwise returns true.
// Callers should return immediately when DecodeAndValidate returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	if errs := ValidateStruct(dest); len(errs) > 0 {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(errs, "; "))
		return false
	}
	return true
}

// ValidateStruct runs tag validation followed by the Validator hook and returns all messages.
func ValidateStruct(dest any) []string {
	var errs []string
	if err := validate.Struct(dest); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []string{err.Error()}
		}
		for _, fe := range verrs {
			errs = append(errs, fieldMessage(fe))
		}
	}
	if v, ok := dest.(Validator); ok {
		errs = append(errs, v.Validate()...)
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "uuid":
		return fe.Field() + " must be a UUID"
	default:
		return fe.Field() + " is invalid"
	}
}

// ValidID reports whether id is a canonical UUID.
func ValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
