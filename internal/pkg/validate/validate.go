package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	xerrors "crm-service/internal/pkg/errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var setupOnce sync.Once

// Setup makes the gin validator report JSON field names.
func Setup() {
	setupOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonFieldName)
		}
	})
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Translate converts a binding failure into a validation error carrying
// per-field details. message is the top-level error text.
func Translate(err error, message string) *xerrors.Error {
	if err == nil {
		return nil
	}

	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)

	switch {
	case errors.As(err, &verrs):
		details := make([]xerrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, xerrors.FieldError{
				Field:   fieldPath(fe),
				Message: describe(fe),
			})
		}
		return xerrors.Validation(message, details...)
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return xerrors.Validation(message, xerrors.FieldError{
			Field:   field,
			Message: fmt.Sprintf("Expected %s, received %s", expectedName(typeErr.Type), typeErr.Value),
		})
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return xerrors.Validation(message, xerrors.FieldError{Field: "body", Message: "Malformed JSON"})
	case errors.Is(err, io.EOF):
		return xerrors.Validation(message, xerrors.FieldError{Field: "body", Message: "Request body is required"})
	}

	return xerrors.Validation(message, xerrors.FieldError{Field: "body", Message: err.Error()})
}

// fieldPath drops the root struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "oneof":
		opts := strings.Fields(fe.Param())
		return fmt.Sprintf("Invalid enum value. Expected '%s'", strings.Join(opts, "' | '"))
	case "email":
		return "Invalid email"
	case "uuid", "uuid4":
		return "Invalid uuid"
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at most %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Number must be less than or equal to %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at least %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Number must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Number must be less than or equal to %s", fe.Param())
	}
	return fmt.Sprintf("Failed on the '%s' rule", fe.Tag())
}

func expectedName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Name() {
	case "Money", "Int":
		return "number"
	case "Date":
		return "date"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Int, reflect.Int32, reflect.Int64, reflect.Float32, reflect.Float64:
		return "number"
	}
	return t.String()
}
