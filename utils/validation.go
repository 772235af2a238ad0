package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yeremiapane/service-booking/models"
)

var registerOnce sync.Once

// now is swapped in tests that need a fixed clock for the "future" rule.
var now = time.Now

// RegisterValidators installs the custom binding rules and makes field errors
// use json names. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("future", validateFuture)
		_ = v.RegisterValidation("service_category", validateServiceCategory)
		_ = v.RegisterValidation("notblank", validateNotBlank)
	})
}

func validateFuture(fl validator.FieldLevel) bool {
	t, err := ParseDateTime(fl.Field().String())
	if err != nil {
		return false
	}
	return t.After(now())
}

func validateServiceCategory(fl validator.FieldLevel) bool {
	return models.IsServiceCategory(fl.Field().String())
}

// notblank menolak string yang isinya hanya spasi
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// BindingError turns an error from ShouldBind* into an AppError: schema
// violations become a 422 with per-field messages, anything else (bad JSON)
// a 400.
func BindingError(err error) *AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return BadRequest("Malformed request body.", err)
	}
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
	}
	return ValidationError("Validation failed.", fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", fe.Field())
	case "gte":
		return fmt.Sprintf("The %s field must be greater than or equal to %s.", fe.Field(), fe.Param())
	case "future":
		return fmt.Sprintf("The %s field must be a valid date after now.", fe.Field())
	case "service_category":
		return fmt.Sprintf("The selected %s is invalid.", fe.Field())
	default:
		return fmt.Sprintf("The %s field is invalid.", fe.Field())
	}
}
