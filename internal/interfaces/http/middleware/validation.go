package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/garments-erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var setupOnce sync.Once

// SetupValidator names fields by their json (or form) tag, validates
// decimal.Decimal fields as numbers (so gte=0 works on amounts) and registers
// account_code (digits only). Safe to call more than once.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("account_code", isAccountCode)
	})
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return ""
}

func isAccountCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if code == "" {
		return true // left to required
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

// HandleValidationError writes a 400 listing each failed field; malformed JSON has no details
func HandleValidationError(c *gin.Context, err error) {
	var details []dto.ValidationDetail
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details = make([]dto.ValidationDetail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: describe(fe)})
		}
	}
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Request validation failed", GetRequestID(c), details))
}

// fixedMessages covers tags whose message does not depend on the parameter
var fixedMessages = map[string]string{
	"required":     "This field is required",
	"email":        "Invalid email format",
	"uuid":         "Invalid UUID format",
	"dive":         "Contains an invalid entry",
	"account_code": "Must contain digits only",
}

// paramMessages are formatted with the tag parameter
var paramMessages = map[string]string{
	"len":              "Must be exactly %s characters",
	"oneof":            "Must be one of: %s",
	"gte":              "Must be greater than or equal to %s",
	"lte":              "Must be less than or equal to %s",
	"gt":               "Must be greater than %s",
	"lt":               "Must be less than %s",
	"datetime":         "Must be a date in %s format",
	"required_without": "Required when %s is not set",
}

func describe(fe validator.FieldError) string {
	tag := fe.Tag()
	if msg, ok := fixedMessages[tag]; ok {
		return msg
	}
	if format, ok := paramMessages[tag]; ok {
		return fmt.Sprintf(format, fe.Param())
	}
	if tag == "min" || tag == "max" {
		bound := "least"
		if tag == "max" {
			bound = "most"
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at %s %s characters", bound, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Must have at %s %s items", bound, fe.Param())
		}
		return fmt.Sprintf("Must be at %s %s", bound, fe.Param())
	}
	return "Invalid value"
}
