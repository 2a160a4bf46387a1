package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/portal/backend/internal/domain/identity"
)

// SetupValidator configures gin's validator with custom tags.
// Call once at startup before serving requests.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Use JSON tag names for field names in validation errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// "role" validates against the portal's known roles
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return identity.Role(fl.Field().String()).IsValid()
	})
}
