// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// phoneRegex accepts digits with optional leading +, spaces and dashes.
var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-]{2,19}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_kind", validateTransactionKind)
		_ = v.RegisterValidation("sort_key", validateSortKey)
		_ = v.RegisterValidation("file_type", validateFileType)
		_ = v.RegisterValidation("phone", validatePhone)
	}
}

func validateTransactionKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "borrowed", "paid":
		return true
	}
	return false
}

func validateSortKey(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "name", "balance-high", "balance-low", "last-paid":
		return true
	}
	return false
}

func validateFileType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "PDF", "Image", "Word", "Text", "File":
		return true
	}
	return false
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}
