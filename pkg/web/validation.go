package web

import (
	"github.com/go-playground/validator/v10"
)

// GetErrorMsg returns a human readable message for a failed validation tag.
//
// The message is appended to the field name by the caller.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " field is required"
	case "min":
		return " must be at least " + fe.Param() + " characters long"
	case "max":
		return " must be less than " + fe.Param()
	case "gte":
		return " must be at least " + fe.Param()
	case "email":
		return " must be a valid email address"
	case "alphanum":
		return " must contain only letters and numbers"
	case "denomination":
		return " must contain only 5, 10, 20, 50 or 100 cent coins"
	case "price":
		return " must be a positive multiple of 5"
	case "role":
		return " must be buyer or seller"
	}

	return " is invalid"
}
