package userdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/go-vendo/vending-machine/internal/domain"
)

// ValidRole validates whether the role is supported.
var ValidRole validator.Func = func(fl validator.FieldLevel) bool {
	if r, ok := fl.Field().Interface().(string); ok {
		return r == domain.RoleBuyer || r == domain.RoleSeller
	}

	return false
}
