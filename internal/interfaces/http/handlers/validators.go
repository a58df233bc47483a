package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var supportedCurrencies = map[string]bool{
	"USD": true,
	"EUR": true,
	"GBP": true,
}

// validCurrency mirrors the currency set the plan aggregate accepts, so
// bad input fails at binding with a 400 instead of surfacing as a domain
// validation error.
func validCurrency(fl validator.FieldLevel) bool {
	return supportedCurrencies[fl.Field().String()]
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency", validCurrency)
	}
}
