package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/supplychain/backend/internal/domain/procurement"
)

// RegisterCustomValidators installs domain-specific binding validators
// on gin's default validator engine. Call once at startup.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	return v.RegisterValidation("po_status", func(fl validator.FieldLevel) bool {
		return procurement.PurchaseOrderStatus(fl.Field().String()).IsValid()
	})
}
