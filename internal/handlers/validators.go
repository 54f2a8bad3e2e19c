package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
)

// RegisterValidators adds the domain enum tags to gin's validator engine.
// It must run before any route binds a request.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	tags := map[string]validator.Func{
		"accounting_mode": func(fl validator.FieldLevel) bool {
			_, ok := domain.ParseAccountingMode(fl.Field().String())
			return ok
		},
		"product_type": func(fl validator.FieldLevel) bool {
			_, ok := domain.ParseProductType(fl.Field().String())
			return ok
		},
		"cashier_txn_type": func(fl validator.FieldLevel) bool {
			return domain.CashierTxnType(strings.ToUpper(fl.Field().String())).IsValid()
		},
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}
