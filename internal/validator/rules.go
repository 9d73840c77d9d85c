package validator

import (
	"github.com/go-playground/validator/v10"
)

// registerCustomRules wires project-specific validation tags.
func registerCustomRules(v *validator.Validate) error {
	// timerange: the analytics window selector tokens.
	if err := v.RegisterValidation("timerange", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "7d", "30d", "90d", "all":
			return true
		}
		return false
	}); err != nil {
		return err
	}

	return nil
}
