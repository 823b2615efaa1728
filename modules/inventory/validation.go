package inventory

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/preppal-io/prep-pal/domain/stock"
)

var validate = validator.New()

// validateInput checks v against its struct tags.
func validateInput(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", stock.ErrInvalidInput, err)
	}
	return nil
}
