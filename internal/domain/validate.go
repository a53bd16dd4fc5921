package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validatorInstance is a package-level validator instance.
// Using a single instance is more efficient as it caches struct information.
var validatorInstance = validator.New()

// Validate runs struct-tag validation and wraps any failure in ErrValidation.
func Validate(v any) error {
	if err := validatorInstance.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
