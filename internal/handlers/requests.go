package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/nfrund/salesdash/internal/domain"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface. Failures wrap domain.ErrValidation.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// CredentialsRequest is the DTO shared by the login and registration forms.
// Emptiness is judged by the credential store after trimming, so there are no
// validate tags here.
type CredentialsRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}
