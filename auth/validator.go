package auth

import (
	"fmt"
	"strikeup/domain"
	"strikeup/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type SignupRequest struct {
	Name            string            `validate:"required,max=100"`
	Email           string            `validate:"required,email"`
	Password        string            `validate:"required"`
	ConfirmPassword string            `validate:"required"`
	Location        string            `validate:"required,max=200"`
	SkillLevel      domain.SkillLevel `validate:"required,oneof=beginner intermediate advanced"`
}

type LoginRequest struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// ValidateSignup checks that both passwords agree before looking at the
// shape of the other fields.
func ValidateSignup(req SignupRequest) error {
	if req.Password != req.ConfirmPassword {
		return errors.ErrPasswordMismatch
	}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidInput, err)
	}
	return nil
}

func ValidateLogin(req LoginRequest) error {
	if err := validate.Struct(req); err != nil {
		return errors.ErrInvalidCredentials
	}
	return nil
}
