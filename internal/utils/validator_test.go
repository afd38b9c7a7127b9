// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type usernameField struct {
	Username string `validate:"required,username"`
}

type themeField struct {
	Theme string `validate:"omitempty,theme"`
}

type passwordField struct {
	Password string `validate:"required,strong_password"`
}

func TestUsernameValidation(t *testing.T) {
	valid := []string{"maria", "maria_silva", "loja123", "abc"}
	for _, u := range valid {
		assert.NoError(t, ValidateStruct(&usernameField{Username: u}), u)
	}

	invalid := []string{"ab", "Maria", "maria.silva", "maria-silva", "maria silva", "maria@loja"}
	for _, u := range invalid {
		assert.Error(t, ValidateStruct(&usernameField{Username: u}), u)
	}
}

func TestThemeValidation(t *testing.T) {
	assert.NoError(t, ValidateStruct(&themeField{Theme: "cyber"}))
	assert.NoError(t, ValidateStruct(&themeField{Theme: ""}))
	assert.Error(t, ValidateStruct(&themeField{Theme: "neon"}))
}

func TestStrongPasswordValidation(t *testing.T) {
	assert.NoError(t, ValidateStruct(&passwordField{Password: "Senha123!"}))
	assert.Error(t, ValidateStruct(&passwordField{Password: "fraca"}))
	assert.Error(t, ValidateStruct(&passwordField{Password: "semmaiuscula1!"}))
	assert.Error(t, ValidateStruct(&passwordField{Password: "SemNumero!"}))
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&usernameField{Username: "Maria"})
	errors := GetValidationErrors(err)

	if assert.Len(t, errors, 1) {
		assert.Equal(t, "username", errors[0].Field)
		assert.Equal(t, "username", errors[0].Tag)
		assert.NotEmpty(t, errors[0].Message)
	}

	assert.Empty(t, GetValidationErrors(nil))
}
