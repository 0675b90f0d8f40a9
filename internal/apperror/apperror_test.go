package apperror

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type LeadInput struct {
	Name  string `validate:"min=2"`
	Email string `validate:"required,email"`
	Other string `validate:"max=1"`
}

func TestCustomValidationError(t *testing.T) {
	err := validator.New().Struct(LeadInput{Name: "A", Email: "nope", Other: "too long"})

	fe := CustomValidationError(err)

	assert.Equal(t, FieldErrors{
		"Name":  "Le nom doit contenir au moins 2 caractères",
		"Email": "Email invalide",
		"Other": "Other is invalid",
	}, fe)
}

func TestCustomValidationError_NonValidationError(t *testing.T) {
	assert.Empty(t, CustomValidationError(errors.New("boom")))
}

func TestFieldErrors(t *testing.T) {
	fe := FieldErrors{"phone": "too short", "email": "bad"}

	assert.Equal(t, "validation failed: email: bad; phone: too short", fe.Error())
	assert.Equal(t, "bad", fe.Message("email"))
	assert.Empty(t, fe.Message("name"))

	clone := fe.Clone()
	clone["email"] = "changed"
	assert.Equal(t, "bad", fe["email"])
	assert.Nil(t, FieldErrors(nil).Clone())
}

func TestStoreError(t *testing.T) {
	err := &StoreError{Status: 409, Code: "23505", Message: "duplicate key"}
	assert.Equal(t, "store: duplicate key (code 23505, status 409)", err.Error())

	bare := &StoreError{Status: 500}
	assert.Equal(t, "store: record store rejected insert (status 500)", bare.Error())
}
