// Package apperror maps validation failures to per-field messages and
// describes errors returned by the record store.
package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	errNameTooShort    = errors.New("Le nom doit contenir au moins 2 caractères")
	errPhoneTooShort   = errors.New("Le numéro doit contenir au moins 10 chiffres")
	errAddressTooShort = errors.New("L'adresse doit contenir au moins 5 caractères")
	errInvalidEmail    = errors.New("Email invalide")
	errMessageTooShort = errors.New("Le message doit contenir au moins 10 caractères")
	errPlanMissing     = errors.New("Veuillez choisir un pack")
	errPlanInvalid     = errors.New("Pack invalide")
)

var customErrors = map[string]error{
	"LeadInput.Name.notblank":    errNameTooShort,
	"LeadInput.Name.min":         errNameTooShort,
	"LeadInput.Phone.notblank":   errPhoneTooShort,
	"LeadInput.Phone.min":        errPhoneTooShort,
	"LeadInput.Address.notblank": errAddressTooShort,
	"LeadInput.Address.min":      errAddressTooShort,
	"LeadInput.Email.required":   errInvalidEmail,
	"LeadInput.Email.email":      errInvalidEmail,
	"LeadInput.Message.notblank": errMessageTooShort,
	"LeadInput.Message.min":      errMessageTooShort,
	"LeadInput.Plan.required":    errPlanMissing,
	"LeadInput.Plan.oneof":       errPlanInvalid,
}

// FieldErrors maps a field name to the message its input control displays.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Message returns the message for field, or "" when the field is valid.
func (fe FieldErrors) Message(field string) string {
	return fe[field]
}

// Clone returns an independent copy.
func (fe FieldErrors) Clone() FieldErrors {
	if fe == nil {
		return nil
	}
	out := make(FieldErrors, len(fe))
	for k, v := range fe {
		out[k] = v
	}
	return out
}

// CustomValidationError converts validator errors into one message per failing field.
func CustomValidationError(err error) FieldErrors {
	errs := make(FieldErrors)

	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		for _, e := range validationErr {
			field := e.StructNamespace()
			key := field + "." + e.Tag()

			errMsg := fmt.Sprintf("%s is invalid", e.Field())
			if v, ok := customErrors[key]; ok {
				errMsg = v.Error()
			}
			errs[e.Field()] = errMsg
		}
	}
	return errs
}

// StoreError is the structured rejection returned by the hosted record store.
type StoreError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *StoreError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "record store rejected insert"
	}
	if e.Code != "" {
		return fmt.Sprintf("store: %s (code %s, status %d)", msg, e.Code, e.Status)
	}
	return fmt.Sprintf("store: %s (status %d)", msg, e.Status)
}
