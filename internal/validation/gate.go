// Package validation rejects lead candidates that do not satisfy the form
// schema before any store interaction happens.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/cbummouad/appall/internal/apperror"
	"github.com/cbummouad/appall/internal/model"
)

// ErrUnknownField is returned for a field name that is not part of the form.
var ErrUnknownField = errors.New("unknown form field")

// Form field names, as used in JSON payloads and error maps.
const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldAddress = "address"
	FieldEmail   = "email"
	FieldMessage = "message"
	FieldPlan    = "plan"
)

// Fields lists the form fields in display order.
var Fields = []string{FieldName, FieldPhone, FieldAddress, FieldEmail, FieldMessage, FieldPlan}

var structFields = map[string]string{
	FieldName:    "Name",
	FieldPhone:   "Phone",
	FieldAddress: "Address",
	FieldEmail:   "Email",
	FieldMessage: "Message",
	FieldPlan:    "Plan",
}

// NewValidator returns a validator configured for lead inputs: error fields
// are reported by their JSON name and the notblank rule is registered.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// Gate validates raw form input and produces typed lead records.
type Gate struct {
	validate *validator.Validate
	now      func() time.Time
}

// New creates a Gate. A nil validator gets NewValidator(), a nil clock time.Now.
func New(v *validator.Validate, now func() time.Time) *Gate {
	if v == nil {
		v = NewValidator()
	}
	if now == nil {
		now = time.Now
	}
	return &Gate{validate: v, now: now}
}

// Validate checks every field of in. On success it returns a pending record
// stamped with the current time; otherwise it returns apperror.FieldErrors
// holding one message for each failing field.
func (g *Gate) Validate(in model.LeadInput) (*model.LeadRequest, error) {
	if err := g.validate.Struct(in); err != nil {
		fe := apperror.CustomValidationError(err)
		if len(fe) == 0 {
			return nil, err
		}
		return nil, fe
	}
	return model.NewLeadRequest(in, g.now()), nil
}

// ValidateField checks a single field of in and returns its message, or ""
// when the field is valid.
func (g *Gate) ValidateField(in model.LeadInput, field string) (string, error) {
	sf, ok := structFields[field]
	if !ok {
		return "", ErrUnknownField
	}
	err := g.validate.StructPartial(in, sf)
	if err == nil {
		return "", nil
	}
	fe := apperror.CustomValidationError(err)
	if len(fe) == 0 {
		return "", err
	}
	return fe[field], nil
}

// KnownField reports whether field belongs to the form.
func KnownField(field string) bool {
	_, ok := structFields[field]
	return ok
}
