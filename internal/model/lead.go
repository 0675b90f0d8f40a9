// Package model holds the lead request record and its plan catalogue.
package model

import "time"

// Plan is one of the three service tiers a lead can ask about.
type Plan string

const (
	PlanStarter    Plan = "starter"
	PlanTeam       Plan = "team"
	PlanEnterprise Plan = "enterprise"
)

// Valid reports whether p is one of the known plans.
func (p Plan) Valid() bool {
	switch p {
	case PlanStarter, PlanTeam, PlanEnterprise:
		return true
	}
	return false
}

// Status is the lifecycle state stored with a lead. Only pending is ever written.
type Status string

const StatusPending Status = "pending"

// PlanOption describes a plan for rendering a selection control.
type PlanOption struct {
	Value       Plan   `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var planOptions = []PlanOption{
	{Value: PlanStarter, Label: "Starter Pack", Description: "5 utilisateurs, Ready Apps incluses"},
	{Value: PlanTeam, Label: "Team Pack", Description: "25 utilisateurs, Apps illimitées"},
	{Value: PlanEnterprise, Label: "Enterprise Pack", Description: "Illimité + on-premise"},
}

// Plans returns the plan catalogue in display order.
func Plans() []PlanOption {
	out := make([]PlanOption, len(planOptions))
	copy(out, planOptions)
	return out
}

// LeadInput is the raw form content as typed by the user.
// Minimum lengths are counted on the raw value; whitespace-only values are
// rejected as blank.
type LeadInput struct {
	Name    string `json:"name" validate:"notblank,min=2"`
	Phone   string `json:"phone" validate:"notblank,min=10"`
	Address string `json:"address" validate:"notblank,min=5"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"notblank,min=10"`
	Plan    Plan   `json:"plan" validate:"required,oneof=starter team enterprise"`
}

// LeadRequest is a validated lead, ready to be inserted into the record store.
type LeadRequest struct {
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Plan      Plan      `json:"plan"`
	CreatedAt time.Time `json:"createdAt"`
	Status    Status    `json:"status"`
}

// NewLeadRequest stamps a validated input with its creation time and pending status.
func NewLeadRequest(in LeadInput, createdAt time.Time) *LeadRequest {
	return &LeadRequest{
		Name:      in.Name,
		Phone:     in.Phone,
		Address:   in.Address,
		Email:     in.Email,
		Message:   in.Message,
		Plan:      in.Plan,
		CreatedAt: createdAt.UTC(),
		Status:    StatusPending,
	}
}
