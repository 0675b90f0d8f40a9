package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanValid(t *testing.T) {
	assert.True(t, PlanStarter.Valid())
	assert.True(t, PlanTeam.Valid())
	assert.True(t, PlanEnterprise.Valid())
	assert.False(t, Plan("").Valid())
	assert.False(t, Plan("gold").Valid())
}

func TestPlans_ReturnsCopy(t *testing.T) {
	plans := Plans()
	require.Len(t, plans, 3)
	assert.Equal(t, PlanStarter, plans[0].Value)
	assert.Equal(t, PlanEnterprise, plans[2].Value)

	plans[0].Label = "changed"
	assert.Equal(t, "Starter Pack", Plans()[0].Label)
}

func TestNewLeadRequest_StampsStatusAndTime(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	at := time.Date(2026, 3, 4, 10, 0, 0, 0, loc)

	rec := NewLeadRequest(LeadInput{Name: "Alice Martin", Plan: PlanTeam}, at)

	assert.Equal(t, StatusPending, rec.Status)
	assert.Equal(t, time.UTC, rec.CreatedAt.Location())
	assert.True(t, rec.CreatedAt.Equal(at))

	raw, err := json.Marshal(rec)
	require.NoError(t, err)
	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Equal(t, "pending", flat["status"])
	assert.Equal(t, "team", flat["plan"])
	assert.Equal(t, "2026-03-04T09:00:00Z", flat["createdAt"])
}
