// Package handler contains the HTTP handlers of the lead capture API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cbummouad/appall/internal/apperror"
	"github.com/cbummouad/appall/internal/metrics"
	"github.com/cbummouad/appall/internal/model"
	"github.com/cbummouad/appall/internal/store"
	"github.com/cbummouad/appall/internal/validation"
)

// maxBodyBytes caps the size of a submitted form.
const maxBodyBytes = 64 << 10

// Handler wraps HTTP handlers with logger, validation gate and record store.
type Handler struct {
	log     *zap.Logger
	gate    *validation.Gate
	store   store.Store
	metrics *metrics.LeadMetrics
}

// New creates a new Handler instance. m may be nil.
func New(log *zap.Logger, gate *validation.Gate, s store.Store, m *metrics.LeadMetrics) *Handler {
	return &Handler{log: log, gate: gate, store: s, metrics: m}
}

// Healthz is a simple health check endpoint.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Plans lists the plans a lead can choose from.
func (h *Handler) Plans(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, model.Plans())
}

// CreateDemoRequest validates a submitted form and inserts it into the
// record store. The optional pack query parameter pre-selects the plan when
// the body leaves it empty.
func (h *Handler) CreateDemoRequest(w http.ResponseWriter, r *http.Request) {
	var in model.LeadInput
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.log.Error("failed to decode json", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request payload",
		})
		return
	}
	if in.Plan == "" {
		if pack := model.Plan(r.URL.Query().Get("pack")); pack.Valid() {
			in.Plan = pack
		}
	}

	rec, err := h.gate.Validate(in)
	if err != nil {
		var fe apperror.FieldErrors
		if !errors.As(err, &fe) {
			h.log.Error("validation error", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		h.log.Warn("validation failed", zap.Error(fe))
		h.metrics.ObserveSubmission(metrics.OutcomeInvalid, planLabel(in.Plan))
		h.metrics.ObserveFieldFailures(fe)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]apperror.FieldErrors{"errors": fe})
		return
	}

	start := time.Now()
	if err := h.store.Insert(r.Context(), rec); err != nil {
		h.metrics.ObserveInsert(metrics.OutcomeFailed, time.Since(start).Seconds())
		h.metrics.ObserveSubmission(metrics.OutcomeFailed, string(rec.Plan))
		h.log.Error("demo request insert failed", zap.String("plan", string(rec.Plan)), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "submission failed, please try again",
		})
		return
	}
	h.metrics.ObserveInsert(metrics.OutcomeAccepted, time.Since(start).Seconds())
	h.metrics.ObserveSubmission(metrics.OutcomeAccepted, string(rec.Plan))

	writeJSON(w, http.StatusCreated, map[string]string{
		"status": string(rec.Status),
	})
}

// planLabel keeps the metrics label set bounded to the known plans.
func planLabel(p model.Plan) string {
	if p.Valid() {
		return string(p)
	}
	return metrics.PlanUnknown
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
