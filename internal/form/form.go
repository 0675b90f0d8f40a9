// Package form implements the demo request dialog: it owns the entered
// values, surfaces per-field validation messages and drives a submission
// through idle, submitting and submitted.
package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cbummouad/appall/internal/apperror"
	"github.com/cbummouad/appall/internal/model"
	"github.com/cbummouad/appall/internal/store"
	"github.com/cbummouad/appall/internal/validation"
)

// DefaultAutoCloseDelay is how long the success message stays up before the dialog closes.
const DefaultAutoCloseDelay = 2 * time.Second

// SubmitFailedMessage is shown to the user when the store rejects a submission.
const SubmitFailedMessage = "L'envoi de la demande a échoué, veuillez réessayer."

var (
	ErrSubmitInFlight   = errors.New("form: a submission is already in flight")
	ErrAlreadySubmitted = errors.New("form: submission already accepted")
	ErrUnmounted        = errors.New("form: unmounted")
)

// State is the submission state of the form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	}
	return "unknown"
}

// Timer is the handle returned by Options.AfterFunc.
type Timer interface {
	Stop() bool
}

// Options configures a Form. Every field is optional.
type Options struct {
	// DefaultPlan pre-selects the plan when the form is created, closed or
	// reset after a success. Empty means no pre-selection.
	DefaultPlan model.Plan
	// OnClose is called whenever the dialog closes.
	OnClose func()
	// AutoCloseDelay defaults to DefaultAutoCloseDelay.
	AutoCloseDelay time.Duration
	// AfterFunc schedules the auto-close. Defaults to time.AfterFunc.
	AfterFunc func(d time.Duration, f func()) Timer
	Logger    *zap.Logger
}

// Form is the lead capture dialog. Its methods are safe for concurrent use;
// Submit blocks the calling goroutine while the insert is pending.
type Form struct {
	gate  *validation.Gate
	store store.Store
	opts  Options
	log   *zap.Logger

	mu        sync.Mutex
	state     State
	open      bool
	mounted   bool
	validated bool
	values    model.LeadInput
	errors    apperror.FieldErrors
	submitErr string
	timer     Timer
}

// New creates a closed, idle form.
func New(gate *validation.Gate, s store.Store, opts Options) *Form {
	if opts.AutoCloseDelay <= 0 {
		opts.AutoCloseDelay = DefaultAutoCloseDelay
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Form{
		gate:    gate,
		store:   s,
		opts:    opts,
		log:     log,
		mounted: true,
		values:  model.LeadInput{Plan: opts.DefaultPlan},
	}
}

// Open shows the dialog.
func (f *Form) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
}

// IsOpen reports whether the dialog is visible.
func (f *Form) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Close hides the dialog and fires OnClose. Values entered while idle are
// discarded; a submission in flight keeps running.
func (f *Form) Close() {
	f.mu.Lock()
	if !f.open {
		f.mu.Unlock()
		return
	}
	f.open = false
	if f.state == StateIdle {
		f.resetLocked()
	}
	f.mu.Unlock()

	f.notifyClose()
}

// SetField updates one raw value. Once the form has been validated, only
// the changed field is re-checked so sibling messages stay as they are.
// Values are read-only outside the idle state.
func (f *Form) SetField(field, value string) error {
	if !validation.KnownField(field) {
		return validation.ErrUnknownField
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateSubmitted:
		return ErrAlreadySubmitted
	}

	switch field {
	case validation.FieldName:
		f.values.Name = value
	case validation.FieldPhone:
		f.values.Phone = value
	case validation.FieldAddress:
		f.values.Address = value
	case validation.FieldEmail:
		f.values.Email = value
	case validation.FieldMessage:
		f.values.Message = value
	case validation.FieldPlan:
		f.values.Plan = model.Plan(value)
	}

	if !f.validated {
		return nil
	}
	msg, err := f.gate.ValidateField(f.values, field)
	if err != nil {
		return err
	}
	if msg == "" {
		delete(f.errors, field)
	} else {
		if f.errors == nil {
			f.errors = make(apperror.FieldErrors)
		}
		f.errors[field] = msg
	}
	return nil
}

// Values returns the current raw values.
func (f *Form) Values() model.LeadInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns a copy of the current field messages.
func (f *Form) Errors() apperror.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors.Clone()
}

// FieldError returns the message displayed under field, if any.
func (f *Form) FieldError(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors.Message(field)
}

// State returns the submission state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// CanSubmit reports whether the submit control is enabled.
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mounted && f.state == StateIdle
}

// SubmitError returns the user-facing message of the last failed submission.
func (f *Form) SubmitError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitErr
}

// Submit validates the current values and, when they all pass, inserts the
// record. It returns apperror.FieldErrors if validation fails and the store
// error if the insert fails; in both cases the entered values are kept.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if !f.mounted {
		f.mu.Unlock()
		return ErrUnmounted
	}
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return ErrSubmitInFlight
	case StateSubmitted:
		f.mu.Unlock()
		return ErrAlreadySubmitted
	}

	f.validated = true
	f.submitErr = ""
	rec, err := f.gate.Validate(f.values)
	if err != nil {
		var fe apperror.FieldErrors
		if errors.As(err, &fe) {
			f.errors = fe.Clone()
		}
		f.mu.Unlock()
		f.log.Debug("demo request rejected by validation", zap.Error(err))
		return err
	}
	f.errors = nil
	f.state = StateSubmitting
	f.mu.Unlock()

	insertErr := f.store.Insert(ctx, rec)

	f.mu.Lock()
	if !f.mounted {
		f.mu.Unlock()
		f.log.Debug("discarding submission result for unmounted form", zap.Error(insertErr))
		return insertErr
	}
	if insertErr != nil {
		f.state = StateIdle
		f.submitErr = SubmitFailedMessage
		f.mu.Unlock()
		f.log.Error("demo request submission failed", zap.Error(insertErr))
		return insertErr
	}

	f.state = StateSubmitted
	f.resetLocked()
	f.timer = f.opts.AfterFunc(f.opts.AutoCloseDelay, f.autoClose)
	f.mu.Unlock()

	f.log.Info("demo request submitted", zap.String("plan", string(rec.Plan)))
	return nil
}

// Unmount detaches the form from its view: the auto-close timer is stopped
// and results of a submission still in flight are discarded.
func (f *Form) Unmount() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mounted = false
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *Form) autoClose() {
	f.mu.Lock()
	if !f.mounted || f.state != StateSubmitted {
		f.mu.Unlock()
		return
	}
	f.state = StateIdle
	f.timer = nil
	wasOpen := f.open
	f.open = false
	f.mu.Unlock()

	if wasOpen {
		f.notifyClose()
	}
}

func (f *Form) resetLocked() {
	f.values = model.LeadInput{Plan: f.opts.DefaultPlan}
	f.errors = nil
	f.submitErr = ""
	f.validated = false
}

func (f *Form) notifyClose() {
	if f.opts.OnClose != nil {
		f.opts.OnClose()
	}
}
