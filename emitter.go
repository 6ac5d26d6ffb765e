package phoneinput

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// DismissPolicy decides when a valid number triggers the dismiss side effect.
type DismissPolicy string

const (
	// DismissOnTransition dismisses only when validity turns from false to true.
	DismissOnTransition DismissPolicy = "transition"
	// DismissOnEveryValid dismisses on every event that carries a valid number.
	DismissOnEveryValid DismissPolicy = "every"
)

// ParseDismissPolicy maps "transition" or "every" to a DismissPolicy.
// An empty string selects DismissOnTransition.
func ParseDismissPolicy(value string) (DismissPolicy, error) {
	switch DismissPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", DismissOnTransition:
		return DismissOnTransition, nil
	case DismissOnEveryValid:
		return DismissOnEveryValid, nil
	default:
		return "", fmt.Errorf("phoneinput: unknown dismiss policy %q", value)
	}
}

// EmitterOption configures an Emitter.
type EmitterOption func(*Emitter)

// WithEmitterListeners appends listeners notified on every Emit.
func WithEmitterListeners(listeners ...ChangeListener) EmitterOption {
	return func(e *Emitter) {
		e.listeners = append(e.listeners, filterListeners(listeners)...)
	}
}

// WithEmitterDismisser enables the dismiss side effect. A nil dismisser disables it.
func WithEmitterDismisser(dismisser Dismisser, policy DismissPolicy) EmitterOption {
	return func(e *Emitter) {
		e.dismisser = dismisser
		e.policy = policy
	}
}

// WithEmitterLogger sets the logger used for debug records.
func WithEmitterLogger(logger *slog.Logger) EmitterOption {
	return func(e *Emitter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Emitter validates canonical numbers and notifies listeners.
type Emitter struct {
	plan      NumberingPlan
	listeners []ChangeListener
	dismisser Dismisser
	policy    DismissPolicy
	logger    *slog.Logger

	lastValid bool
}

// NewEmitter creates an Emitter backed by plan. A nil plan selects LibPhoneNumberPlan.
func NewEmitter(plan NumberingPlan, opts ...EmitterOption) *Emitter {
	if plan == nil {
		plan = LibPhoneNumberPlan{}
	}

	e := &Emitter{
		plan:   plan,
		policy: DismissOnTransition,
		logger: discardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Emit evaluates canonical against country and delivers the result.
// Listeners receive OnChangePhoneNumber first, then the dismiss side effect
// runs when due, then OnChange.
func (e *Emitter) Emit(canonical string, country *CountryRecord) ChangeEvent {
	event := e.evaluate(canonical, country)

	if !event.Valid() {
		e.logger.Error("inconsistent change event suppressed",
			slog.String("input", event.Input),
			slog.String("country", event.CountryCode),
		)
		event.IsValid = false
		event.E164 = ""
	}

	for _, listener := range e.listeners {
		listener.OnChangePhoneNumber(canonical)
	}

	if e.shouldDismiss(event.IsValid) {
		e.logger.Debug("dismiss", slog.String("e164", event.E164))
		e.dismisser.Dismiss()
	}
	e.lastValid = event.IsValid

	for _, listener := range e.listeners {
		listener.OnChange(event)
	}
	return event
}

// LastValid reports the validity of the previous event.
func (e *Emitter) LastValid() bool {
	return e.lastValid
}

func (e *Emitter) evaluate(canonical string, country *CountryRecord) ChangeEvent {
	event := ChangeEvent{Input: canonical}
	if country == nil {
		return event
	}

	event.DialCode = country.DialCode
	event.CountryCode = country.CountryCode

	number, err := e.plan.Parse(canonical, country.CountryCode)
	if err != nil {
		e.logger.Debug("parse failed",
			slog.String("input", canonical),
			slog.String("country", country.CountryCode),
			slog.Any("error", err),
		)
		return event
	}

	if !e.plan.IsValidNumber(number) {
		return event
	}

	event.E164 = e.plan.FormatE164(number)
	event.IsValid = event.E164 != ""
	return event
}

func (e *Emitter) shouldDismiss(valid bool) bool {
	if e.dismisser == nil || !valid {
		return false
	}
	if e.policy == DismissOnEveryValid {
		return true
	}
	return !e.lastValid
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
