package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"meseros-cotizador/internal/models"
	"meseros-cotizador/internal/quote"
)

var (
	ErrInvalidQuote = errors.New("invalid quote request")
	ErrNotPrepared  = errors.New("quote was not prepared")
	ErrNoDispatcher = errors.New("no messaging channel configured")
)

// Dispatcher hands a finished message to the messaging channel
type Dispatcher interface {
	Dispatch(ctx context.Context, message string) error
}

// Quote is the outcome of preparing a form submission
type Quote struct {
	Validation models.ValidationResult `json:"validation"`
	Request    models.QuoteRequest     `json:"request"`
	Summary    models.QuoteSummary     `json:"summary"`
	prepared   bool
}

// Ready reports whether the quote passed validation and can be dispatched
func (q *Quote) Ready() bool {
	return q != nil && q.prepared
}

type QuoteHandler struct {
	rules      quote.Rules
	validator  *quote.Validator
	staffing   *quote.StaffingCalculator
	summaries  *quote.SummaryBuilder
	controller *quote.Controller
	dispatcher Dispatcher
	log        zerolog.Logger
}

// NewQuoteHandler creates a new quote handler. dispatcher may be nil when the
// caller delivers the message itself, e.g. a browser opening the deep link.
func NewQuoteHandler(dispatcher Dispatcher, rules quote.Rules, log zerolog.Logger) *QuoteHandler {
	return &QuoteHandler{
		rules:      rules,
		validator:  quote.NewValidator(rules, log),
		staffing:   quote.NewStaffingCalculator(rules),
		summaries:  quote.NewSummaryBuilder(rules),
		controller: quote.NewController(rules),
		dispatcher: dispatcher,
		log:        log.With().Str("component", "QuoteHandler").Logger(),
	}
}

// Validator exposes the validator, mainly so callers can pin its clock
func (h *QuoteHandler) Validator() *quote.Validator {
	return h.validator
}

// Prepare validates the form and, when valid, builds the summary. The
// validation result is always set on the returned quote.
func (h *QuoteHandler) Prepare(raw models.RawFormInput) (*Quote, error) {
	result := h.validator.Validate(raw)
	q := &Quote{Validation: result}

	if !result.Valid {
		fields := make([]string, len(result.FailedFields))
		for i, f := range result.FailedFields {
			fields[i] = string(f)
		}
		h.log.Info().Strs("failed_fields", fields).Msg("Quote rejected")
		return q, fmt.Errorf("%w: %s", ErrInvalidQuote, strings.Join(fields, ", "))
	}

	req := quote.ParseRequest(raw, h.rules)
	plan := h.staffing.Plan(req)
	dur, _ := quote.Duration(req.StartTime, req.EndTime)

	q.Request = req
	q.Summary = h.summaries.Build(req, plan, dur)
	q.prepared = true

	h.log.Info().
		Int("tables", req.TableCount).
		Int("wait_staff", plan.WaitStaffCount).
		Int("bar_staff", plan.BarStaffCount).
		Float64("hours", dur.Hours).
		Msg("Quote prepared")

	return q, nil
}

// Dispatch hands the prepared quote's message to the messaging channel. A nil
// error only means the hand-off happened; delivery is not observable here.
func (h *QuoteHandler) Dispatch(ctx context.Context, q *Quote) error {
	if !q.Ready() {
		return ErrNotPrepared
	}
	if h.dispatcher == nil {
		return ErrNoDispatcher
	}
	if err := h.dispatcher.Dispatch(ctx, q.Summary.Message()); err != nil {
		h.log.Warn().Err(err).Msg("Messaging channel rejected the hand-off")
		return fmt.Errorf("failed to dispatch quote: %w", err)
	}
	h.log.Info().Str("contact", q.Summary.Nombre).Msg("Quote handed off")
	return nil
}

// Submit runs the whole submission: prepare, show the preview, then dispatch.
// preview returns before the dispatch starts.
func (h *QuoteHandler) Submit(ctx context.Context, raw models.RawFormInput, preview func(models.QuoteSummary)) (*Quote, error) {
	q, err := h.Prepare(raw)
	if err != nil {
		return q, err
	}
	if preview != nil {
		preview(q.Summary)
	}
	return q, h.Dispatch(ctx, q)
}

// Refresh recomputes the live estimates affected by a field change
func (h *QuoteHandler) Refresh(field models.Field, raw models.RawFormInput) []models.Indicator {
	return h.controller.Refresh(field, raw)
}

// RefreshAll recomputes every live estimate
func (h *QuoteHandler) RefreshAll(raw models.RawFormInput) []models.Indicator {
	return h.controller.RefreshAll(raw)
}

// MinDate is the earliest event date the form should offer
func (h *QuoteHandler) MinDate() string {
	return h.validator.MinDate()
}
