package quote

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"meseros-cotizador/internal/models"
)

type Validator struct {
	rules   Rules
	phoneRe *regexp.Regexp
	now     func() time.Time
	log     zerolog.Logger
}

// NewValidator creates a validator for the given rules
func NewValidator(rules Rules, log zerolog.Logger) *Validator {
	rules = rules.normalized()
	return &Validator{
		rules:   rules,
		phoneRe: regexp.MustCompile(fmt.Sprintf(`^[0-9]{%d}$`, rules.PhoneLength)),
		now:     time.Now,
		log:     log.With().Str("component", "Validator").Logger(),
	}
}

// SetClock replaces the source of "today". Tests use it to pin the date.
func (v *Validator) SetClock(now func() time.Time) {
	v.now = now
}

// Today returns the start of the current day in the rules' location
func (v *Validator) Today() time.Time {
	now := v.now().In(v.rules.Location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, v.rules.Location)
}

// MinDate is the earliest selectable event date, formatted for a date input
func (v *Validator) MinDate() string {
	return v.Today().Format(dateLayout)
}

// Validate checks every field and collects all failures in declaration
// order. It has no side effects.
func (v *Validator) Validate(raw models.RawFormInput) models.ValidationResult {
	var errs []models.FieldError
	fail := func(field models.Field, msg string) {
		errs = append(errs, models.FieldError{Field: field, Message: msg})
	}

	if name := strings.TrimSpace(raw.Nombre); name == "" || utf8.RuneCountInString(name) < v.rules.NameMinLength {
		fail(models.FieldNombre, "Ingresa tu nombre completo.")
	}

	if !v.phoneRe.MatchString(strings.TrimSpace(raw.Telefono)) {
		fail(models.FieldTelefono, fmt.Sprintf("Ingresa un teléfono válido de %d dígitos.", v.rules.PhoneLength))
	}

	if strings.TrimSpace(raw.Fecha) == "" {
		fail(models.FieldFecha, "Selecciona la fecha del evento.")
	} else if date, ok := parseDate(raw.Fecha, v.rules.Location); !ok {
		fail(models.FieldFecha, "Selecciona una fecha válida.")
	} else if date.Before(v.Today()) {
		fail(models.FieldFecha, "La fecha debe ser futura.")
	}

	if strings.TrimSpace(raw.Lugar) == "" {
		fail(models.FieldLugar, "Indica el lugar del evento.")
	}

	if n, ok := parseCount(raw.Mesas); !ok || n < 1 {
		fail(models.FieldMesas, "Ingresa al menos 1 mesa.")
	}

	if n, ok := parseCount(raw.Invitados); !ok || n < 1 {
		fail(models.FieldInvitados, "Ingresa el número de invitados.")
	}

	if _, ok := parseClock(raw.HoraInicio); !ok {
		fail(models.FieldHoraInicio, "Selecciona la hora de inicio.")
	}

	if _, ok := parseClock(raw.HoraFin); !ok {
		fail(models.FieldHoraFin, "Selecciona la hora de finalización.")
	}

	result := models.ValidationResult{
		Valid:        len(errs) == 0,
		FailedFields: make([]models.Field, 0, len(errs)),
		Errors:       errs,
	}
	for _, e := range errs {
		result.FailedFields = append(result.FailedFields, e.Field)
	}

	v.log.Debug().
		Bool("valid", result.Valid).
		Int("error_count", len(errs)).
		Msg("Form validated")

	return result
}
