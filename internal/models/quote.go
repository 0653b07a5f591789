package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Field identifies a form input. Values match the form element IDs used by
// the presentation layer.
type Field string

const (
	FieldNombre     Field = "nombre"
	FieldTelefono   Field = "telefono"
	FieldFecha      Field = "fecha"
	FieldLugar      Field = "lugar"
	FieldMesas      Field = "mesas"
	FieldInvitados  Field = "invitados"
	FieldBarra      Field = "barra"
	FieldHoraInicio Field = "horaInicio"
	FieldHoraFin    Field = "horaFin"
)

// RawFormInput is the form exactly as typed. Nothing here is trusted.
type RawFormInput struct {
	Nombre     string `json:"nombre"`
	Telefono   string `json:"telefono"`
	Fecha      string `json:"fecha"`
	Lugar      string `json:"lugar"`
	Mesas      string `json:"mesas"`
	Invitados  string `json:"invitados"`
	Barra      string `json:"barra"`
	HoraInicio string `json:"horaInicio"`
	HoraFin    string `json:"horaFin"`
}

// UnmarshalJSON accepts each field as a string, number, boolean or null, so
// a client sending `"mesas": 10` or `"barra": true` is read the same way as
// the browser form. Numbers keep their literal text. Objects and arrays read
// as empty and fail validation like any other missing value.
func (r *RawFormInput) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	targets := map[string]*string{
		string(FieldNombre):     &r.Nombre,
		string(FieldTelefono):   &r.Telefono,
		string(FieldFecha):      &r.Fecha,
		string(FieldLugar):      &r.Lugar,
		string(FieldMesas):      &r.Mesas,
		string(FieldInvitados):  &r.Invitados,
		string(FieldBarra):      &r.Barra,
		string(FieldHoraInicio): &r.HoraInicio,
		string(FieldHoraFin):    &r.HoraFin,
	}
	for key, raw := range fields {
		if target, ok := targets[key]; ok {
			*target = rawText(raw)
		}
	}
	return nil
}

func rawText(raw json.RawMessage) string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// QuoteRequest is a parsed quotation request
type QuoteRequest struct {
	ContactName       string    `json:"contact_name"`
	Phone             string    `json:"phone"`
	EventDate         time.Time `json:"event_date"`
	Venue             string    `json:"venue"`
	TableCount        int       `json:"table_count"`
	GuestCount        int       `json:"guest_count"`
	BarStaffRequested int       `json:"bar_staff_requested"`
	StartTime         string    `json:"start_time"`
	EndTime           string    `json:"end_time"`
}

// FieldError is a single failed rule with the message shown next to the input
type FieldError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds every failed field in declaration order.
type ValidationResult struct {
	Valid        bool         `json:"valid"`
	FailedFields []Field      `json:"failed_fields"`
	Errors       []FieldError `json:"errors,omitempty"`
}

// FirstFailed returns the field the presentation layer should focus.
func (r ValidationResult) FirstFailed() (Field, bool) {
	if len(r.FailedFields) == 0 {
		return "", false
	}
	return r.FailedFields[0], true
}

// StaffingPlan holds the staff assigned to an event
type StaffingPlan struct {
	WaitStaffCount int `json:"wait_staff_count"`
	BarStaffCount  int `json:"bar_staff_count"`
}
