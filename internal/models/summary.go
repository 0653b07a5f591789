package models

import (
	"strconv"
	"strings"
)

// EventDuration is the length of the service in hours, one decimal place
type EventDuration struct {
	Hours float64 `json:"hours"`
}

// String renders whole hours without a decimal part ("6") and the rest with
// one decimal ("6.5").
func (d EventDuration) String() string {
	return strconv.FormatFloat(d.Hours, 'f', -1, 64)
}

// SummaryLine is one labeled entry of a quote summary
type SummaryLine struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// QuoteSummary is the snapshot both the preview and the outgoing message are
// rendered from. Build it once per submission and never mutate it.
type QuoteSummary struct {
	Nombre     string        `json:"nombre"`
	Telefono   string        `json:"telefono"`
	Fecha      string        `json:"fecha"`
	FechaRaw   string        `json:"fecha_raw"`
	Lugar      string        `json:"lugar"`
	Mesas      int           `json:"mesas"`
	Invitados  int           `json:"invitados"`
	Plan       StaffingPlan  `json:"plan"`
	Duracion   EventDuration `json:"duracion"`
	HoraInicio string        `json:"hora_inicio"`
	HoraFin    string        `json:"hora_fin"`
	Greeting   string        `json:"-"`
	Closing    string        `json:"-"`
}

// Horario is the "start - end" time range
func (s QuoteSummary) Horario() string {
	return s.HoraInicio + " - " + s.HoraFin
}

// Display returns the preview lines. The bar staff line is only present when
// bar staff was requested.
func (s QuoteSummary) Display() []SummaryLine {
	lines := []SummaryLine{
		{Icon: "👤", Label: "Nombre", Value: s.Nombre},
		{Icon: "📞", Label: "Teléfono", Value: s.Telefono},
		{Icon: "📅", Label: "Fecha", Value: s.Fecha},
		{Icon: "📍", Label: "Lugar", Value: s.Lugar},
		{Icon: "🍽", Label: "Mesas", Value: strconv.Itoa(s.Mesas)},
		{Icon: "👨‍🍳", Label: "Meseros asignados", Value: strconv.Itoa(s.Plan.WaitStaffCount)},
		{Icon: "👥", Label: "Invitados", Value: strconv.Itoa(s.Invitados)},
	}
	if s.Plan.BarStaffCount > 0 {
		lines = append(lines, SummaryLine{
			Icon:  "🍹",
			Label: "Personal de barra",
			Value: strconv.Itoa(s.Plan.BarStaffCount) + " persona(s)",
		})
	}
	lines = append(lines, SummaryLine{Icon: "⏰", Label: "Horario", Value: s.Horario()})
	return lines
}

// Message renders the WhatsApp text. It is returned unencoded.
func (s QuoteSummary) Message() string {
	var b strings.Builder
	b.WriteString(s.Greeting)
	b.WriteString("\n\n")
	for _, line := range s.Display() {
		b.WriteString(line.Icon)
		b.WriteString(" *")
		b.WriteString(line.Label)
		b.WriteString(":* ")
		b.WriteString(line.Value)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.Closing)
	return b.String()
}

// Indicator is the live estimate shown under an input while the form is
// being filled in.
type Indicator struct {
	Name  IndicatorName  `json:"name"`
	State IndicatorState `json:"state"`
	Text  string         `json:"text,omitempty"`
	Value float64        `json:"value,omitempty"`
}

// IndicatorName identifies a live estimate
type IndicatorName string

const (
	IndicatorMeseros  IndicatorName = "meseros"
	IndicatorBarra    IndicatorName = "barra"
	IndicatorDuracion IndicatorName = "duracion"
)

// IndicatorState is either hidden or shown
type IndicatorState string

const (
	IndicatorHidden IndicatorState = "hidden"
	IndicatorShown  IndicatorState = "shown"
)
