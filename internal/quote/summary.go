package quote

import "meseros-cotizador/internal/models"

type SummaryBuilder struct {
	rules Rules
}

func NewSummaryBuilder(rules Rules) *SummaryBuilder {
	return &SummaryBuilder{rules: rules.normalized()}
}

// Build composes the immutable summary for a request. Identical inputs always
// produce equal summaries.
func (b *SummaryBuilder) Build(req models.QuoteRequest, plan models.StaffingPlan, dur models.EventDuration) models.QuoteSummary {
	var fechaRaw string
	if !req.EventDate.IsZero() {
		fechaRaw = req.EventDate.Format(dateLayout)
	}

	return models.QuoteSummary{
		Nombre:     req.ContactName,
		Telefono:   req.Phone,
		Fecha:      FormatDate(req.EventDate),
		FechaRaw:   fechaRaw,
		Lugar:      req.Venue,
		Mesas:      req.TableCount,
		Invitados:  req.GuestCount,
		Plan:       plan,
		Duracion:   dur,
		HoraInicio: FormatTime(req.StartTime),
		HoraFin:    FormatTime(req.EndTime),
		Greeting:   b.rules.Greeting,
		Closing:    b.rules.Closing,
	}
}
