package quote

import (
	"fmt"

	"meseros-cotizador/internal/models"
)

// Controller recomputes the live estimates shown while the form is being
// filled in. It keeps no state between calls; each indicator depends only on
// its own inputs.
type Controller struct {
	staffing *StaffingCalculator
}

func NewController(rules Rules) *Controller {
	return &Controller{staffing: NewStaffingCalculator(rules)}
}

// Refresh recomputes the indicators that depend on the changed field. Fields
// that feed no indicator return nil.
func (c *Controller) Refresh(field models.Field, raw models.RawFormInput) []models.Indicator {
	switch field {
	case models.FieldMesas:
		return []models.Indicator{c.meseros(raw)}
	case models.FieldBarra:
		return []models.Indicator{c.barra(raw)}
	case models.FieldHoraInicio, models.FieldHoraFin:
		return []models.Indicator{c.duracion(raw)}
	}
	return nil
}

// RefreshAll recomputes every indicator
func (c *Controller) RefreshAll(raw models.RawFormInput) []models.Indicator {
	return []models.Indicator{c.meseros(raw), c.barra(raw), c.duracion(raw)}
}

func (c *Controller) meseros(raw models.RawFormInput) models.Indicator {
	tables, ok := parseCount(raw.Mesas)
	if !ok || tables <= 0 {
		return hidden(models.IndicatorMeseros)
	}
	waiters := c.staffing.WaitStaff(tables)
	return models.Indicator{
		Name:  models.IndicatorMeseros,
		State: models.IndicatorShown,
		Text:  fmt.Sprintf("Para %d mesa(s) se asignarán %d mesero(s).", tables, waiters),
		Value: float64(waiters),
	}
}

func (c *Controller) barra(raw models.RawFormInput) models.Indicator {
	requested, ok := parseCount(raw.Barra)
	if !ok {
		return hidden(models.IndicatorBarra)
	}
	staff := c.staffing.BarStaff(requested)
	if staff == 0 {
		return hidden(models.IndicatorBarra)
	}
	return models.Indicator{
		Name:  models.IndicatorBarra,
		State: models.IndicatorShown,
		Text:  fmt.Sprintf("Se asignarán %d persona(s) de barra.", staff),
		Value: float64(staff),
	}
}

func (c *Controller) duracion(raw models.RawFormInput) models.Indicator {
	dur, ok := Duration(raw.HoraInicio, raw.HoraFin)
	if !ok {
		return hidden(models.IndicatorDuracion)
	}
	return models.Indicator{
		Name:  models.IndicatorDuracion,
		State: models.IndicatorShown,
		Text:  fmt.Sprintf("El servicio duraría %s hora(s).", dur),
		Value: dur.Hours,
	}
}

func hidden(name models.IndicatorName) models.Indicator {
	return models.Indicator{Name: name, State: models.IndicatorHidden}
}
