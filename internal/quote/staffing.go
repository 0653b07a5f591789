package quote

import "meseros-cotizador/internal/models"

// StaffingCalculator derives staff counts from a request.
//
// Bar staff is taken from the explicit count entered on the form. It is not
// estimated from the guest count.
type StaffingCalculator struct {
	rules Rules
}

func NewStaffingCalculator(rules Rules) *StaffingCalculator {
	return &StaffingCalculator{rules: rules.normalized()}
}

// WaitStaff returns one waiter per TablesPerWaiter tables, rounded up.
func (c *StaffingCalculator) WaitStaff(tables int) int {
	if tables <= 0 {
		return 0
	}
	per := c.rules.TablesPerWaiter
	n := tables / per
	if tables%per != 0 {
		n++
	}
	return n
}

// BarStaff returns the requested bar staff, never below zero
func (c *StaffingCalculator) BarStaff(requested int) int {
	return max(requested, 0)
}

// Plan computes the full staffing plan for a request
func (c *StaffingCalculator) Plan(req models.QuoteRequest) models.StaffingPlan {
	return models.StaffingPlan{
		WaitStaffCount: c.WaitStaff(req.TableCount),
		BarStaffCount:  c.BarStaff(req.BarStaffRequested),
	}
}
