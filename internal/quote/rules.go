package quote

import "time"

const (
	DefaultTablesPerWaiter = 4
	DefaultPhoneLength     = 10
	DefaultNameMinLength   = 3

	DefaultGreeting = "Hola, me gustaría cotizar un evento:"
	DefaultClosing  = "Quedo pendiente de información y disponibilidad. ✨"
)

// Rules holds the business constants of the quotation. It is passed by value
// into every constructor in this package and never read from globals.
type Rules struct {
	TablesPerWaiter int
	PhoneLength     int
	NameMinLength   int
	Greeting        string
	Closing         string
	// Location is used for "today" and for parsing event dates.
	Location *time.Location
}

// DefaultRules returns the rules currently used by the business
func DefaultRules() Rules {
	return Rules{
		TablesPerWaiter: DefaultTablesPerWaiter,
		PhoneLength:     DefaultPhoneLength,
		NameMinLength:   DefaultNameMinLength,
		Greeting:        DefaultGreeting,
		Closing:         DefaultClosing,
		Location:        time.Local,
	}
}

// normalized replaces unset or non-positive values with the defaults.
func (r Rules) normalized() Rules {
	d := DefaultRules()
	if r.TablesPerWaiter <= 0 {
		r.TablesPerWaiter = d.TablesPerWaiter
	}
	if r.PhoneLength <= 0 {
		r.PhoneLength = d.PhoneLength
	}
	if r.NameMinLength <= 0 {
		r.NameMinLength = d.NameMinLength
	}
	if r.Greeting == "" {
		r.Greeting = d.Greeting
	}
	if r.Closing == "" {
		r.Closing = d.Closing
	}
	if r.Location == nil {
		r.Location = d.Location
	}
	return r
}
