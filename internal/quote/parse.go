package quote

import (
	"strconv"
	"strings"
	"time"

	"meseros-cotizador/internal/models"
)

const dateLayout = "2006-01-02"

// parseCount reads the leading integer of s the way a browser number input
// is usually read: "12", " 12 ", "12abc" all give 12. Anything without a
// leading integer gives 0 and false.
func parseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseClock converts "H:mm" or "HH:mm", optionally followed by ":ss", to
// minutes since midnight. Seconds are checked but not counted.
func parseClock(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	h, ok := unsignedDigits(parts[0], 1, 2)
	if !ok || h > 23 {
		return 0, false
	}
	m, ok := unsignedDigits(parts[1], 2, 2)
	if !ok || m > 59 {
		return 0, false
	}
	if len(parts) == 3 {
		if sec, ok := unsignedDigits(parts[2], 2, 2); !ok || sec > 59 {
			return 0, false
		}
	}
	return h*60 + m, true
}

// unsignedDigits parses s when it is between minLen and maxLen ASCII digits.
func unsignedDigits(s string, minLen, maxLen int) (int, bool) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}

func parseDate(s string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseRequest captures raw form input as a QuoteRequest. It never fails:
// values that cannot be read become zero values. Run the Validator first when
// the result will be dispatched.
func ParseRequest(raw models.RawFormInput, rules Rules) models.QuoteRequest {
	rules = rules.normalized()

	tables, _ := parseCount(raw.Mesas)
	guests, _ := parseCount(raw.Invitados)
	bar, _ := parseCount(raw.Barra)
	date, _ := parseDate(raw.Fecha, rules.Location)

	return models.QuoteRequest{
		ContactName:       strings.TrimSpace(raw.Nombre),
		Phone:             strings.TrimSpace(raw.Telefono),
		EventDate:         date,
		Venue:             strings.TrimSpace(raw.Lugar),
		TableCount:        max(tables, 0),
		GuestCount:        max(guests, 0),
		BarStaffRequested: max(bar, 0),
		StartTime:         strings.TrimSpace(raw.HoraInicio),
		EndTime:           strings.TrimSpace(raw.HoraFin),
	}
}
