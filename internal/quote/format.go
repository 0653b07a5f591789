package quote

import (
	"fmt"
	"time"
)

var weekdaysES = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

var monthsES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate renders a date in the long es-MX form, e.g.
// "martes, 20 de octubre de 2026". A zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s, %d de %s de %d",
		weekdaysES[t.Weekday()], t.Day(), monthsES[t.Month()-1], t.Year())
}

// FormatTime converts "HH:mm" to a 12-hour clock, e.g. "19:05" -> "7:05 PM".
// Malformed input renders as "".
func FormatTime(time24 string) string {
	minutes, ok := parseClock(time24)
	if !ok {
		return ""
	}
	hours, mins := minutes/60, minutes%60

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	display := hours % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, mins, period)
}
