package quote

import (
	"math"

	"meseros-cotizador/internal/models"
)

const minutesPerDay = 24 * 60

// Duration returns the hours between two "HH:mm" times. An end time at or
// before the start time is taken to be on the next day, so equal times give
// 24 hours. The result is rounded to one decimal. If either time is missing
// or malformed it returns a zero duration and false.
func Duration(start, end string) (models.EventDuration, bool) {
	from, ok := parseClock(start)
	if !ok {
		return models.EventDuration{}, false
	}
	to, ok := parseClock(end)
	if !ok {
		return models.EventDuration{}, false
	}

	if to <= from {
		to += minutesPerDay
	}

	hours := float64(to-from) / 60
	return models.EventDuration{Hours: math.Round(hours*10) / 10}, true
}
