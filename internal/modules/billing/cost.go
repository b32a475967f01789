package billing

import (
	"math"
	"time"
)

const hoursPerDay = 24

// BilledDays returns the number of whole days between two calendar dates,
// rounding partial days up, never less than one.
func BilledDays(checkIn, checkOut time.Time) int {
	in := midnight(checkIn)
	out := midnight(checkOut)

	days := int(math.Ceil(out.Sub(in).Hours() / hoursPerDay))
	if days < 1 {
		return 1
	}
	return days
}

// Calculate returns billed days and the total cost rounded to cents.
func Calculate(checkIn, checkOut time.Time, rate float64) (int, float64) {
	days := BilledDays(checkIn, checkOut)
	return days, RoundCents(float64(days) * rate)
}

func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// midnight drops the time of day in t's own location. The result is expressed
// in UTC so DST shifts never change the distance between two dates.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
