package utils

import (
	"fmt"
	"time"
)

var norwegianMonths = [...]string{
	"januar", "februar", "mars", "april", "mai", "juni",
	"juli", "august", "september", "oktober", "november", "desember",
}

// FormatDateLongNO renders a date as "15. januar 2024".
func FormatDateLongNO(t time.Time) string {
	return fmt.Sprintf("%d. %s %d", t.Day(), norwegianMonths[t.Month()-1], t.Year())
}

// FormatDateShortNO renders a date as "15.01.2024".
func FormatDateShortNO(t time.Time) string {
	return t.Format("02.01.2006")
}
