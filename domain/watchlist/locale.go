package watchlist

import (
	"strings"
	"time"
)

// Locale carries the month-name spellings used when parsing dates.
// It is passed to the parser as a value; nothing reads it from globals.
type Locale struct {
	Code   string
	Months [12]string
}

// Indonesian is the only locale the watchlist sheets use
var Indonesian = Locale{
	Code: "id",
	Months: [12]string{
		"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember",
	},
}

// Month looks up a month by name, ignoring case
func (l Locale) Month(name string) (time.Month, bool) {
	for i, m := range l.Months {
		if m != "" && strings.EqualFold(m, name) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}
