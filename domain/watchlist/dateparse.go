package watchlist

import (
	"strings"
	"time"

	"watchlist/domain/core"
)

// DateLayout is one accepted birth-date format. Layout uses Go reference-time
// notation; when LocalizedMonths is set, the month word in the input is
// translated from the parser's locale before matching.
type DateLayout struct {
	Name            string
	Layout          string
	LocalizedMonths bool
}

var (
	// LayoutDayMonthNameYear matches "17 Agustus 1998"
	LayoutDayMonthNameYear = DateLayout{Name: "D MMMM YYYY", Layout: "2 January 2006", LocalizedMonths: true}
	// LayoutDayMonthYearDashed matches "17-08-1998"
	LayoutDayMonthYearDashed = DateLayout{Name: "DD-MM-YYYY", Layout: "02-01-2006"}
)

// DefaultDateLayouts is the order candidates are tried in
var DefaultDateLayouts = []DateLayout{
	LayoutDayMonthNameYear,
	LayoutDayMonthYearDashed,
}

// DateParser tries each layout in order and stops at the first strict match
type DateParser struct {
	locale  Locale
	layouts []DateLayout
}

// NewDateParser creates a parser for locale. Without layouts it uses DefaultDateLayouts.
func NewDateParser(locale Locale, layouts ...DateLayout) *DateParser {
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	cp := make([]DateLayout, len(layouts))
	copy(cp, layouts)
	return &DateParser{locale: locale, layouts: cp}
}

// Parse returns the calendar date for value. The whole value must match a
// layout and the day must exist in its month; anything else reports false.
func (p *DateParser) Parse(value string) (core.CalendarDate, bool) {
	if value == "" {
		return core.CalendarDate{}, false
	}
	for _, layout := range p.layouts {
		candidate := value
		if layout.LocalizedMonths {
			translated, ok := p.translateMonth(value)
			if !ok {
				continue
			}
			candidate = translated
		}
		t, err := time.Parse(layout.Layout, candidate)
		if err != nil {
			continue
		}
		return core.NewCalendarDate(t.Year(), t.Month(), t.Day()), true
	}
	return core.CalendarDate{}, false
}

// ParseNullable is Parse with failures mapped to nil
func (p *DateParser) ParseNullable(value string) *core.CalendarDate {
	d, ok := p.Parse(value)
	if !ok {
		return nil
	}
	return &d
}

// translateMonth swaps the single locale month word in value for the
// English name time.Parse understands. Tokens must be separated by exactly
// one space; time.Parse alone would accept any run of spaces.
func (p *DateParser) translateMonth(value string) (string, bool) {
	tokens := strings.Split(value, " ")
	found := false
	for i, tok := range tokens {
		if tok == "" {
			return "", false
		}
		m, ok := p.locale.Month(tok)
		if !ok {
			continue
		}
		if found {
			return "", false
		}
		tokens[i] = m.String()
		found = true
	}
	if !found {
		return "", false
	}
	return strings.Join(tokens, " "), true
}
