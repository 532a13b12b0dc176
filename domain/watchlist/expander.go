package watchlist

import (
	"regexp"

	"watchlist/domain/core"
)

// whitespace matches Unicode spaces as well as ASCII ones, so separators
// pasted with NBSP or ideographic spaces still split.
const whitespace = `[\s\x{0B}\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`

var (
	semicolonRuns  = regexp.MustCompile(`;+`)
	aliasWord      = regexp.MustCompile(`(?i)alias`)
	aliasSeparator = regexp.MustCompile(whitespace + `alias` + whitespace)
	dateSeparator  = regexp.MustCompile(whitespace + `atau` + whitespace)
)

// StripSemicolons removes every run of ';' anywhere in s
func StripSemicolons(s string) string {
	return semicolonRuns.ReplaceAllString(s, "")
}

// SplitAliases splits a name field on whitespace-surrounded "alias" markers,
// matched case-insensitively. A field without markers yields one segment.
func SplitAliases(text string) []string {
	cleaned := aliasWord.ReplaceAllString(StripSemicolons(text), "alias")
	return aliasSeparator.Split(cleaned, -1)
}

// SplitAlternateDates splits a birth-date field on whitespace-surrounded
// "atau". The result always has at least one element, possibly "".
func SplitAlternateDates(text string) []string {
	return dateSeparator.Split(StripSemicolons(text), -1)
}

// CrossProduct combines every a with every b, a-major
func CrossProduct[A, B, R any](as []A, bs []B, combine func(A, B) R) []R {
	out := make([]R, 0, len(as)*len(bs))
	for _, a := range as {
		for _, b := range bs {
			out = append(out, combine(a, b))
		}
	}
	return out
}

// Expander turns one raw sheet row into its normalized records
type Expander struct {
	dates *DateParser
}

// NewExpander creates an expander; a nil parser means the Indonesian defaults
func NewExpander(dates *DateParser) *Expander {
	if dates == nil {
		dates = NewDateParser(Indonesian)
	}
	return &Expander{dates: dates}
}

// Expand normalizes raw, the rowIndex-th (0-based) data row. It never fails:
// unusable values degrade to empty text or a nil birth date.
func (e *Expander) Expand(raw RawRecord, rowIndex int) []NormalizedRecord {
	shared := NormalizedRecord{
		SuspectedOf:        StripSemicolons(raw.Get(FieldSuspectedOf)),
		Nationality:        StripSemicolons(raw.Get(FieldNationality)),
		Address:            StripSemicolons(raw.Get(FieldAddress)),
		Birthplace:         StripSemicolons(raw.Get(FieldBirthplace)),
		ClassificationCode: StripSemicolons(raw.Get(FieldClassificationCode)),
		SourceRow:          SourceRowFor(rowIndex),
	}

	names := SplitAliases(raw.Get(FieldName))

	candidates := SplitAlternateDates(raw.Get(FieldBirthDate))
	dates := make([]*core.CalendarDate, len(candidates))
	for i, c := range candidates {
		dates[i] = e.dates.ParseNullable(c)
	}

	return CrossProduct(names, dates, func(name string, date *core.CalendarDate) NormalizedRecord {
		rec := shared
		rec.Name = name
		rec.BirthDate = date
		return rec
	})
}

// ExpandAll expands every row in order and concatenates the results
func (e *Expander) ExpandAll(rows []RawRecord) []NormalizedRecord {
	var out []NormalizedRecord
	for i, raw := range rows {
		out = append(out, e.Expand(raw, i)...)
	}
	return out
}
