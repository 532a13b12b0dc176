package watchlist

import (
	"reflect"
	"testing"
	"time"

	"watchlist/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *core.CalendarDate {
	c := core.NewCalendarDate(y, m, d)
	return &c
}

func TestStripSemicolons(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Jl;;; Merdeka", "Jl Merdeka"},
		{";Jakarta;", "Jakarta"},
		{";;;;", ""},
		{"", ""},
		{"no semicolons", "no semicolons"},
		{"a;b;;c;;;d", "abcd"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, StripSemicolons(tt.input), "input %q", tt.input)
	}
}

func TestSplitAliases(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"no alias", "Budi Santoso", []string{"Budi Santoso"}},
		{"empty", "", []string{""}},
		{"lowercase", "Budi alias Budiman", []string{"Budi", "Budiman"}},
		{"mixed case", "Budi Alias Budiman ALIAS Abu", []string{"Budi", "Budiman", "Abu"}},
		{"odd case", "Budi aLiAs Budiman", []string{"Budi", "Budiman"}},
		{"wide whitespace", "Budi \t alias  Budiman", []string{"Budi", "Budiman"}},
		{"semicolons stripped first", "Budi;; alias ;Budiman", []string{"Budi", "Budiman"}},
		{"not surrounded by whitespace", "Aliasman", []string{"aliasman"}},
		{"leading marker kept", "alias Budi", []string{"alias Budi"}},
		{"empty leading segment", " alias Budi", []string{"", "Budi"}},
		{"adjacent markers", "Budi alias alias Abu", []string{"Budi", "alias Abu"}},
		{"no-break spaces", "Budi\u00a0alias\u00a0Abu", []string{"Budi", "Abu"}},
		{"ideographic and narrow spaces", "Budi\u3000alias\u202fAbu", []string{"Budi", "Abu"}},
		{"byte order mark", "Budi\ufeffalias Abu", []string{"Budi", "Abu"}},
		{"no-break space inside name kept", "Budi\u00a0Santoso", []string{"Budi\u00a0Santoso"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitAliases(tt.input))
		})
	}
}

func TestSplitAlternateDates(t *testing.T) {
	assert.Equal(t, []string{""}, SplitAlternateDates(""))
	assert.Equal(t, []string{"17-08-1998"}, SplitAlternateDates("17-08-1998;"))
	assert.Equal(t,
		[]string{"1 Januari 1990", "01-01-1991"},
		SplitAlternateDates("1 Januari 1990 atau 01-01-1991"))
	assert.Equal(t,
		[]string{"1990", "1991", "1992"},
		SplitAlternateDates("1990 atau 1991  atau\t1992"))
	assert.Equal(t,
		[]string{"1990", "1991"},
		SplitAlternateDates("1990\u00a0atau\u00a01991"))
	assert.Equal(t,
		[]string{"1990", "1991"},
		SplitAlternateDates("1990\u2028atau\v1991"))
	// "atau" inside a word is not a separator
	assert.Equal(t, []string{"Batauan"}, SplitAlternateDates("Batauan"))
}

func TestCrossProduct(t *testing.T) {
	got := CrossProduct([]string{"a", "b"}, []int{1, 2, 3}, func(s string, n int) string {
		return s + string(rune('0'+n))
	})
	assert.Equal(t, []string{"a1", "a2", "a3", "b1", "b2", "b3"}, got)

	empty := CrossProduct([]string{}, []int{1}, func(s string, n int) string { return s })
	assert.Empty(t, empty)
}

func TestExpandEmptyRecord(t *testing.T) {
	e := NewExpander(nil)

	for _, raw := range []RawRecord{nil, {}, {FieldName: "", FieldBirthDate: ""}} {
		out := e.Expand(raw, 0)
		require.Len(t, out, 1)
		assert.Equal(t, "", out[0].Name)
		assert.Nil(t, out[0].BirthDate)
		assert.Equal(t, 2, out[0].SourceRow)
	}
}

func TestExpandAliasAndDateProduct(t *testing.T) {
	e := NewExpander(NewDateParser(Indonesian))
	raw := RawRecord{
		FieldName:               "Budi alias Budiman alias Budi Santoso",
		FieldSuspectedOf:        "Terorisme;",
		FieldNationality:        "Indonesia",
		FieldAddress:            "Jl;;; Merdeka No. 1",
		FieldBirthplace:         "Solo",
		FieldBirthDate:          "1 Januari 1990 atau 01-01-1991",
		FieldClassificationCode: "A-01;;",
	}

	out := e.Expand(raw, 4)
	require.Len(t, out, 6)

	expectedNames := []string{"Budi", "Budi", "Budiman", "Budiman", "Budi Santoso", "Budi Santoso"}
	expectedDates := []*core.CalendarDate{
		date(1990, time.January, 1), date(1991, time.January, 1),
		date(1990, time.January, 1), date(1991, time.January, 1),
		date(1990, time.January, 1), date(1991, time.January, 1),
	}

	for i, rec := range out {
		assert.Equal(t, expectedNames[i], rec.Name, "record %d", i)
		require.NotNil(t, rec.BirthDate, "record %d", i)
		assert.True(t, rec.BirthDate.Equal(*expectedDates[i]), "record %d: got %s", i, rec.BirthDate)
		assert.Equal(t, "Terorisme", rec.SuspectedOf)
		assert.Equal(t, "Indonesia", rec.Nationality)
		assert.Equal(t, "Jl Merdeka No. 1", rec.Address)
		assert.Equal(t, "Solo", rec.Birthplace)
		assert.Equal(t, "A-01", rec.ClassificationCode)
		assert.Equal(t, 6, rec.SourceRow)
	}
}

func TestExpandCountInvariant(t *testing.T) {
	e := NewExpander(nil)
	cases := []RawRecord{
		{FieldName: "A"},
		{FieldName: "A alias B", FieldBirthDate: "garbage"},
		{FieldName: "A alias B alias C", FieldBirthDate: "x atau y atau z atau w"},
		{FieldBirthDate: "17-08-1998 atau 18-08-1998"},
	}

	for i, raw := range cases {
		aliases := len(SplitAliases(raw.Get(FieldName)))
		dates := len(SplitAlternateDates(raw.Get(FieldBirthDate)))
		if dates < 1 {
			dates = 1
		}
		out := e.Expand(raw, i)
		assert.Len(t, out, aliases*dates, "case %d", i)
		for _, rec := range out {
			assert.Equal(t, i+2, rec.SourceRow)
		}
	}
}

func TestExpandUnparseableDatesDegradeToNull(t *testing.T) {
	e := NewExpander(nil)
	out := e.Expand(RawRecord{FieldName: "Abu", FieldBirthDate: "31 Februari 1998 atau 17-08-1998"}, 0)
	require.Len(t, out, 2)
	assert.Nil(t, out[0].BirthDate)
	require.NotNil(t, out[1].BirthDate)
	assert.Equal(t, "1998-08-17T00:00:00.000Z", out[1].BirthDateISO())
}

func TestExpandAllOrderAndIdempotence(t *testing.T) {
	e := NewExpander(nil)
	rows := []RawRecord{
		{FieldName: "A alias B", FieldBirthDate: "17 Agustus 1998"},
		{FieldName: "C"},
		{FieldName: "D", FieldBirthDate: "01-02-2000 atau 02-02-2000"},
	}

	first := e.ExpandAll(rows)
	second := e.ExpandAll(rows)
	require.Len(t, first, 5)
	assert.True(t, reflect.DeepEqual(first, second))

	var sourceRows []int
	for _, rec := range first {
		sourceRows = append(sourceRows, rec.SourceRow)
	}
	assert.Equal(t, []int{2, 2, 3, 4, 4}, sourceRows)
}

func TestNormalizedRecordValues(t *testing.T) {
	rec := NormalizedRecord{
		Name:      "Budi",
		BirthDate: date(1998, time.August, 17),
		SourceRow: 2,
	}
	values := rec.Values()
	require.Len(t, values, len(Columns))
	assert.Equal(t, "Budi", values[0])
	assert.Equal(t, "1998-08-17T00:00:00.000Z", values[5])
	assert.Equal(t, "2", values[7])

	rec.BirthDate = nil
	assert.Equal(t, "", rec.Values()[5])
}
