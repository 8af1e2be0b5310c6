package seasonality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestMatchesDay(t *testing.T) {
	tests := []struct {
		expr string
		date time.Time
		want bool
	}{
		{"", day(2024, time.July, 15), true},
		{"ANUAL", day(2024, time.July, 15), true},
		{"Anual", day(2024, time.December, 1), true},
		{"anuál", day(2024, time.December, 1), true},
		{"ABR-SEP", day(2024, time.April, 1), true},
		{"ABR-SEP", day(2024, time.September, 30), true},
		{"ABR-SEP", day(2024, time.March, 31), false},
		{"ABR-SEP", day(2024, time.October, 1), false},
		// cross-year wrap
		{"OCT-ENE", day(2024, time.December, 25), true},
		{"OCT-ENE", day(2025, time.January, 15), true},
		{"OCT-ENE", day(2024, time.May, 1), false},
		// multiple tokens
		{"FEB-MAR, OCT-NOV", day(2024, time.February, 10), true},
		{"FEB-MAR, OCT-NOV", day(2024, time.October, 10), true},
		{"FEB-MAR, OCT-NOV", day(2024, time.June, 10), false},
		// single-month token
		{"MAY", day(2024, time.May, 20), true},
		{"MAY", day(2024, time.June, 1), false},
		// full names truncate, case and diacritics ignored
		{"Abril-Septiembre", day(2024, time.June, 1), true},
		{"éne-mar", day(2024, time.February, 1), true},
		// malformed tokens are skipped, valid ones still apply
		{"XXX-YYY, ABR-SEP", day(2024, time.May, 1), true},
		{"XXX-YYY", day(2024, time.May, 1), false},
		// separator-only tokens are malformed, not a crash
		{"ENE-FEB, -", day(2024, time.January, 15), true},
		{"ENE-FEB, -", day(2024, time.May, 1), false},
		{"-", day(2024, time.May, 1), false},
		{"–", day(2024, time.May, 1), false},
	}
	for _, tt := range tests {
		got := Parse(tt.expr).MatchesDay(tt.date)
		assert.Equal(t, tt.want, got, "%q on %s", tt.expr, tt.date.Format("2006-01-02"))
	}
}

func TestMatchesRange(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			name:  "cross-year range, window fully inside",
			expr:  "OCT-ENE",
			start: day(2024, time.December, 25),
			end:   day(2024, time.December, 31),
			want:  true,
		},
		{
			name:  "window straddles the start boundary",
			expr:  "ABR-SEP",
			start: day(2024, time.March, 28),
			end:   day(2024, time.April, 3),
			want:  true,
		},
		{
			name:  "window fully outside",
			expr:  "ABR-SEP",
			start: day(2024, time.January, 1),
			end:   day(2024, time.January, 7),
			want:  false,
		},
		{
			name:  "annual matches any window",
			expr:  "",
			start: day(2024, time.January, 1),
			end:   day(2024, time.January, 7),
			want:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.expr).MatchesRange(tt.start, tt.end)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(""))
	assert.NoError(t, Validate("ANUAL"))
	assert.NoError(t, Validate("OCT-ENE"))
	assert.NoError(t, Validate("Feb-Mar, Oct-Nov"))
	assert.ErrorIs(t, Validate("XXX-YYY"), ErrInvalidExpression)
	assert.ErrorIs(t, Validate("OCT-ENE, JJJ"), ErrInvalidExpression)
	assert.ErrorIs(t, Validate("ENE-FEB, -"), ErrInvalidExpression)
	assert.ErrorIs(t, Validate("-"), ErrInvalidExpression)
}

func TestSeparatorVariants(t *testing.T) {
	for _, expr := range []string{"OCT-ENE", "OCT–ENE", "OCT—ENE"} {
		assert.True(t, Parse(expr).MatchesDay(day(2024, time.November, 5)), expr)
	}
}

func TestIsAnnual(t *testing.T) {
	assert.True(t, Parse("").IsAnnual())
	assert.True(t, Parse("  anual  ").IsAnnual())
	assert.False(t, Parse("OCT-ENE").IsAnnual())
}
