package isoweek

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    WeekNumber
		wantErr bool
	}{
		{"2025-W19", WeekNumber{2025, 19}, false},
		{"2024-W01", WeekNumber{2024, 1}, false},
		{"2020-W53", WeekNumber{2020, 53}, false},
		{"2025-W5", WeekNumber{}, true},
		{"2025W19", WeekNumber{}, true},
		{"25-W19", WeekNumber{}, true},
		{"2025-W19x", WeekNumber{}, true},
		{"", WeekNumber{}, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidWeekString, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestWeeksInYear(t *testing.T) {
	// 2020 and 2026 are long ISO years
	assert.Equal(t, 53, WeeksInYear(2020))
	assert.Equal(t, 52, WeeksInYear(2023))
	assert.Equal(t, 52, WeeksInYear(2024))
	assert.Equal(t, 52, WeeksInYear(2025))
	assert.Equal(t, 53, WeeksInYear(2026))

	for year := 1990; year <= 2050; year++ {
		count := WeeksInYear(year)
		assert.Contains(t, []int{52, 53}, count, "year %d", year)
	}
}

func TestMonday(t *testing.T) {
	// first ISO week of 2025 starts December 30, 2024
	assert.Equal(t, time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), Monday(2025, 1))
	assert.Equal(t, time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC), Monday(2025, 19))
	for _, monday := range []time.Time{Monday(2020, 53), Monday(2024, 1), Monday(2025, 30)} {
		assert.Equal(t, time.Monday, monday.Weekday())
	}
}

func TestFromDate(t *testing.T) {
	tests := []struct {
		date time.Time
		want WeekNumber
	}{
		// years whose January 4 falls late in the week
		{time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC), WeekNumber{2025, 19}},
		{time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC), WeekNumber{2026, 29}},
		{time.Date(2027, 2, 10, 0, 0, 0, 0, time.UTC), WeekNumber{2027, 6}},
		{time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC), WeekNumber{2024, 18}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FromDate(tt.date), tt.date.Format("2006-01-02"))
	}

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for day.Year() <= 2027 {
		isoYear, isoWeek := day.ISOWeek()
		assert.Equal(t, WeekNumber{Year: isoYear, Week: isoWeek}, FromDate(day), day.Format("2006-01-02"))
		day = day.AddDate(0, 0, 1)
	}
}

func TestKeyOf_RoundTrip(t *testing.T) {
	for year := 2019; year <= 2030; year++ {
		for week := 1; week <= WeeksInYear(year); week++ {
			key := KeyOf(Monday(year, week))
			assert.Equal(t, Key(year, week), key, "year %d week %d", year, week)
		}
	}
}

func TestKeyOf_YearBoundary(t *testing.T) {
	// December 30, 2024 belongs to ISO 2025
	assert.Equal(t, "2025-W01", KeyOf(time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)))
	// January 1, 2021 belongs to ISO 2020 week 53
	assert.Equal(t, "2020-W53", KeyOf(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestWeeksBetween(t *testing.T) {
	a := Monday(2025, 10)
	assert.Equal(t, 0, WeeksBetween(a, a))
	assert.Equal(t, 1, WeeksBetween(a, a.AddDate(0, 0, 7)))
	assert.Equal(t, 5, WeeksBetween(a, a.AddDate(0, 0, 35)))
	assert.Equal(t, -1, WeeksBetween(a, a.AddDate(0, 0, -7)))
}

func TestGrowthWeekAt(t *testing.T) {
	monday := Monday(2024, 10)
	assert.Equal(t, 1, GrowthWeekAt(monday, monday))
	assert.Equal(t, 2, GrowthWeekAt(monday.AddDate(0, 0, 7), monday))
	// sown mid-week: still week 1 at the following Monday
	assert.Equal(t, 1, GrowthWeekAt(monday.AddDate(0, 0, 7), monday.AddDate(0, 0, 3)))
	// a reference before sowing clamps to 1
	assert.Equal(t, 1, GrowthWeekAt(monday, monday.AddDate(0, 0, 14)))
}

func TestWeekNumber_Range(t *testing.T) {
	start, end := WeekNumber{Year: 2025, Week: 19}.Range()
	assert.Equal(t, time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC), start)
	assert.True(t, end.After(start.AddDate(0, 0, 6)))
	assert.True(t, end.Before(start.AddDate(0, 0, 7)))
}

func TestWeekNumber_Ordering(t *testing.T) {
	a := WeekNumber{Year: 2024, Week: 52}
	b := WeekNumber{Year: 2025, Week: 1}
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, a.Equal(WeekNumber{Year: 2024, Week: 52}))
}
