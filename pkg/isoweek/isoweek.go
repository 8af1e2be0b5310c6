package isoweek

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// WeekNumber identifies one ISO 8601 week. Weeks run Monday to Sunday and
// week 1 is the week containing the year's first Thursday.
type WeekNumber struct {
	Year int
	Week int
}

var ErrInvalidWeekString = fmt.Errorf("invalid ISO week string")

var weekStringPattern = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// Parse converts the ISO 8601 week format, e.g. "2025-W03", to a WeekNumber.
func Parse(isoWeekString string) (WeekNumber, error) {
	m := weekStringPattern.FindStringSubmatch(isoWeekString)
	if m == nil {
		return WeekNumber{}, fmt.Errorf("%w: %q (expected YYYY-Www)", ErrInvalidWeekString, isoWeekString)
	}
	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	if week < 1 || week > 53 {
		return WeekNumber{}, fmt.Errorf("%w: week %d out of range", ErrInvalidWeekString, week)
	}
	return WeekNumber{Year: year, Week: week}, nil
}

// FromDate returns the ISO week containing the given date. The date is
// shifted to its week's Thursday first, so dates in late December or early
// January land in the correct ISO year.
func FromDate(date time.Time) WeekNumber {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayNum := (int(d.Weekday()) + 6) % 7 // Monday = 0
	thursday := d.AddDate(0, 0, -dayNum+3)
	// the Thursday's year is the ISO year, and its ordinal day fixes the week
	week := (thursday.YearDay()-1)/7 + 1
	return WeekNumber{Year: thursday.Year(), Week: week}
}

// KeyOf formats the ISO week containing date as "YYYY-Www".
func KeyOf(date time.Time) string {
	return FromDate(date).String()
}

// Key formats a year/week pair as "YYYY-Www" without range checking.
func Key(year, week int) string {
	return WeekNumber{Year: year, Week: week}.String()
}

// Monday returns the Monday (UTC midnight) of the given ISO year and week.
func Monday(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	dayOfWeek := int(jan4.Weekday())
	if dayOfWeek == 0 {
		dayOfWeek = 7 // Monday = 1 .. Sunday = 7
	}
	mondayWeek1 := jan4.AddDate(0, 0, -(dayOfWeek - 1))
	return mondayWeek1.AddDate(0, 0, (week-1)*7)
}

// WeeksBetween returns the whole number of 7-day steps from a to b.
// Both arguments are expected to be Monday-aligned.
func WeeksBetween(a, b time.Time) int {
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 && days%7 != 0 {
		return days/7 - 1
	}
	return days / 7
}

// WeeksInYear returns the number of ISO weeks (52 or 53) in the given year.
func WeeksInYear(year int) int {
	return WeeksBetween(Monday(year, 1), Monday(year+1, 1))
}

// GrowthWeekAt returns a planting's age in whole weeks at the given reference
// Monday, 1-indexed: the sowing week itself is growth week 1. The result is
// clamped so it never reports below 1 even when the reference precedes sowing.
func GrowthWeekAt(referenceMonday, sowingDate time.Time) int {
	days := int(referenceMonday.Sub(sowingDate).Hours() / 24)
	age := days/7 + 1
	if days < 0 {
		age = 1
	}
	if age < 1 {
		age = 1
	}
	return age
}

// String returns the ISO 8601 week format, e.g. "2025-W03".
func (w WeekNumber) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}

// Monday returns the Monday (UTC midnight) of this week.
func (w WeekNumber) Monday() time.Time {
	return Monday(w.Year, w.Week)
}

// Range returns the inclusive span of this week: Monday 00:00:00 UTC to
// Sunday 23:59:59.999 UTC.
func (w WeekNumber) Range() (time.Time, time.Time) {
	start := w.Monday()
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}

// Equal returns true when both the year and week match.
func (w WeekNumber) Equal(other WeekNumber) bool {
	return w.Year == other.Year && w.Week == other.Week
}

// Before reports whether w refers to a week that occurs before other.
func (w WeekNumber) Before(other WeekNumber) bool {
	if w.Year != other.Year {
		return w.Year < other.Year
	}
	return w.Week < other.Week
}
