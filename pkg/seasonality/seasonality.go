package seasonality

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Seasonality is a parsed month-interval expression such as "OCT-ENE" or
// "Feb-Mar, Oct-Nov". An empty expression or the literal "ANUAL" applies
// year-round. Ranges where start > end wrap over the year boundary.
type Seasonality struct {
	expr   string
	annual bool
	ranges []monthRange
}

type monthRange struct {
	start int // 1..12
	end   int // 1..12
}

var monthsEs = []string{"ENE", "FEB", "MAR", "ABR", "MAY", "JUN", "JUL", "AGO", "SEP", "OCT", "NOV", "DIC"}

var ErrInvalidExpression = fmt.Errorf("invalid seasonality expression")

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalize(s string) string {
	out, _, err := transform.String(stripDiacritics, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(strings.TrimSpace(out))
}

// monthIndex resolves a Spanish month token to 1..12, accepting full names
// by truncation ("Abril" -> "ABR"). Returns 0 when the token is unknown.
func monthIndex(token string) int {
	t := normalize(token)
	if len(t) > 3 {
		t = t[:3]
	}
	for i, m := range monthsEs {
		if m == t {
			return i + 1
		}
	}
	return 0
}

// Parse normalizes an expression into month ranges once, so matching does
// not re-tokenize per day. Unresolvable tokens are skipped; use Validate
// to reject them instead.
func Parse(expr string) Seasonality {
	s := Seasonality{expr: expr}
	if normalize(expr) == "" || normalize(expr) == "ANUAL" {
		s.annual = true
		return s
	}
	for _, raw := range strings.Split(expr, ",") {
		r, err := parseToken(raw)
		if err != nil {
			continue
		}
		s.ranges = append(s.ranges, r)
	}
	return s
}

// Validate reports the first malformed token of an expression. Used on
// recipe writes when strict seasonality is configured; Parse stays tolerant
// for data already in the catalog.
func Validate(expr string) error {
	if normalize(expr) == "" || normalize(expr) == "ANUAL" {
		return nil
	}
	for _, raw := range strings.Split(expr, ",") {
		if _, err := parseToken(raw); err != nil {
			return err
		}
	}
	return nil
}

func parseToken(raw string) (monthRange, error) {
	seg := normalize(raw)
	if seg == "" {
		return monthRange{}, fmt.Errorf("%w: empty token", ErrInvalidExpression)
	}
	// accepts "-", "–" and "—" as range separators
	parts := strings.FieldsFunc(seg, func(r rune) bool {
		return r == '-' || r == '–' || r == '—'
	})
	if len(parts) == 0 {
		// token was nothing but separators, e.g. "-"
		return monthRange{}, fmt.Errorf("%w: empty token", ErrInvalidExpression)
	}
	start := monthIndex(parts[0])
	end := start
	if len(parts) > 1 {
		end = monthIndex(parts[1])
	}
	if start == 0 || end == 0 {
		return monthRange{}, fmt.Errorf("%w: unknown month in %q", ErrInvalidExpression, strings.TrimSpace(raw))
	}
	return monthRange{start: start, end: end}, nil
}

// IsAnnual returns true for empty or "ANUAL" expressions.
func (s Seasonality) IsAnnual() bool {
	return s.annual
}

// String returns the original expression.
func (s Seasonality) String() string {
	return s.expr
}

// MatchesDay returns true when the date's month falls inside any parsed
// range. Annual seasonality matches every day.
func (s Seasonality) MatchesDay(date time.Time) bool {
	if s.annual {
		return true
	}
	m := int(date.UTC().Month())
	for _, r := range s.ranges {
		if r.start <= r.end {
			if m >= r.start && m <= r.end {
				return true
			}
		} else {
			// range wraps the year boundary, e.g. OCT-ENE
			if m >= r.start || m <= r.end {
				return true
			}
		}
	}
	return false
}

// MatchesRange returns true when any calendar day in the inclusive
// [start, end] span matches. A week straddling a seasonal boundary still
// counts as in season.
func (s Seasonality) MatchesRange(start, end time.Time) bool {
	if s.annual {
		return true
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if s.MatchesDay(d) {
			return true
		}
	}
	return false
}
