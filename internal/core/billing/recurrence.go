package billing

import (
	"time"

	"github.com/grana-app/grana-backend/internal/core/domain"
)

// OccurrencesInPeriod returns the dates on which a monthly rule fires inside
// the half-open period. A period spans at most two calendar months, so at most
// two candidates exist: the rule's day projected onto the start month and,
// when different, onto the end month. Candidates outside [Start, End) or past
// the rule's end date are discarded, as is a duplicate when clamping makes the
// two candidates coincide.
//
// For the monthly-by-day model this yields at most one date per period.
func OccurrencesInPeriod(rule domain.RecurringRule, p Period) []time.Time {
	candidates := []time.Time{
		SafeDate(p.Start.Year(), p.Start.Month(), rule.MonthDay),
	}
	if p.End.Year() != p.Start.Year() || p.End.Month() != p.Start.Month() {
		candidates = append(candidates, SafeDate(p.End.Year(), p.End.Month(), rule.MonthDay))
	}

	var out []time.Time
	for _, d := range candidates {
		if !p.Contains(d) {
			continue
		}
		if rule.EndDate != nil && d.After(*rule.EndDate) {
			continue
		}
		if len(out) > 0 && out[len(out)-1].Equal(d) {
			continue
		}
		out = append(out, d)
	}
	return out
}
