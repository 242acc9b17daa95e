package billing

import "time"

// Period is a half-open statement interval [Start, End). The closing day
// itself belongs to the next period.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether d falls inside the half-open interval.
func (p Period) Contains(d time.Time) bool {
	return !d.Before(p.Start) && d.Before(p.End)
}

// PeriodFor computes the statement interval for a card with the given closing
// day and a target month: [closing day of the previous month, closing day of
// the target month). Closing days past the end of a short month clamp to its
// last day, which can make the interval narrower than a full month in some
// transitions; that is accepted, not corrected.
func PeriodFor(closingDay int, target YearMonth) Period {
	prev := target.AddMonths(-1)
	return Period{
		Start: SafeDate(prev.Year, prev.Month, closingDay),
		End:   SafeDate(target.Year, target.Month, closingDay),
	}
}
