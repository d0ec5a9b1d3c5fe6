package report

import "time"

// DateLayout is how report dates go over the wire.
const DateLayout = "2006-01-02"

// WeekRange is the most recently completed Monday-Sunday week. Both bounds
// are calendar dates at local midnight; End-Start is always exactly 6 days.
type WeekRange struct {
	Start time.Time
	End   time.Time
}

// WeekFor resolves the last completed week relative to now. A week counts as
// complete at the start of its Sunday, so on a Sunday the range closes on
// now's own date; on any other day it steps back to the most recent Sunday.
func WeekFor(now time.Time) WeekRange {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := day.AddDate(0, 0, -int(now.Weekday()))
	return WeekRange{Start: end.AddDate(0, 0, -6), End: end}
}

// StartDate returns the Monday as YYYY-MM-DD.
func (w WeekRange) StartDate() string {
	return w.Start.Format(DateLayout)
}

// EndDate returns the Sunday as YYYY-MM-DD.
func (w WeekRange) EndDate() string {
	return w.End.Format(DateLayout)
}

// EndExclusive is the first instant after the range, for half-open
// timestamp comparisons.
func (w WeekRange) EndExclusive() time.Time {
	return w.End.AddDate(0, 0, 1)
}
