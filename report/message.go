package report

import (
	"fmt"
	"time"
)

// Message maps a member's week to a motivational report line. First matching
// rule wins: long streaks beat medium streaks beat plain lesson counts.
// nutrition is a 0-100 compliance percentage, nil when the member tracked
// nothing that week; 0 also suppresses the suffix since there is nothing
// worth showing.
func Message(lessons, streak int, nutrition *int) string {
	var msg string
	switch {
	case streak >= 8 && lessons >= 2:
		msg = fmt.Sprintf("Incredible! You have stayed active %d weeks in a row. That kind of consistency is what lasting results are made of.", streak)
	case streak >= 4 && lessons >= 2:
		msg = fmt.Sprintf("You are on a %d-week streak. Keep showing up!", streak)
	case lessons == 0:
		msg = "Everyone needs a rest week. Let's get back on track together next week!"
	case lessons == 1:
		msg = "You took the first step this week. Next week, let's build on it!"
	case lessons == 2:
		msg = "Two sessions this week, things are going well. Keep the momentum!"
	case lessons == 3:
		msg = "Three sessions! That is a great performance this week."
	default:
		msg = fmt.Sprintf("%d sessions in a single week, outstanding work! You are in the top tier.", lessons)
	}

	if nutrition != nil {
		switch pct := *nutrition; {
		case pct >= 80:
			msg += " Your nutrition was on point too. Excellent discipline!"
		case pct >= 50:
			msg += " Nutrition was decent this week. A bit more focus there will pay off."
		case pct >= 1:
			msg += " Don't forget the kitchen. Small nutrition wins add up."
		}
	}

	return msg
}

// ConsecutiveWeeks counts back-to-back active weeks ending at the reported
// week. activeWeekStarts holds the Monday of every week the member logged at
// least one lesson in; a gap week terminates the walk.
func ConsecutiveWeeks(activeWeekStarts []time.Time, reportedWeekStart time.Time) int {
	active := make(map[string]bool, len(activeWeekStarts))
	for _, ws := range activeWeekStarts {
		active[ws.Format(DateLayout)] = true
	}

	streak := 0
	for cur := reportedWeekStart; active[cur.Format(DateLayout)]; cur = cur.AddDate(0, 0, -7) {
		streak++
	}
	return streak
}
