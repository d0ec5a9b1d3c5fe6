package report

import (
	"testing"
	"time"
)

func TestWeekForSundayClosesOnItsOwnDate(t *testing.T) {
	// 2025-06-15 is a Sunday.
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	w := WeekFor(now)

	if w.EndDate() != "2025-06-15" {
		t.Errorf("expected week to end on 2025-06-15, got %s", w.EndDate())
	}
	if w.StartDate() != "2025-06-09" {
		t.Errorf("expected week to start on 2025-06-09, got %s", w.StartDate())
	}
}

func TestWeekForAlwaysMondayToSunday(t *testing.T) {
	// One instant per weekday, plus odd times of day.
	instants := []time.Time{
		time.Date(2025, 6, 9, 7, 30, 0, 0, time.UTC),   // Monday
		time.Date(2025, 6, 10, 0, 0, 1, 0, time.UTC),   // Tuesday
		time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC),  // Wednesday
		time.Date(2025, 6, 12, 18, 45, 0, 0, time.UTC), // Thursday
		time.Date(2025, 6, 13, 23, 59, 59, 0, time.UTC),
		time.Date(2025, 6, 14, 6, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC), // Sunday evening
		time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC), // leap day
	}

	for _, now := range instants {
		w := WeekFor(now)
		if w.Start.Weekday() != time.Monday {
			t.Errorf("WeekFor(%v): start %v is not a Monday", now, w.Start)
		}
		if w.End.Weekday() != time.Sunday {
			t.Errorf("WeekFor(%v): end %v is not a Sunday", now, w.End)
		}
		if got := w.End.Sub(w.Start); got != 6*24*time.Hour {
			t.Errorf("WeekFor(%v): end-start = %v, want exactly 6 days", now, got)
		}
		if w.End.After(now) {
			t.Errorf("WeekFor(%v): end %v is in the future", now, w.End)
		}
	}
}

func TestWeekForStableWithinWeek(t *testing.T) {
	// Monday morning and Saturday night of the same calendar week
	// resolve to the same completed week.
	t1 := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)     // Monday 00:00
	t2 := time.Date(2025, 6, 14, 23, 59, 59, 0, time.UTC) // Saturday 23:59:59

	w1, w2 := WeekFor(t1), WeekFor(t2)
	if w1 != w2 {
		t.Errorf("ranges differ within the same week: %v vs %v", w1, w2)
	}
	if w1.EndDate() != "2025-06-08" {
		t.Errorf("expected previous Sunday 2025-06-08, got %s", w1.EndDate())
	}
}

func TestWeekForSundayBoundary(t *testing.T) {
	sat := time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC) // Saturday 23:59
	sun := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)   // Sunday 00:00

	wSat, wSun := WeekFor(sat), WeekFor(sun)
	if diff := wSun.End.Sub(wSat.End); diff != 7*24*time.Hour {
		t.Errorf("Saturday/Sunday boundary ranges are %v apart, want exactly 7 days", diff)
	}
	if !wSat.End.Before(wSun.Start) {
		t.Errorf("boundary ranges overlap: %v / %v", wSat, wSun)
	}
}

func TestEndExclusive(t *testing.T) {
	w := WeekFor(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	if got := w.EndExclusive().Sub(w.End); got != 24*time.Hour {
		t.Errorf("EndExclusive is %v after End, want 24h", got)
	}
}
