package report

import (
	"strings"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestMessagePriorityLadder(t *testing.T) {
	cases := []struct {
		name      string
		lessons   int
		streak    int
		nutrition *int
		contains  []string
		excludes  []string
	}{
		{
			name:     "rest week",
			lessons:  0,
			streak:   0,
			contains: []string{"rest week"},
		},
		{
			name:     "first step",
			lessons:  1,
			streak:   0,
			contains: []string{"first step"},
		},
		{
			name:     "going well",
			lessons:  2,
			streak:   0,
			contains: []string{"going well"},
		},
		{
			name:     "great performance",
			lessons:  3,
			streak:   0,
			contains: []string{"great performance"},
		},
		{
			name:     "top tier embeds count",
			lessons:  5,
			streak:   0,
			contains: []string{"5", "top tier"},
		},
		{
			name:     "medium streak beats lesson count",
			lessons:  2,
			streak:   5,
			contains: []string{"5-week streak"},
			excludes: []string{"going well"},
		},
		{
			name:     "long streak beats medium streak",
			lessons:  2,
			streak:   10,
			contains: []string{"10 weeks in a row"},
			excludes: []string{"streak. Keep"},
		},
		{
			name:     "streak needs at least two lessons",
			lessons:  1,
			streak:   9,
			contains: []string{"first step"},
			excludes: []string{"in a row"},
		},
		{
			name:      "streak branch with good nutrition",
			lessons:   3,
			streak:    9,
			nutrition: intPtr(85),
			contains:  []string{"9 weeks in a row", "nutrition was on point"},
			excludes:  []string{"great performance"},
		},
		{
			name:      "neutral nutrition suffix",
			lessons:   2,
			streak:    0,
			nutrition: intPtr(60),
			contains:  []string{"going well", "decent"},
		},
		{
			name:      "gentle nutrition reminder",
			lessons:   2,
			streak:    0,
			nutrition: intPtr(20),
			contains:  []string{"kitchen"},
		},
		{
			name:      "zero compliance means no suffix",
			lessons:   1,
			streak:    0,
			nutrition: intPtr(0),
			contains:  []string{"first step"},
			excludes:  []string{"nutrition", "kitchen", "decent"},
		},
		{
			name:     "nil nutrition means no suffix",
			lessons:  4,
			streak:   0,
			contains: []string{"4"},
			excludes: []string{"nutrition", "kitchen"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Message(tc.lessons, tc.streak, tc.nutrition)
			if got == "" {
				t.Fatal("message must never be empty")
			}
			lower := strings.ToLower(got)
			for _, want := range tc.contains {
				if !strings.Contains(lower, strings.ToLower(want)) {
					t.Errorf("message %q does not contain %q", got, want)
				}
			}
			for _, bad := range tc.excludes {
				if strings.Contains(lower, strings.ToLower(bad)) {
					t.Errorf("message %q unexpectedly contains %q", got, bad)
				}
			}
		})
	}
}

func TestMessageNeverEmpty(t *testing.T) {
	for lessons := 0; lessons <= 10; lessons++ {
		for streak := 0; streak <= 12; streak++ {
			if Message(lessons, streak, nil) == "" {
				t.Fatalf("empty message for lessons=%d streak=%d", lessons, streak)
			}
		}
	}
}

func TestConsecutiveWeeks(t *testing.T) {
	monday := func(s string) time.Time {
		ts, err := time.Parse(DateLayout, s)
		if err != nil {
			t.Fatalf("bad date %s: %v", s, err)
		}
		return ts
	}
	reported := monday("2025-06-09")

	cases := []struct {
		name   string
		active []time.Time
		want   int
	}{
		{"no active weeks", nil, 0},
		{"reported week only", []time.Time{monday("2025-06-09")}, 1},
		{
			"three in a row",
			[]time.Time{monday("2025-06-09"), monday("2025-06-02"), monday("2025-05-26")},
			3,
		},
		{
			"gap week terminates the walk",
			[]time.Time{monday("2025-06-09"), monday("2025-05-26")},
			1,
		},
		{
			"old activity without the reported week",
			[]time.Time{monday("2025-05-26"), monday("2025-05-19")},
			0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ConsecutiveWeeks(tc.active, reported); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}
