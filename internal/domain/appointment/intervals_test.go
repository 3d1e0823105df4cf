package appointment

import "testing"

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"disjoint", 60, 120, 120, 180, false},
		{"touching boundaries do not overlap", 0, 60, 60, 120, false},
		{"partial", 60, 130, 120, 180, true},
		{"contained", 60, 180, 90, 120, true},
		{"identical", 60, 120, 60, 120, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("Overlaps(%d,%d,%d,%d) = %v, want %v",
					tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
		})
	}
}

func TestSplitSpan(t *testing.T) {
	got := SplitSpan("monday", "tuesday", 600, 60)
	if len(got) != 1 || got[0] != (Interval{Day: "monday", Start: 600, End: 660}) {
		t.Fatalf("same-day span: %+v", got)
	}

	// 23:30 Monday, 60 minutes: tail spills onto Tuesday.
	got = SplitSpan("monday", "tuesday", 1410, 60)
	if len(got) != 2 {
		t.Fatalf("wrapped span: %+v", got)
	}
	if got[0] != (Interval{Day: "monday", Start: 1410, End: 1440}) {
		t.Fatalf("wrapped head: %+v", got[0])
	}
	if got[1] != (Interval{Day: "tuesday", Start: 0, End: 30}) {
		t.Fatalf("wrapped tail: %+v", got[1])
	}

	// ending exactly at midnight stays on one day
	got = SplitSpan("monday", "tuesday", 1380, 60)
	if len(got) != 1 || got[0].End != 1440 {
		t.Fatalf("midnight-end span: %+v", got)
	}
}

func TestBreakIntervals(t *testing.T) {
	got := BreakIntervals("monday", "tuesday", 720, 780)
	if len(got) != 1 || got[0] != (Interval{Day: "monday", Start: 720, End: 780}) {
		t.Fatalf("plain break: %+v", got)
	}

	// 22:00 to 02:00 wraps across midnight
	got = BreakIntervals("monday", "tuesday", 1320, 120)
	if len(got) != 2 {
		t.Fatalf("wrapped break: %+v", got)
	}
	if got[0] != (Interval{Day: "monday", Start: 1320, End: 1440}) {
		t.Fatalf("wrapped break head: %+v", got[0])
	}
	if got[1] != (Interval{Day: "tuesday", Start: 0, End: 120}) {
		t.Fatalf("wrapped break tail: %+v", got[1])
	}

	// 23:00 to 00:00 does not produce an empty next-day piece
	got = BreakIntervals("monday", "tuesday", 1380, 0)
	if len(got) != 1 || got[0] != (Interval{Day: "monday", Start: 1380, End: 1440}) {
		t.Fatalf("midnight-end break: %+v", got)
	}

	if got := BreakIntervals("monday", "tuesday", 600, 600); got != nil {
		t.Fatalf("zero-length break: %+v", got)
	}
}

func TestHasConflict_WrappedBreak(t *testing.T) {
	// weekly break Monday 22:00 to 02:00
	breaks := BreakIntervals("monday", "tuesday", 1320, 120)

	cases := []struct {
		name     string
		appt     []Interval
		conflict bool
	}{
		{
			"monday 23:30 falls inside the head",
			SplitSpan("monday", "tuesday", 1410, 30),
			true,
		},
		{
			"tuesday 01:30 falls inside the tail",
			SplitSpan("tuesday", "wednesday", 90, 30),
			true,
		},
		{
			"tuesday 02:00 starts exactly at the break end",
			SplitSpan("tuesday", "wednesday", 120, 30),
			false,
		},
		{
			"tuesday 10:00 is free",
			SplitSpan("tuesday", "wednesday", 600, 60),
			false,
		},
		{
			"monday 21:30 ends exactly at the break start",
			SplitSpan("monday", "tuesday", 1290, 30),
			false,
		},
		{
			"sunday 23:30 is a different day",
			SplitSpan("sunday", "monday", 1410, 20),
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasConflict(tc.appt, breaks); got != tc.conflict {
				t.Fatalf("HasConflict = %v, want %v", got, tc.conflict)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	valid := map[string]int{
		"00:00": 0,
		"09:30": 570,
		"23:59": 1439,
	}
	for in, want := range valid {
		got, err := ParseClock(in)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseClock(%q) = %d, want %d", in, got, want)
		}
	}

	for _, bad := range []string{"", "24:00", "12:60", "12", "ab:cd", "-1:30"} {
		if _, err := ParseClock(bad); err == nil {
			t.Fatalf("ParseClock(%q): expected error", bad)
		}
	}
}
