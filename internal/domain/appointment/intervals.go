package appointment

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 1440

// Interval is a half-open [Start, End) minute-of-day range tagged with the
// weekday code it falls on.
type Interval struct {
	Day   string
	Start int
	End   int
}

// Overlaps is the half-open intersection test.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// SplitSpan expands a span of durationMin minutes starting at startMin on day.
// A span running past midnight is split onto nextDay.
func SplitSpan(day, nextDay string, startMin, durationMin int) []Interval {
	end := startMin + durationMin
	if end <= minutesPerDay {
		return []Interval{{Day: day, Start: startMin, End: end}}
	}

	return []Interval{
		{Day: day, Start: startMin, End: minutesPerDay},
		{Day: nextDay, Start: 0, End: end - minutesPerDay},
	}
}

// BreakIntervals expands a weekly break window. start > end means the break
// crosses midnight: [start, 1440) on its day plus [0, end) on the next day.
func BreakIntervals(day, nextDay string, startMin, endMin int) []Interval {
	if startMin > endMin {
		out := []Interval{{Day: day, Start: startMin, End: minutesPerDay}}
		if endMin > 0 {
			out = append(out, Interval{Day: nextDay, Start: 0, End: endMin})
		}
		return out
	}
	if startMin == endMin {
		return nil
	}
	return []Interval{{Day: day, Start: startMin, End: endMin}}
}

// HasConflict reports whether any appointment interval overlaps any break
// interval on the same day.
func HasConflict(appt, breaks []Interval) bool {
	for _, a := range appt {
		for _, b := range breaks {
			if a.Day != b.Day {
				continue
			}
			if Overlaps(a.Start, a.End, b.Start, b.End) {
				return true
			}
		}
	}
	return false
}

// ParseClock converts an "HH:MM" wall-clock string into a minute of day.
func ParseClock(hm string) (int, error) {
	parts := strings.SplitN(hm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock value %q", hm)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("malformed clock value %q", hm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("malformed clock value %q", hm)
	}

	return h*60 + m, nil
}
