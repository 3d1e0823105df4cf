package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// CivilDayBounds returns [00:00, 24:00) of the civil day containing t,
// as observed in the named zone tz.
func CivilDayBounds(t time.Time, tz string) (time.Time, time.Time) {
	loc := Location(tz)
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.Add(24 * time.Hour)
}

// SameCivilDay reports whether a and b fall on the same calendar day in tz.
func SameCivilDay(a, b time.Time, tz string) bool {
	loc := Location(tz)
	al, bl := a.In(loc), b.In(loc)
	return al.Year() == bl.Year() && al.YearDay() == bl.YearDay()
}

var weekdayCodes = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// WeekdayCode returns the lowercase weekday name of t in tz.
func WeekdayCode(t time.Time, tz string) string {
	return weekdayCodes[int(t.In(Location(tz)).Weekday())]
}

// PrevWeekdayCode returns the code of the day before the given one.
// Unknown codes map to themselves.
func PrevWeekdayCode(code string) string {
	for i, c := range weekdayCodes {
		if c == code {
			return weekdayCodes[(i+6)%7]
		}
	}
	return code
}

// MinuteOfDay returns the minute within the civil day of t in tz.
func MinuteOfDay(t time.Time, tz string) int {
	local := t.In(Location(tz))
	return local.Hour()*60 + local.Minute()
}
