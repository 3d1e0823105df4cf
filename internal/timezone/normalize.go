package timezone

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidDate is returned for inputs that cannot be pinned to an instant.
var ErrInvalidDate = errors.New("invalid date")

var (
	reOffset    = regexp.MustCompile(`(Z|[+-]\d{2}:\d{2})$`)
	reDateOnly  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reNaive     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}(:\d{2})?$`)
	reUTCOffset = regexp.MustCompile(`^([+-])(\d{2}):(\d{2})$`)
)

// Normalizer converts heterogeneous date/time inputs (date-only strings, naive
// local datetimes, explicit-offset ISO strings, epoch millis) into a single
// absolute instant. Inputs without timezone information are pinned to the
// configured civil offset instead of the host zone.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer builds a normalizer for an offset like "-03:00".
func NewNormalizer(offset string) (*Normalizer, error) {
	m := reUTCOffset.FindStringSubmatch(offset)
	if m == nil {
		return nil, fmt.Errorf("malformed utc offset %q", offset)
	}

	hours, _ := strconv.Atoi(m[2])
	mins, _ := strconv.Atoi(m[3])
	secs := hours*3600 + mins*60
	if m[1] == "-" {
		secs = -secs
	}

	return &Normalizer{loc: time.FixedZone("UTC"+offset, secs)}, nil
}

// Offset returns the configured fixed-offset location.
func (n *Normalizer) Offset() *time.Location {
	return n.loc
}

// Normalize resolves input to an absolute instant or ErrInvalidDate.
func (n *Normalizer) Normalize(input any) (time.Time, error) {
	switch v := input.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, ErrInvalidDate
		}
		return v, nil

	case int64:
		return time.UnixMilli(v), nil

	case int:
		return time.UnixMilli(int64(v)), nil

	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return time.Time{}, ErrInvalidDate
		}
		return time.UnixMilli(int64(v)), nil

	case string:
		return n.normalizeString(v)
	}

	return time.Time{}, ErrInvalidDate
}

func (n *Normalizer) normalizeString(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}

	if reOffset.MatchString(s) && !reDateOnly.MatchString(s) {
		for _, layout := range []string{
			time.RFC3339,
			"2006-01-02T15:04Z07:00",
		} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, ErrInvalidDate
	}

	if reDateOnly.MatchString(s) {
		t, err := time.ParseInLocation("2006-01-02", s, n.loc)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		return t, nil
	}

	if reNaive.MatchString(s) {
		for _, layout := range []string{
			"2006-01-02T15:04:05",
			"2006-01-02T15:04",
			"2006-01-02 15:04:05",
			"2006-01-02 15:04",
		} {
			if t, err := time.ParseInLocation(layout, s, n.loc); err == nil {
				return t, nil
			}
		}
		return time.Time{}, ErrInvalidDate
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Time{}, ErrInvalidDate
}
