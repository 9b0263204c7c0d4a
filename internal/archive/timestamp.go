package archive

import (
	"fmt"
	"time"
)

// TimeLayout is the archive timestamp format, e.g. "2023-01-15 Sun 14:30:00".
const TimeLayout = "2006-01-02 Mon 15:04:05"

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string { return t.Format(TimeLayout) }

// ParseTime parses an archive timestamp. The weekday is checked for syntax
// only; a weekday that disagrees with the date is not an error.
//
// Every field of TimeLayout is fixed-width, so any other length is rejected.
// This also refuses a fractional-seconds suffix, which time.Parse would
// otherwise accept after "05".
func ParseTime(s string) (time.Time, error) {
	if len(s) != len(TimeLayout) {
		return time.Time{}, fmt.Errorf("timestamp %q does not match layout %q", s, TimeLayout)
	}
	return time.Parse(TimeLayout, s)
}

// Elapsed is an unsigned duration broken into whole days, hours, minutes and
// seconds, each within its natural range.
type Elapsed struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

func (e Elapsed) String() string {
	return fmt.Sprintf("%d %s, %d %s, %d %s, %d %s",
		e.Days, plural(e.Days, "day"),
		e.Hours, plural(e.Hours, "hour"),
		e.Minutes, plural(e.Minutes, "minute"),
		e.Seconds, plural(e.Seconds, "second"))
}

// TimeApart returns the absolute time between two archive timestamps.
// Argument order does not matter.
func TimeApart(a, b string) (Elapsed, error) {
	ta, err := ParseTime(a)
	if err != nil {
		return Elapsed{}, fmt.Errorf("parse time %q: %w", a, err)
	}
	tb, err := ParseTime(b)
	if err != nil {
		return Elapsed{}, fmt.Errorf("parse time %q: %w", b, err)
	}
	return Breakdown(tb.Sub(ta)), nil
}

// Breakdown splits |d| into an Elapsed, dropping sub-second precision.
func Breakdown(d time.Duration) Elapsed {
	if d < 0 {
		d = -d
	}
	secs := int64(d / time.Second)
	const day = 24 * 60 * 60
	e := Elapsed{Days: int(secs / day)}
	secs -= int64(e.Days) * day
	e.Hours = int(secs / 3600)
	secs -= int64(e.Hours) * 3600
	e.Minutes = int(secs / 60)
	e.Seconds = int(secs - int64(e.Minutes)*60)
	return e
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
