package utils

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const layoutDateKey = "2006-01-02"

// ExtractDateKey returns the YYYY-MM-DD portion of an ISO-8601 datetime by
// slicing the leading digits of the string. It deliberately does not parse
// into a time.Time and reformat: that would shift the date whenever the
// process timezone differs from the offset embedded in the string. Returns ""
// on malformed input.
func ExtractDateKey(iso string) string {
	s := strings.TrimSpace(iso)
	if len(s) < 10 {
		return ""
	}
	s = s[:10]
	if _, err := time.Parse(layoutDateKey, s); err != nil {
		return ""
	}
	return s
}

// ParseInstant parses an ISO-8601 datetime with explicit offset.
// Accepts a bare date or a datetime without seconds as well, since upstream
// extraction quality varies.
func ParseInstant(iso string) (time.Time, bool) {
	s := strings.TrimSpace(iso)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00", "2006-01-02T15:04:05", "2006-01-02T15:04", layoutDateKey} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysBetween returns the ceiling of the absolute elapsed days between two
// instants, 0 only when they coincide. ok is false when either side fails to
// parse; callers treat that as a maximal gap.
func DaysBetween(isoA, isoB string) (int, bool) {
	a, okA := ParseInstant(isoA)
	b, okB := ParseInstant(isoB)
	if !okA || !okB {
		return 0, false
	}
	diff := b.Sub(a)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24)), true
}

// DayOffset returns the signed whole-day difference between the DATE
// component of end vs start, for "+1 day" markers on overnight flights. It
// subtracts date keys rather than instants so a midnight-adjacent offset
// cannot produce an off-by-one.
func DayOffset(startIso, endIso string) (int, bool) {
	sk := ExtractDateKey(startIso)
	ek := ExtractDateKey(endIso)
	if sk == "" || ek == "" {
		return 0, false
	}
	s, err1 := time.Parse(layoutDateKey, sk)
	e, err2 := time.Parse(layoutDateKey, ek)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return int(e.Sub(s).Hours() / 24), true
}

// DateKeyDiff is DayOffset over two bare YYYY-MM-DD keys.
func DateKeyDiff(keyA, keyB string) (int, bool) {
	a, err1 := time.Parse(layoutDateKey, strings.TrimSpace(keyA))
	b, err2 := time.Parse(layoutDateKey, strings.TrimSpace(keyB))
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return int(b.Sub(a).Hours() / 24), true
}

// ElapsedMinutes returns the elapsed minutes between two instants, ok=false
// when either is missing/malformed or end is not after start.
func ElapsedMinutes(startIso, endIso string) (int, bool) {
	s, okS := ParseInstant(startIso)
	e, okE := ParseInstant(endIso)
	if !okS || !okE {
		return 0, false
	}
	diff := e.Sub(s)
	if diff <= 0 {
		return 0, false
	}
	return int(diff.Minutes()), true
}

// ExtractOffsetHours parses the trailing UTC-offset suffix ("Z" or "±HH:MM")
// into signed decimal hours. Used to surface timezone crossings on flights.
func ExtractOffsetHours(iso string) (float64, bool) {
	s := strings.TrimSpace(iso)
	if s == "" {
		return 0, false
	}
	if strings.HasSuffix(s, "Z") {
		return 0, true
	}
	if len(s) < 6 {
		return 0, false
	}
	tail := s[len(s)-6:]
	if (tail[0] != '+' && tail[0] != '-') || tail[3] != ':' {
		return 0, false
	}
	var hh, mm int
	if _, err := fmt.Sscanf(tail[1:], "%02d:%02d", &hh, &mm); err != nil {
		return 0, false
	}
	out := float64(hh) + float64(mm)/60
	if tail[0] == '-' {
		out = -out
	}
	return out, true
}

// ExtractClock returns the HH:MM components of an ISO datetime, read from the
// string so the displayed time stays local to the step's location.
func ExtractClock(iso string) (hour, minute int, ok bool) {
	s := strings.TrimSpace(iso)
	if len(s) < 16 || s[10] != 'T' {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(s[11:16], "%02d:%02d", &hour, &minute); err != nil {
		return 0, 0, false
	}
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// FormatClock renders the local wall-clock portion of an ISO datetime as
// "3:04 PM". Returns "" on malformed input.
func FormatClock(iso string) string {
	h, m, ok := ExtractClock(iso)
	if !ok {
		return ""
	}
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, m, suffix)
}
