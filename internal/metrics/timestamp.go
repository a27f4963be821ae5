package metrics

import (
	"strings"
	"time"
)

// Timestamp layouts the feed is known to emit. Offsets arrive either as a
// trailing Z or an explicit +hh:mm; some records omit the zone entirely.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.000000-07:00",
	"2006-01-02T15:04:05.000000",
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses a feed timestamp. It is total: every input yields a
// value. Empty or unparseable strings return the zero time and false - the
// "distant past" sentinel that sorts last in descending order.
func ParseTimestamp(ts string) (time.Time, bool) {
	s := strings.TrimSpace(ts)
	if s == "" {
		return time.Time{}, false
	}

	// Normalize a trailing Z to an explicit UTC offset.
	s = strings.Replace(s, "Z", "+00:00", 1)

	// Fractional seconds arrive at arbitrary widths; pad or truncate the
	// fraction to exactly 6 digits before parsing.
	if main, frac, found := strings.Cut(s, "."); found {
		zone := ""
		if idx := strings.IndexAny(frac, "+-"); idx >= 0 {
			zone = frac[idx:]
			frac = frac[:idx]
		}
		frac = (frac + "000000")[:6]
		s = main + "." + frac + zone
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
