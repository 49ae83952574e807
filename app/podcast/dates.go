package podcast

import (
	"time"

	"github.com/araddon/dateparse"
)

// ISOLayout is the layout every parseable feed date is rendered in.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// North American zone names allowed by RFC 822. time.Parse only knows them
// when they happen to match the local zone.
var rfc822Zones = map[string]int{
	"EST": -5, "EDT": -4,
	"CST": -6, "CDT": -5,
	"MST": -7, "MDT": -6,
	"PST": -8, "PDT": -7,
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	if name, offset := t.Zone(); offset == 0 {
		if hours, ok := rfc822Zones[name]; ok {
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
				t.Nanosecond(), time.FixedZone(name, hours*3600))
		}
	}
	return t.UTC(), true
}

func normalizeDate(s string) string {
	t, ok := parseDate(s)
	if !ok {
		return s
	}
	return t.Format(ISOLayout)
}
