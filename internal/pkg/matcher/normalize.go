package matcher

import (
	"time"

	"medreminder/internal/entity"
)

const (
	// rawTimeLayout parses the formatted-string representation kept by older
	// clients, e.g. "1 March 2024 at 08:00:00 UTC+01:00".
	rawTimeLayout = "2 January 2006 at 15:04:05 UTC-07:00"

	dateLayout   = "2006-01-02"
	minuteLayout = "15:04"
)

// ClockTime is a schedule time resolved into the engine's timezone at minute
// granularity. Date is the calendar date the stored time falls on and HHMM is
// its time of day, both in the configured zone.
type ClockTime struct {
	Date string
	HHMM string
}

type Normalizer struct {
	loc *time.Location
}

func NewNormalizer(loc *time.Location) *Normalizer {
	return &Normalizer{loc: loc}
}

// Normalize resolves the schedule's stored time into a ClockTime. The second
// return value is false when the time is missing or unparsable; such a
// schedule is inert and must be skipped, never treated as an error.
func (n *Normalizer) Normalize(sched *entity.Schedule) (ClockTime, bool) {
	var t time.Time

	switch {
	case sched.TimeAt != nil:
		t = sched.TimeAt.In(n.loc)
	case sched.TimeRaw != "":
		parsed, err := time.Parse(rawTimeLayout, sched.TimeRaw)
		if err != nil {
			return ClockTime{}, false
		}
		t = parsed.In(n.loc)
	default:
		return ClockTime{}, false
	}

	return ClockTime{
		Date: t.Format(dateLayout),
		HHMM: t.Format(minuteLayout),
	}, true
}
