package matcher

import (
	"time"

	"medreminder/internal/entity"
)

type Class int

const (
	// ClassInert marks a schedule that can never fire: its time is missing or
	// unresolvable, or it has no owner to notify.
	ClassInert Class = iota
	ClassDaily
	ClassOneShotToday
	ClassOneShotOther
)

func (c Class) String() string {
	switch c {
	case ClassDaily:
		return "daily"
	case ClassOneShotToday:
		return "one_shot_today"
	case ClassOneShotOther:
		return "one_shot_other"
	default:
		return "inert"
	}
}

// Classify determines how the schedule relates to the calendar day of ref.
// A one-shot schedule only ever counts on its own stored date; matching
// HH:MM on any later day must not resurrect it.
func (n *Normalizer) Classify(sched *entity.Schedule, ref time.Time) Class {
	ct, ok := n.Normalize(sched)
	if !ok {
		return ClassInert
	}
	return classifyResolved(sched, ct, ref)
}

func classifyResolved(sched *entity.Schedule, ct ClockTime, ref time.Time) Class {
	if sched.UserID == "" || sched.Name == "" {
		return ClassInert
	}
	if sched.Interval == entity.IntervalDaily {
		return ClassDaily
	}
	if ct.Date == ref.Format(dateLayout) {
		return ClassOneShotToday
	}
	return ClassOneShotOther
}
