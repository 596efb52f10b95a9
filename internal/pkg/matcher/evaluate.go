package matcher

import (
	"fmt"
	"time"

	"medreminder/internal/entity"
)

// Occurrence is a single due instance of a schedule on a given tick, carrying
// everything dispatch needs so the schedule set does not have to be re-read.
type Occurrence struct {
	ScheduleID string
	Key        string
	UserID     string
	Name       string
	Dosage     string
	Daily      bool
	// Date is the calendar day the occurrence belongs to, set for daily
	// occurrences only. It scopes the claim so tomorrow's firing gets a
	// fresh key. One-shot occurrences fire at most once ever and carry no
	// date component.
	Date string
}

type Evaluator struct {
	norm   *Normalizer
	window time.Duration
}

// NewEvaluator builds an evaluator for the given zone. window widens the
// match from the exact tick minute to the preceding window as well, so a tick
// delayed past a schedule's minute still picks it up; zero keeps exact-minute
// matching. Dedup keys are built from the schedule's own HH:MM either way.
func NewEvaluator(loc *time.Location, window time.Duration) *Evaluator {
	return &Evaluator{
		norm:   NewNormalizer(loc),
		window: window,
	}
}

func (e *Evaluator) Normalizer() *Normalizer {
	return e.norm
}

// Evaluate returns the subset of schedules due at now. Inert schedules and
// one-shot schedules stored for a different date are silently excluded. No
// ordering of the result is guaranteed; occurrences are dispatched
// independently.
func (e *Evaluator) Evaluate(now time.Time, schedules []*entity.Schedule) []Occurrence {
	winMinutes := int(e.window / time.Minute)

	var due []Occurrence
	for _, sched := range schedules {
		ct, ok := e.norm.Normalize(sched)
		if !ok {
			continue
		}

		for off := 0; off <= winMinutes; off++ {
			ref := now.Add(-time.Duration(off) * time.Minute)
			if ct.HHMM != ref.Format(minuteLayout) {
				continue
			}

			switch classifyResolved(sched, ct, ref) {
			case ClassDaily:
				due = append(due, Occurrence{
					ScheduleID: sched.ID,
					Key:        dailyKey(sched.ID, ref.Format(dateLayout), ct.HHMM),
					UserID:     sched.UserID,
					Name:       sched.Name,
					Dosage:     sched.Dosage,
					Daily:      true,
					Date:       ref.Format(dateLayout),
				})
			case ClassOneShotToday:
				due = append(due, Occurrence{
					ScheduleID: sched.ID,
					Key:        oneShotKey(sched.ID),
					UserID:     sched.UserID,
					Name:       sched.Name,
					Dosage:     sched.Dosage,
				})
			default:
				continue
			}
			break
		}
	}

	return due
}

func dailyKey(scheduleID, date, hhmm string) string {
	return fmt.Sprintf("%s:%s:%s", scheduleID, date, hhmm)
}

func oneShotKey(scheduleID string) string {
	return scheduleID
}
