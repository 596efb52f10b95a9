package matcher

import (
	"testing"
	"time"

	"medreminder/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deployment zone of the engine, UTC+1 year-round in these fixtures
var testZone = time.FixedZone("UTC+1", 3600)

func timePtr(t time.Time) *time.Time { return &t }

func TestNormalize(t *testing.T) {
	norm := NewNormalizer(testZone)

	tests := []struct {
		name     string
		schedule *entity.Schedule
		wantOK   bool
		wantDate string
		wantHHMM string
	}{
		{
			name: "absolute timestamp converted into zone",
			schedule: &entity.Schedule{
				TimeAt: timePtr(time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)),
			},
			wantOK:   true,
			wantDate: "2024-03-01",
			wantHHMM: "08:00",
		},
		{
			name: "absolute timestamp crossing midnight in zone",
			schedule: &entity.Schedule{
				TimeAt: timePtr(time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)),
			},
			wantOK:   true,
			wantDate: "2024-03-02",
			wantHHMM: "00:30",
		},
		{
			name: "formatted string parsed and zone converted",
			schedule: &entity.Schedule{
				TimeRaw: "1 March 2024 at 08:00:00 UTC+01:00",
			},
			wantOK:   true,
			wantDate: "2024-03-01",
			wantHHMM: "08:00",
		},
		{
			name: "formatted string in another offset",
			schedule: &entity.Schedule{
				TimeRaw: "1 March 2024 at 07:00:00 UTC+00:00",
			},
			wantOK:   true,
			wantDate: "2024-03-01",
			wantHHMM: "08:00",
		},
		{
			name:     "unparsable string is unresolvable",
			schedule: &entity.Schedule{TimeRaw: "tomorrow at noon"},
			wantOK:   false,
		},
		{
			name:     "missing time is unresolvable",
			schedule: &entity.Schedule{},
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, ok := norm.Normalize(tt.schedule)

			if !tt.wantOK {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantDate, ct.Date)
			assert.Equal(t, tt.wantHHMM, ct.HHMM)
		})
	}
}

// Both stored representations of the same wall-clock instant must normalize
// to the same clock time, otherwise their occurrence keys would diverge.
func TestNormalizeRepresentationConsistency(t *testing.T) {
	norm := NewNormalizer(testZone)

	asTimestamp := &entity.Schedule{
		TimeAt: timePtr(time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)),
	}
	asString := &entity.Schedule{
		TimeRaw: "1 March 2024 at 08:00:00 UTC+01:00",
	}

	ctA, okA := norm.Normalize(asTimestamp)
	ctB, okB := norm.Normalize(asString)

	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, ctA, ctB)
}

func TestClassify(t *testing.T) {
	norm := NewNormalizer(testZone)
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, testZone)

	tests := []struct {
		name     string
		schedule *entity.Schedule
		want     Class
	}{
		{
			name: "daily",
			schedule: &entity.Schedule{
				UserID:   "u1",
				Name:     "Aspirin",
				TimeAt:   timePtr(time.Date(2024, 1, 10, 8, 0, 0, 0, testZone)),
				Interval: entity.IntervalDaily,
			},
			want: ClassDaily,
		},
		{
			name: "one-shot stored for today",
			schedule: &entity.Schedule{
				UserID:   "u1",
				Name:     "Ibuprofen",
				TimeAt:   timePtr(time.Date(2024, 3, 1, 8, 0, 0, 0, testZone)),
				Interval: entity.IntervalOneTime,
			},
			want: ClassOneShotToday,
		},
		{
			name: "one-shot stored for yesterday",
			schedule: &entity.Schedule{
				UserID:   "u1",
				Name:     "Ibuprofen",
				TimeAt:   timePtr(time.Date(2024, 2, 29, 8, 0, 0, 0, testZone)),
				Interval: entity.IntervalOneTime,
			},
			want: ClassOneShotOther,
		},
		{
			name: "missing user makes schedule inert",
			schedule: &entity.Schedule{
				Name:     "Aspirin",
				TimeAt:   timePtr(time.Date(2024, 3, 1, 8, 0, 0, 0, testZone)),
				Interval: entity.IntervalDaily,
			},
			want: ClassInert,
		},
		{
			name: "missing name makes schedule inert",
			schedule: &entity.Schedule{
				UserID:   "u1",
				TimeAt:   timePtr(time.Date(2024, 3, 1, 8, 0, 0, 0, testZone)),
				Interval: entity.IntervalDaily,
			},
			want: ClassInert,
		},
		{
			name: "unresolvable time makes schedule inert",
			schedule: &entity.Schedule{
				UserID:   "u1",
				Name:     "Aspirin",
				TimeRaw:  "not a time",
				Interval: entity.IntervalDaily,
			},
			want: ClassInert,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, norm.Classify(tt.schedule, now))
		})
	}
}

func TestEvaluate(t *testing.T) {
	eval := NewEvaluator(testZone, 0)
	now := time.Date(2024, 3, 1, 8, 0, 30, 0, testZone)

	schedules := []*entity.Schedule{
		{
			ID:       "A",
			UserID:   "u1",
			Name:     "Aspirin",
			Dosage:   "100",
			TimeAt:   timePtr(time.Date(2024, 1, 10, 8, 0, 0, 0, testZone)),
			Interval: entity.IntervalDaily,
		},
		{
			ID:       "B",
			UserID:   "u2",
			Name:     "Ibuprofen",
			Dosage:   "200",
			TimeAt:   timePtr(time.Date(2024, 3, 1, 8, 0, 0, 0, testZone)),
			Interval: entity.IntervalOneTime,
		},
		{
			// same as B but stored for the previous day, must not fire
			ID:       "C",
			UserID:   "u3",
			Name:     "Ibuprofen",
			TimeAt:   timePtr(time.Date(2024, 2, 29, 8, 0, 0, 0, testZone)),
			Interval: entity.IntervalOneTime,
		},
		{
			// wrong minute
			ID:       "D",
			UserID:   "u4",
			Name:     "Vitamin D",
			TimeAt:   timePtr(time.Date(2024, 1, 10, 8, 1, 0, 0, testZone)),
			Interval: entity.IntervalDaily,
		},
		{
			// unresolvable, excluded without failing the rest
			ID:       "E",
			UserID:   "u5",
			Name:     "Zinc",
			TimeRaw:  "bogus",
			Interval: entity.IntervalDaily,
		},
	}

	due := eval.Evaluate(now, schedules)

	require.Len(t, due, 2)

	byID := map[string]Occurrence{}
	for _, occ := range due {
		byID[occ.ScheduleID] = occ
	}

	a, ok := byID["A"]
	require.True(t, ok)
	assert.Equal(t, "A:2024-03-01:08:00", a.Key)
	assert.True(t, a.Daily)
	assert.Equal(t, "2024-03-01", a.Date)
	assert.Equal(t, "u1", a.UserID)
	assert.Equal(t, "Aspirin", a.Name)
	assert.Equal(t, "100", a.Dosage)

	b, ok := byID["B"]
	require.True(t, ok)
	assert.Equal(t, "B", b.Key)
	assert.False(t, b.Daily)
	assert.Empty(t, b.Date)
}

// The same tick-minute must always yield the same keys, no matter how many
// times it is evaluated.
func TestEvaluateDeterministicKeys(t *testing.T) {
	eval := NewEvaluator(testZone, 0)
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, testZone)

	sched := []*entity.Schedule{{
		ID:       "A",
		UserID:   "u1",
		Name:     "Aspirin",
		TimeAt:   timePtr(time.Date(2024, 1, 10, 8, 0, 0, 0, testZone)),
		Interval: entity.IntervalDaily,
	}}

	first := eval.Evaluate(now, sched)
	second := eval.Evaluate(now.Add(20*time.Second), sched)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Key, second[0].Key)
}

// A daily schedule produces a distinct key per calendar day.
func TestEvaluateDailyKeyRollsOver(t *testing.T) {
	eval := NewEvaluator(testZone, 0)

	sched := []*entity.Schedule{{
		ID:       "A",
		UserID:   "u1",
		Name:     "Aspirin",
		TimeAt:   timePtr(time.Date(2024, 1, 10, 8, 0, 0, 0, testZone)),
		Interval: entity.IntervalDaily,
	}}

	today := eval.Evaluate(time.Date(2024, 3, 1, 8, 0, 0, 0, testZone), sched)
	tomorrow := eval.Evaluate(time.Date(2024, 3, 2, 8, 0, 0, 0, testZone), sched)

	require.Len(t, today, 1)
	require.Len(t, tomorrow, 1)
	assert.NotEqual(t, today[0].Key, tomorrow[0].Key)
}

func TestEvaluateMatchWindow(t *testing.T) {
	tests := []struct {
		name    string
		window  time.Duration
		now     time.Time
		wantDue bool
	}{
		{
			name:    "exact matching misses a late tick",
			window:  0,
			now:     time.Date(2024, 3, 1, 8, 2, 0, 0, testZone),
			wantDue: false,
		},
		{
			name:    "window catches a late tick",
			window:  3 * time.Minute,
			now:     time.Date(2024, 3, 1, 8, 2, 0, 0, testZone),
			wantDue: true,
		},
		{
			name:    "window does not reach forward",
			window:  3 * time.Minute,
			now:     time.Date(2024, 3, 1, 7, 58, 0, 0, testZone),
			wantDue: false,
		},
	}

	sched := []*entity.Schedule{{
		ID:       "A",
		UserID:   "u1",
		Name:     "Aspirin",
		TimeAt:   timePtr(time.Date(2024, 1, 10, 8, 0, 0, 0, testZone)),
		Interval: entity.IntervalDaily,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due := NewEvaluator(testZone, tt.window).Evaluate(tt.now, sched)

			if !tt.wantDue {
				assert.Empty(t, due)
				return
			}
			require.Len(t, due, 1)
			// key built from the schedule's own minute, not the tick's
			assert.Equal(t, "A:2024-03-01:08:00", due[0].Key)
		})
	}
}
