package entity

import (
	"time"
)

type Interval string

const (
	IntervalDaily   Interval = "daily"
	IntervalOneTime Interval = "one-time"
)

// Schedule represents a single medication reminder owned by a user.
// The reminder time is stored in one of two representations: TimeAt is an
// absolute instant, TimeRaw is a formatted local-time string. Exactly one of
// them is normally set; a schedule with neither is inert and never fires.
type Schedule struct {
	ID        string     `json:"id" db:"id"`
	UserID    string     `json:"user_id" db:"user_id"`
	Name      string     `json:"name" db:"name"`
	Dosage    string     `json:"dosage" db:"dosage"`
	TimeAt    *time.Time `json:"time_at,omitempty" db:"time_at"`
	TimeRaw   string     `json:"time_raw,omitempty" db:"time_raw"`
	Interval  Interval   `json:"interval" db:"interval"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

func (i Interval) Valid() bool {
	return i == IntervalDaily || i == IntervalOneTime
}
