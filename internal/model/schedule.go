package model

import "time"

// SchedulePlan fixes the publish time of every slot in a batch: slot i goes
// out at StartAt + i*Interval. A zero interval is legal and schedules every
// slot at the same instant.
type SchedulePlan struct {
	StartAt  time.Time     `json:"start_at"`
	Interval time.Duration `json:"interval"`
}

// Preset is a named recurring-schedule rule: the next occurrence of StartDay
// at Hour:Minute, then every IntervalDays days.
type Preset struct {
	StartDay     string `json:"start_day"`
	Hour         int    `json:"hour"`
	Minute       int    `json:"minute"`
	IntervalDays int    `json:"interval_days"`
}
