package schedule

import (
	"fmt"
	"reshort/internal/model"
	"strings"
	"time"
)

const day = 24 * time.Hour

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

func ParseWeekday(name string) (time.Weekday, error) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday: %s", name)
	}

	return d, nil
}

func Validate(p model.Preset) error {
	if _, err := ParseWeekday(p.StartDay); err != nil {
		return err
	}
	if p.Hour < 0 || p.Hour > 23 {
		return fmt.Errorf("hour out of range: %d", p.Hour)
	}
	if p.Minute < 0 || p.Minute > 59 {
		return fmt.Errorf("minute out of range: %d", p.Minute)
	}
	if p.IntervalDays < 0 {
		return fmt.Errorf("interval days must not be negative: %d", p.IntervalDays)
	}

	return nil
}

// ResolveManual combines a calendar date and a wall-clock time into a plan
// starting at that instant, with a whole-day interval.
func ResolveManual(date time.Time, hour, minute, intervalDays int) model.SchedulePlan {
	start := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())

	return model.SchedulePlan{
		StartAt:  start,
		Interval: time.Duration(intervalDays) * day,
	}
}

// ResolvePreset turns a recurring rule into a concrete plan relative to now:
// the next occurrence of the preset's weekday at hour:minute, pushed a full
// week out when that occurrence is today but the time already passed.
func ResolvePreset(p model.Preset, now time.Time) (model.SchedulePlan, error) {
	if err := Validate(p); err != nil {
		return model.SchedulePlan{}, err
	}

	target, _ := ParseWeekday(p.StartDay)
	daysUntil := (int(target) - int(now.Weekday()) + 7) % 7

	start := time.Date(now.Year(), now.Month(), now.Day()+daysUntil,
		p.Hour, p.Minute, 0, 0, now.Location())

	if daysUntil == 0 && now.After(start) {
		start = start.AddDate(0, 0, 7)
	}

	return model.SchedulePlan{
		StartAt:  start,
		Interval: time.Duration(p.IntervalDays) * day,
	}, nil
}

// SlotTime is the publish time for the job at zero-based index within a plan.
func SlotTime(plan model.SchedulePlan, index int) time.Time {
	return plan.StartAt.Add(time.Duration(index) * plan.Interval)
}
