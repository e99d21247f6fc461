// internal/domain/training_plan.go
package domain

import (
	"time"
)

// PlanType tags the kind of plan requested from the generator.
type PlanType string

// PlanTypeWeekly is currently the only plan type with defined semantics.
const PlanTypeWeekly PlanType = "weekly"

// Valid reports whether t is a supported plan type.
func (t PlanType) Valid() bool {
	return t == PlanTypeWeekly
}

// TrainingPlan is a user's weekly training schedule.
//
// Progress and the week view are always derived from CompletedDays and
// CreatedAt; neither is stored.
type TrainingPlan struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	PlanType      PlanType    `json:"plan_type"`
	Content       PlanContent `json:"content"`
	CreatedAt     time.Time   `json:"created_at"`
	IsActive      bool        `json:"is_active"`
	CompletedDays DaySet      `json:"completed_days"`
	Version       int64       `json:"version"` // optimistic concurrency counter
}

// Progress is |CompletedDays| / 7, in [0, 1].
func (p *TrainingPlan) Progress() float64 {
	return Progress(p.CompletedDays)
}

// WeekDates is the Monday-anchored week containing CreatedAt.
func (p *TrainingPlan) WeekDates() [DaysPerWeek]time.Time {
	return WeekDates(p.CreatedAt)
}

// Progress is the completion ratio for a set of done days.
func Progress(done DaySet) float64 {
	return float64(done.Len()) / DaysPerWeek
}

// WeekDates returns the seven consecutive calendar dates starting at the most
// recent Monday on or before anchor, as midnights in anchor's location.
func WeekDates(anchor time.Time) [DaysPerWeek]time.Time {
	// Monday=0 .. Sunday=6
	offset := (int(anchor.Weekday()) + 6) % 7
	y, m, d := anchor.Date()
	var week [DaysPerWeek]time.Time
	for i := range week {
		week[i] = time.Date(y, m, d-offset+i, 0, 0, 0, 0, anchor.Location())
	}
	return week
}
