package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidContent is returned when a plan document or day entry fails validation.
var ErrInvalidContent = errors.New("invalid plan content")

// DayKind tags the DayEntry variant.
type DayKind string

const (
	KindRest    DayKind = "rest"
	KindWorkout DayKind = "workout"
)

// DayEntry is one day of a weekly plan: either a rest day with a description
// or a workout with a type and an ordered exercise list.
//
// On the wire a rest day is a bare JSON string and a workout is
// {"type": ..., "exercises": [...]}.
type DayEntry struct {
	Kind        DayKind  `bson:"kind"`
	Description string   `bson:"description,omitempty"`
	Type        string   `bson:"type,omitempty"`
	Exercises   []string `bson:"exercises,omitempty"`
}

// RestDay builds a REST_DAY entry.
func RestDay(description string) DayEntry {
	return DayEntry{Kind: KindRest, Description: description}
}

// Workout builds a WORKOUT entry.
func Workout(workoutType string, exercises ...string) DayEntry {
	return DayEntry{Kind: KindWorkout, Type: workoutType, Exercises: exercises}
}

// IsRest reports whether e is a rest day.
func (e DayEntry) IsRest() bool { return e.Kind == KindRest }

// Validate checks the variant invariants.
func (e DayEntry) Validate() error {
	switch e.Kind {
	case KindRest:
		if strings.TrimSpace(e.Description) == "" {
			return fmt.Errorf("%w: rest day needs a description", ErrInvalidContent)
		}
	case KindWorkout:
		if strings.TrimSpace(e.Type) == "" {
			return fmt.Errorf("%w: workout needs a type", ErrInvalidContent)
		}
	default:
		return fmt.Errorf("%w: unknown day kind %q", ErrInvalidContent, e.Kind)
	}
	return nil
}

type workoutWire struct {
	Type      string   `json:"type"`
	Exercises []string `json:"exercises"`
}

func (e DayEntry) MarshalJSON() ([]byte, error) {
	if e.Kind == KindRest {
		return json.Marshal(e.Description)
	}
	exercises := e.Exercises
	if exercises == nil {
		exercises = []string{}
	}
	return json.Marshal(workoutWire{Type: e.Type, Exercises: exercises})
}

func (e *DayEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var desc string
		if err := json.Unmarshal(data, &desc); err != nil {
			return err
		}
		*e = RestDay(desc)
		return nil
	}
	var w workoutWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: day must be a string or a workout object", ErrInvalidContent)
	}
	*e = Workout(w.Type, w.Exercises...)
	return nil
}

// PlanContent is the generated plan document. Only the per-day schedule is
// interpreted; nutrition and recommendations are carried through untouched.
type PlanContent struct {
	Workouts        map[Weekday]DayEntry `json:"workouts"`
	Nutrition       json.RawMessage      `json:"nutrition,omitempty"`
	Recommendations json.RawMessage      `json:"recommendations,omitempty"`
}

func (c *PlanContent) UnmarshalJSON(data []byte) error {
	var raw struct {
		Workouts        map[string]DayEntry `json:"workouts"`
		Nutrition       json.RawMessage     `json:"nutrition"`
		Recommendations json.RawMessage     `json:"recommendations"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	workouts := make(map[Weekday]DayEntry, len(raw.Workouts))
	for name, entry := range raw.Workouts {
		day, err := ParseWeekday(name)
		if err != nil {
			return err
		}
		if _, dup := workouts[day]; dup {
			return fmt.Errorf("%w: day %q listed twice", ErrInvalidContent, day)
		}
		workouts[day] = entry
	}
	c.Workouts = workouts
	c.Nutrition = nullToEmpty(raw.Nutrition)
	c.Recommendations = nullToEmpty(raw.Recommendations)
	return nil
}

func nullToEmpty(m json.RawMessage) json.RawMessage {
	if bytes.Equal(bytes.TrimSpace(m), []byte("null")) {
		return nil
	}
	return m
}

// Validate requires all seven days, each a valid entry.
func (c PlanContent) Validate() error {
	for _, d := range Weekdays {
		entry, ok := c.Workouts[d]
		if !ok {
			return fmt.Errorf("%w: missing %s", ErrInvalidContent, d)
		}
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("%s: %w", d, err)
		}
	}
	return nil
}

// WithDay returns a copy of c with day replaced by entry. The map is copied so
// the receiver is left unchanged.
func (c PlanContent) WithDay(day Weekday, entry DayEntry) PlanContent {
	workouts := make(map[Weekday]DayEntry, len(c.Workouts)+1)
	for d, e := range c.Workouts {
		workouts[d] = e
	}
	workouts[day] = entry
	c.Workouts = workouts
	return c
}

// ParsePlanContent decodes and validates a generated document.
func ParsePlanContent(data []byte) (PlanContent, error) {
	var c PlanContent
	if err := json.Unmarshal(data, &c); err != nil {
		return PlanContent{}, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if err := c.Validate(); err != nil {
		return PlanContent{}, err
	}
	return c, nil
}
