package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    Weekday
		wantErr bool
	}{
		{"monday", Monday, false},
		{"Tuesday", Tuesday, false},
		{"  SUNDAY ", Sunday, false},
		{"funday", "", true},
		{"", "", true},
		{"mon", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDaySet_ToggleIsInvolution(t *testing.T) {
	start, err := NewDaySet("friday", "sunday")
	require.NoError(t, err)

	for _, d := range Weekdays {
		once := start.Toggle(d)
		assert.NotEqual(t, start, once, "single toggle of %s must flip membership", d)
		assert.Equal(t, !start.Has(d), once.Has(d))
		assert.Equal(t, start, once.Toggle(d), "double toggle of %s must restore the set", d)
	}
}

func TestDaySet_DuplicatesCollapse(t *testing.T) {
	s, err := NewDaySet("monday", "Monday", "MONDAY", "tuesday")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []Weekday{Monday, Tuesday}, s.Days())
}

func TestDaySet_InvalidName(t *testing.T) {
	_, err := NewDaySet("monday", "funday")
	assert.ErrorIs(t, err, ErrInvalidDay)
}

func TestDaySet_JSONRoundTrip(t *testing.T) {
	var s DaySet
	require.NoError(t, json.Unmarshal([]byte(`["Sunday","monday","wednesday","monday"]`), &s))

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["monday","wednesday","sunday"]`, string(data))

	var back DaySet
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s, back)

	empty, err := json.Marshal(DaySet(0))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(empty))
}

func TestDaySet_RejectsEncodedString(t *testing.T) {
	var s DaySet
	err := json.Unmarshal([]byte(`"[\"monday\"]"`), &s)
	assert.Error(t, err)
}

func TestProgress(t *testing.T) {
	plan := &TrainingPlan{}
	assert.Equal(t, 0.0, plan.Progress())

	plan.CompletedDays, _ = NewDaySet("monday", "tuesday", "wednesday")
	assert.InDelta(t, 3.0/7.0, plan.Progress(), 1e-9)
	assert.InDelta(t, 0.4286, plan.Progress(), 1e-4)

	for _, d := range Weekdays {
		plan.CompletedDays = plan.CompletedDays.With(d)
	}
	assert.Equal(t, 1.0, plan.Progress())
}

func TestProgress_TracksToggleSequences(t *testing.T) {
	var s DaySet
	seq := []Weekday{Monday, Monday, Friday, Sunday, Friday, Tuesday, Tuesday, Tuesday}
	for _, d := range seq {
		s = s.Toggle(d)
		assert.InDelta(t, float64(len(s.Days()))/7.0, Progress(s), 1e-9)
	}
	assert.Equal(t, []Weekday{Tuesday, Sunday}, s.Days())
}

func TestWeekDates(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		berlin = time.FixedZone("CET", 3600)
	}

	tests := []struct {
		name      string
		anchor    time.Time
		wantStart string
	}{
		{"monday anchor", time.Date(2025, 3, 3, 9, 30, 0, 0, time.UTC), "2025-03-03"},
		{"wednesday anchor", time.Date(2025, 3, 5, 18, 0, 0, 0, time.UTC), "2025-03-03"},
		{"sunday anchor", time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC), "2025-03-03"},
		{"week across year end", time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC), "2024-12-30"},
		{"dst change week", time.Date(2025, 3, 30, 12, 0, 0, 0, berlin), "2025-03-24"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := WeekDates(tt.anchor)
			assert.Equal(t, tt.wantStart, week[0].Format("2006-01-02"))
			assert.Equal(t, time.Monday, week[0].Weekday())
			for i := 1; i < len(week); i++ {
				y1, m1, d1 := week[i-1].AddDate(0, 0, 1).Date()
				y2, m2, d2 := week[i].Date()
				assert.Equal(t, []int{y1, int(m1), d1}, []int{y2, int(m2), d2}, "dates must be consecutive")
				assert.Equal(t, 0, week[i].Hour())
			}
			assert.Equal(t, time.Sunday, week[6].Weekday())
		})
	}
}

func TestWeekDates_EveryAnchorDay(t *testing.T) {
	monday := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		anchor := monday.AddDate(0, 0, i).Add(13 * time.Hour)
		week := (&TrainingPlan{CreatedAt: anchor}).WeekDates()
		assert.True(t, week[0].Equal(monday), "anchor %s", anchor.Weekday())
	}
}

func TestDayEntry_JSON(t *testing.T) {
	var rest DayEntry
	require.NoError(t, json.Unmarshal([]byte(`"Light stretching and a walk"`), &rest))
	assert.True(t, rest.IsRest())
	assert.Equal(t, "Light stretching and a walk", rest.Description)

	var work DayEntry
	require.NoError(t, json.Unmarshal([]byte(`{"type":"Upper body","exercises":["Push-ups","Rows"]}`), &work))
	assert.Equal(t, Workout("Upper body", "Push-ups", "Rows"), work)

	data, err := json.Marshal(rest)
	require.NoError(t, err)
	assert.Equal(t, `"Light stretching and a walk"`, string(data))

	data, err = json.Marshal(Workout("Cardio"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Cardio","exercises":[]}`, string(data))

	var bad DayEntry
	assert.ErrorIs(t, json.Unmarshal([]byte(`42`), &bad), ErrInvalidContent)
}

func TestDayEntry_Validate(t *testing.T) {
	assert.NoError(t, RestDay("Recovery").Validate())
	assert.NoError(t, Workout("Legs", "Squats").Validate())
	assert.ErrorIs(t, RestDay(" ").Validate(), ErrInvalidContent)
	assert.ErrorIs(t, Workout("").Validate(), ErrInvalidContent)
	assert.ErrorIs(t, DayEntry{}.Validate(), ErrInvalidContent)
}

const sampleContent = `{
  "workouts": {
    "Monday": {"type": "Strength", "exercises": ["Squats", "Bench press"]},
    "tuesday": {"type": "Cardio", "exercises": ["Run 5k"]},
    "wednesday": "Active recovery",
    "thursday": {"type": "Strength", "exercises": ["Deadlift"]},
    "friday": {"type": "HIIT", "exercises": ["Burpees"]},
    "saturday": {"type": "Mobility", "exercises": []},
    "sunday": "Full rest"
  },
  "nutrition": {"daily_calories": 2400, "meals": ["oats", "rice"]},
  "recommendations": ["Sleep 8 hours"]
}`

func TestParsePlanContent(t *testing.T) {
	c, err := ParsePlanContent([]byte(sampleContent))
	require.NoError(t, err)

	assert.Len(t, c.Workouts, 7)
	assert.Equal(t, Workout("Strength", "Squats", "Bench press"), c.Workouts[Monday])
	assert.Equal(t, RestDay("Full rest"), c.Workouts[Sunday])
	assert.JSONEq(t, `{"daily_calories": 2400, "meals": ["oats", "rice"]}`, string(c.Nutrition))
	assert.JSONEq(t, `["Sleep 8 hours"]`, string(c.Recommendations))
}

func TestParsePlanContent_Invalid(t *testing.T) {
	tests := map[string]string{
		"not json":      `{"workouts": `,
		"missing day":   `{"workouts": {"monday": "rest"}}`,
		"unknown day":   `{"workouts": {"funday": "rest"}}`,
		"duplicate day": `{"workouts": {"monday": "a", "Monday": "b", "tuesday": "c", "wednesday": "d", "thursday": "e", "friday": "f", "saturday": "g", "sunday": "h"}}`,
		"empty workout": `{"workouts": {"monday": {"type": ""}, "tuesday": "c", "wednesday": "d", "thursday": "e", "friday": "f", "saturday": "g", "sunday": "h"}}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePlanContent([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestPlanContent_WithDayLeavesOriginal(t *testing.T) {
	c, err := ParsePlanContent([]byte(sampleContent))
	require.NoError(t, err)

	edited := c.WithDay(Tuesday, RestDay("Travel day"))

	assert.Equal(t, Workout("Cardio", "Run 5k"), c.Workouts[Tuesday])
	assert.Equal(t, RestDay("Travel day"), edited.Workouts[Tuesday])
	for _, d := range Weekdays {
		if d != Tuesday {
			assert.Equal(t, c.Workouts[d], edited.Workouts[d])
		}
	}
	assert.Equal(t, c.Nutrition, edited.Nutrition)
	assert.Equal(t, c.Recommendations, edited.Recommendations)
}

func TestTrainingPlan_JSON(t *testing.T) {
	c, err := ParsePlanContent([]byte(sampleContent))
	require.NoError(t, err)
	done, _ := NewDaySet("monday", "tuesday")
	plan := TrainingPlan{
		ID:            "p1",
		UserID:        "u1",
		PlanType:      PlanTypeWeekly,
		Content:       c,
		CreatedAt:     time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC),
		IsActive:      true,
		CompletedDays: done,
		Version:       3,
	}

	data, err := json.Marshal(plan)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{"monday", "tuesday"}, decoded["completed_days"])

	var back TrainingPlan
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, plan.CompletedDays, back.CompletedDays)
	assert.Equal(t, plan.Content.Workouts, back.Content.Workouts)
	assert.True(t, plan.CreatedAt.Equal(back.CreatedAt))
}
