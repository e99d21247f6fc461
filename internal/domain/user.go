package domain

import (
	"time"
)

// FitnessGoal is the user's declared training objective.
type FitnessGoal string

const (
	GoalWeightLoss     FitnessGoal = "weight_loss"
	GoalMuscleGain     FitnessGoal = "muscle_gain"
	GoalEndurance      FitnessGoal = "endurance"
	GoalFlexibility    FitnessGoal = "flexibility"
	GoalGeneralFitness FitnessGoal = "general_fitness"
)

// ExperienceLevel is the user's self-reported training experience.
type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "beginner"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelAdvanced     ExperienceLevel = "advanced"
)

// User is an account plus the profile fields the plan generator reads.
// Profile fields stay nil until the user completes their profile.
type User struct {
	ID              string           `json:"id"`
	Email           string           `json:"email"`
	Name            string           `json:"name"`
	PasswordHash    string           `json:"-"` // Never expose this via JSON
	Age             *int             `json:"age,omitempty"`
	Weight          *float64         `json:"weight,omitempty"` // kg
	Height          *float64         `json:"height,omitempty"` // cm
	FitnessGoal     *FitnessGoal     `json:"fitness_goal,omitempty"`
	ExperienceLevel *ExperienceLevel `json:"experience_level,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ProfileComplete reports whether every generator input is set.
func (u *User) ProfileComplete() bool {
	return u.Age != nil && u.Weight != nil && u.Height != nil &&
		u.FitnessGoal != nil && u.ExperienceLevel != nil
}
