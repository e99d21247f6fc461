package api

import (
	"coachvision/backend/internal/domain"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// --- Request/Response Structs ---

type GeneratePlanRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	PlanType string `json:"plan_type" binding:"omitempty,oneof=weekly"`
}

// CompletedDaysRequest overwrites the completion set. A non-zero
// ExpectedVersion makes the write conditional on the plan's current version.
type CompletedDaysRequest struct {
	CompletedDays   []string `json:"completed_days" binding:"dive,weekday"`
	ExpectedVersion int64    `json:"expected_version,omitempty" binding:"omitempty,min=1"`
}

type EditDayRequest struct {
	DayName string           `json:"day_name" binding:"required,weekday"`
	Workout *domain.DayEntry `json:"workout" binding:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// PlanResponse is a plan plus the views derived from it on every read.
type PlanResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id"`
	PlanType      domain.PlanType    `json:"plan_type"`
	Content       domain.PlanContent `json:"content"`
	CreatedAt     time.Time          `json:"created_at"`
	IsActive      bool               `json:"is_active"`
	CompletedDays domain.DaySet      `json:"completed_days"`
	Progress      float64            `json:"progress"`
	WeekDates     []string           `json:"week_dates"`
	Version       int64              `json:"version"`
}

// WeekDayView is one row of the week view.
type WeekDayView struct {
	Day       domain.Weekday  `json:"day"`
	Date      string          `json:"date"`
	Entry     domain.DayEntry `json:"entry"`
	Completed bool            `json:"completed"`
}

type WeekResponse struct {
	PlanID   string        `json:"plan_id"`
	Progress float64       `json:"progress"`
	Days     []WeekDayView `json:"days"`
}

func formatWeek(plan *domain.TrainingPlan) []string {
	week := plan.WeekDates()
	out := make([]string, len(week))
	for i, d := range week {
		out[i] = d.Format(dateLayout)
	}
	return out
}

// MapPlanToResponse converts a domain plan to its response DTO.
func MapPlanToResponse(plan *domain.TrainingPlan) PlanResponse {
	return PlanResponse{
		ID:            plan.ID,
		UserID:        plan.UserID,
		PlanType:      plan.PlanType,
		Content:       plan.Content,
		CreatedAt:     plan.CreatedAt,
		IsActive:      plan.IsActive,
		CompletedDays: plan.CompletedDays,
		Progress:      plan.Progress(),
		WeekDates:     formatWeek(plan),
		Version:       plan.Version,
	}
}

func MapPlansToResponse(plans []domain.TrainingPlan) []PlanResponse {
	out := make([]PlanResponse, len(plans))
	for i := range plans {
		out[i] = MapPlanToResponse(&plans[i])
	}
	return out
}

func MapPlanToWeek(plan *domain.TrainingPlan) WeekResponse {
	dates := formatWeek(plan)
	days := make([]WeekDayView, len(domain.Weekdays))
	for i, d := range domain.Weekdays {
		days[i] = WeekDayView{
			Day:       d,
			Date:      dates[i],
			Entry:     plan.Content.Workouts[d],
			Completed: plan.CompletedDays.Has(d),
		}
	}
	return WeekResponse{PlanID: plan.ID, Progress: plan.Progress(), Days: days}
}

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Email           string                  `json:"email"`
	Age             *int                    `json:"age,omitempty"`
	Weight          *float64                `json:"weight,omitempty"`
	Height          *float64                `json:"height,omitempty"`
	FitnessGoal     *domain.FitnessGoal     `json:"fitness_goal,omitempty"`
	ExperienceLevel *domain.ExperienceLevel `json:"experience_level,omitempty"`
	ProfileComplete bool                    `json:"profile_complete"`
	CreatedAt       time.Time               `json:"created_at"`
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Age:             user.Age,
		Weight:          user.Weight,
		Height:          user.Height,
		FitnessGoal:     user.FitnessGoal,
		ExperienceLevel: user.ExperienceLevel,
		ProfileComplete: user.ProfileComplete(),
		CreatedAt:       user.CreatedAt,
	}
}

// respondBindingError reports request validation failures. A failed weekday
// rule is reported as INVALID_DAY so clients see the same code as for path days.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "weekday" {
				abortWithError(c, http.StatusBadRequest, CodeInvalidDay,
					fmt.Sprintf("invalid day %q: must be a weekday name", fe.Value()))
				return
			}
		}
	}
	abortWithError(c, http.StatusBadRequest, CodeInvalidInput, fmt.Sprintf("Validation error: %v", err))
}
