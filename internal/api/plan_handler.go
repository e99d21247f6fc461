package api

import (
	"coachvision/backend/internal/domain"
	"coachvision/backend/internal/service"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PlanHandler serves the training plan lifecycle.
type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

func (r GeneratePlanRequest) planType() domain.PlanType {
	if r.PlanType == "" {
		return domain.PlanTypeWeekly
	}
	return domain.PlanType(r.PlanType)
}

// Generate godoc
// @Summary Generate a new training plan
// @Description Generates a plan from the caller's profile and stores it as active. Earlier plans are kept.
// @Tags Plans
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body GeneratePlanRequest true "Plan request"
// @Success 201 {object} PlanResponse
// @Failure 400 {object} ErrorResponse "Invalid input or incomplete profile"
// @Failure 403 {object} ErrorResponse "user_id is not the caller"
// @Failure 502 {object} ErrorResponse "Generation failed"
// @Router /plans/generate [post]
func (h *PlanHandler) Generate(c *gin.Context) {
	h.generate(c, h.planService.Create)
}

// Replace godoc
// @Summary Replace the active plan
// @Description Deletes every active plan of the caller, then generates a new one.
// @Tags Plans
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body GeneratePlanRequest true "Plan request"
// @Success 201 {object} PlanResponse
// @Failure 500 {object} ErrorResponse "REPLACE_INCONSISTENCY when generation fails after the delete"
// @Router /plans/replace [post]
func (h *PlanHandler) Replace(c *gin.Context) {
	h.generate(c, h.planService.Replace)
}

type planCreator func(ctx context.Context, userID string, planType domain.PlanType) (*domain.TrainingPlan, error)

func (h *PlanHandler) generate(c *gin.Context, create planCreator) {
	callerID, ok := requireCaller(c)
	if !ok {
		return
	}
	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	if !requireSelf(c, callerID, req.UserID) {
		return
	}

	plan, err := create(c.Request.Context(), req.UserID, req.planType())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

// ListUserPlans godoc
// @Summary List a user's plans, newest first
// @Tags Plans
// @Security BearerAuth
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} PlanResponse
// @Failure 403 {object} ErrorResponse
// @Router /plans/user/{userId} [get]
func (h *PlanHandler) ListUserPlans(c *gin.Context) {
	callerID, ok := requireCaller(c)
	if !ok || !requireSelf(c, callerID, c.Param("userId")) {
		return
	}
	plans, err := h.planService.List(c.Request.Context(), callerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlansToResponse(plans))
}

// GetActivePlan godoc
// @Summary Get the user's newest active plan
// @Tags Plans
// @Security BearerAuth
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} PlanResponse
// @Failure 404 {object} ErrorResponse "No active plan"
// @Router /plans/user/{userId}/active [get]
func (h *PlanHandler) GetActivePlan(c *gin.Context) {
	callerID, ok := requireCaller(c)
	if !ok || !requireSelf(c, callerID, c.Param("userId")) {
		return
	}
	plan, err := h.planService.ActivePlan(c.Request.Context(), callerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// GetPlan godoc
// @Summary Get one plan
// @Tags Plans
// @Security BearerAuth
// @Produce json
// @Param planId path string true "Plan ID"
// @Success 200 {object} PlanResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /plans/{planId} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	callerID, ok := requireCaller(c)
	if !ok {
		return
	}
	plan, err := h.planService.Get(c.Request.Context(), callerID, c.Param("planId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// GetWeek godoc
// @Summary Day-by-day view of a plan's week
// @Tags Plans
// @Security BearerAuth
// @Produce json
// @Param planId path string true "Plan ID"
// @Success 200 {object} WeekResponse
// @Router /plans/{planId}/week [get]
func (h *PlanHandler) GetWeek(c *gin.Context) {
	callerID, ok := requireCaller(c)
	if !ok {
		return
	}
	plan, err := h.planService.Get(c.Request.Context(), callerID, c.Param("planId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToWeek(plan))
}

// UpdateCompletedDays godoc
// @Summary Overwrite the plan's completion set
// @Tags Plans
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Param request body CompletedDaysRequest true "Completed days"
// @Success 200 {object} PlanResponse
// @Failure 400 {object} ErrorResponse "INVALID_DAY"
// @Failure 409 {object} ErrorResponse "Concurrent update"
// @Router /plans/{planId}/completed-days [put]
func (h *PlanHandler) UpdateCompletedDays(c *gin.Context) {
	callerID, ok := requireCaller(c)
	if !ok {
		return
	}
	var req CompletedDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	plan, err := h.planService.SetCompletedDays(c.Request.Context(), callerID, c.Param("planId"), req.CompletedDays, req.ExpectedVersion)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// ToggleDay godoc
// @Summary Flip completion of one day
// @Tags Plans
// @Security BearerAuth
// @Produce json
// @Param planId path string true "Plan ID"
// @Param day path string true "Weekday name"
// @Success 200 {object} PlanResponse
// @Failure 400 {object} ErrorResponse "INVALID_DAY"
// @Router /plans/{planId}/days/{day}/toggle [post]
func (h *PlanHandler) ToggleDay(c *gin.Context) {
	callerID, ok := requireCaller(c)
	if !ok {
		return
	}
	plan, err := h.planService.ToggleDayCompletion(c.Request.Context(), callerID, c.Param("planId"), c.Param("day"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// EditDay godoc
// @Summary Replace one day's entry
// @Tags Plans
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Param request body EditDayRequest true "Day and new entry"
// @Success 200 {object} PlanResponse
// @Failure 400 {object} ErrorResponse "INVALID_DAY or INVALID_INPUT"
// @Router /plans/{planId}/edit-day [put]
func (h *PlanHandler) EditDay(c *gin.Context) {
	callerID, ok := requireCaller(c)
	if !ok {
		return
	}
	var req EditDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	plan, err := h.planService.EditDay(c.Request.Context(), callerID, c.Param("planId"), req.DayName, *req.Workout)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// DeletePlan godoc
// @Summary Delete a plan
// @Tags Plans
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} MessageResponse
// @Router /plans/{planId} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	callerID, ok := requireCaller(c)
	if !ok {
		return
	}
	if err := h.planService.Delete(c.Request.Context(), callerID, c.Param("planId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Plan deleted"})
}
