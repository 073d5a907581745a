package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gertonargent/gta-backend/internal/domain"
	"github.com/gertonargent/gta-backend/internal/middleware"
	"github.com/gertonargent/gta-backend/internal/service"
)

// GoalHandler handles savings goal HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the create goal request body
type CreateGoalRequest struct {
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	TargetAmount  string  `json:"targetAmount"`
	CurrentAmount *string `json:"currentAmount,omitempty"`
	TargetDate    *string `json:"targetDate,omitempty"`
	Icon          string  `json:"icon,omitempty"`
	Color         string  `json:"color,omitempty"`
}

// UpdateGoalRequest represents the update goal request body
type UpdateGoalRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	TargetAmount *string `json:"targetAmount,omitempty"`
	TargetDate   *string `json:"targetDate,omitempty"`
	Icon         *string `json:"icon,omitempty"`
	Color        *string `json:"color,omitempty"`
}

// AddToGoalRequest represents the add-to-goal request body
type AddToGoalRequest struct {
	Amount string `json:"amount"`
}

// CreateGoal godoc
// @Summary Create a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGoalRequest true "Goal creation request"
// @Success 201 {object} domain.Goal
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /goals [post]
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	target, err := decimal.NewFromString(req.TargetAmount)
	if err != nil {
		return NewValidationError(c, "Invalid targetAmount", []ValidationError{
			{Field: "targetAmount", Message: "Must be a valid decimal number"},
		})
	}

	current := decimal.Zero
	if req.CurrentAmount != nil && *req.CurrentAmount != "" {
		current, err = decimal.NewFromString(*req.CurrentAmount)
		if err != nil {
			return NewValidationError(c, "Invalid currentAmount", []ValidationError{
				{Field: "currentAmount", Message: "Must be a valid decimal number"},
			})
		}
	}

	targetDate, err := parseDateParam(req.TargetDate)
	if err != nil {
		return NewValidationError(c, "Invalid targetDate", []ValidationError{
			{Field: "targetDate", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	goal, err := h.goalService.CreateGoal(userID, service.CreateGoalInput{
		Name:          req.Name,
		Description:   req.Description,
		TargetAmount:  target,
		CurrentAmount: current,
		TargetDate:    targetDate,
		Icon:          req.Icon,
		Color:         req.Color,
	})
	if err != nil {
		if mapped := mapGoalValidationError(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create goal")
		return NewInternalError(c, "Failed to create goal")
	}

	log.Info().Str("user_id", userID.String()).Int32("goal_id", goal.ID).Msg("Goal created")
	return c.JSON(http.StatusCreated, goal)
}

// GetGoals godoc
// @Summary List savings goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param includeCompleted query bool false "Include completed goals" default(false)
// @Success 200 {array} domain.Goal
// @Failure 401 {object} ProblemDetails
// @Router /goals [get]
func (h *GoalHandler) GetGoals(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	includeCompleted := c.QueryParam("includeCompleted") == "true"
	goals, err := h.goalService.ListGoals(userID, includeCompleted)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list goals")
		return NewInternalError(c, "Failed to list goals")
	}
	return c.JSON(http.StatusOK, goals)
}

// GetGoalSummary godoc
// @Summary Summarize savings goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.GoalSummary
// @Failure 401 {object} ProblemDetails
// @Router /goals/summary [get]
func (h *GoalHandler) GetGoalSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	summary, err := h.goalService.Summarize(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to summarize goals")
		return NewInternalError(c, "Failed to summarize goals")
	}
	return c.JSON(http.StatusOK, summary)
}

// GetGoal godoc
// @Summary Get a savings goal
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Success 200 {object} domain.Goal
// @Failure 404 {object} ProblemDetails
// @Router /goals/{id} [get]
func (h *GoalHandler) GetGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	goal, err := h.goalService.GetGoal(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to load goal")
		return NewInternalError(c, "Failed to load goal")
	}
	return c.JSON(http.StatusOK, goal)
}

// UpdateGoal godoc
// @Summary Update a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Param request body UpdateGoalRequest true "Goal update request"
// @Success 200 {object} domain.Goal
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	var req UpdateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateGoalInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
	}
	if req.TargetAmount != nil {
		target, err := decimal.NewFromString(*req.TargetAmount)
		if err != nil {
			return NewValidationError(c, "Invalid targetAmount", []ValidationError{
				{Field: "targetAmount", Message: "Must be a valid decimal number"},
			})
		}
		input.TargetAmount = &target
	}
	if req.TargetDate != nil {
		targetDate, err := parseDateParam(req.TargetDate)
		if err != nil {
			return NewValidationError(c, "Invalid targetDate", []ValidationError{
				{Field: "targetDate", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		input.TargetDate = targetDate
	}

	goal, err := h.goalService.UpdateGoal(userID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		if mapped := mapGoalValidationError(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to update goal")
		return NewInternalError(c, "Failed to update goal")
	}
	return c.JSON(http.StatusOK, goal)
}

// AddToGoal godoc
// @Summary Add to a goal's progress
// @Description Add an amount to the goal; it completes automatically when the target is reached
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Param request body AddToGoalRequest true "Amount to add"
// @Success 200 {object} domain.Goal
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /goals/{id}/add [post]
func (h *GoalHandler) AddToGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	var req AddToGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	goal, err := h.goalService.AddToGoal(userID, id, amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		}
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to add to goal")
		return NewInternalError(c, "Failed to add to goal")
	}
	return c.JSON(http.StatusOK, goal)
}

// DeleteGoal godoc
// @Summary Delete a savings goal
// @Tags goals
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	if err := h.goalService.DeleteGoal(userID, id); err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to delete goal")
		return NewInternalError(c, "Failed to delete goal")
	}
	return c.NoContent(http.StatusNoContent)
}

// mapGoalValidationError maps goal validation sentinels to a response, nil
// when the error is not one of them
func mapGoalValidationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrGoalNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	case errors.Is(err, domain.ErrGoalNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 100 characters or less"},
		})
	case errors.Is(err, domain.ErrInvalidTargetAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "targetAmount", Message: "Target amount must be positive"},
		})
	}
	return nil
}

// parseDateParam parses an optional YYYY-MM-DD date string
func parseDateParam(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
