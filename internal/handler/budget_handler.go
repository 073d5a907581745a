package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gertonargent/gta-backend/internal/domain"
	"github.com/gertonargent/gta-backend/internal/middleware"
	"github.com/gertonargent/gta-backend/internal/service"
)

// BudgetHandler handles budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudgetRequest represents the create budget request body
type CreateBudgetRequest struct {
	Category     string `json:"category"`
	MonthlyLimit string `json:"monthlyLimit"`
}

// UpdateBudgetRequest represents the update budget request body
type UpdateBudgetRequest struct {
	MonthlyLimit string `json:"monthlyLimit"`
}

// CreateBudget godoc
// @Summary Create a budget
// @Description Create a monthly budget for one spending category
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBudgetRequest true "Budget creation request"
// @Success 201 {object} domain.Budget
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	limit, err := decimal.NewFromString(req.MonthlyLimit)
	if err != nil {
		return NewValidationError(c, "Invalid monthlyLimit", []ValidationError{
			{Field: "monthlyLimit", Message: "Must be a valid decimal number"},
		})
	}

	budget, err := h.budgetService.CreateBudget(userID, service.CreateBudgetInput{
		Category:     domain.Category(req.Category),
		MonthlyLimit: limit,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCategory) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "category", Message: "Unknown category"},
			})
		}
		if errors.Is(err, domain.ErrInvalidLimit) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "monthlyLimit", Message: "Monthly limit must be positive"},
			})
		}
		if errors.Is(err, domain.ErrBudgetAlreadyExists) {
			return NewConflictError(c, "A budget already exists for this category")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create budget")
		return NewInternalError(c, "Failed to create budget")
	}

	log.Info().Str("user_id", userID.String()).Str("category", string(budget.Category)).Msg("Budget created")
	return c.JSON(http.StatusCreated, budget)
}

// GetBudgets godoc
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Budget
// @Failure 401 {object} ProblemDetails
// @Router /budgets [get]
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	budgets, err := h.budgetService.ListBudgets(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list budgets")
		return NewInternalError(c, "Failed to list budgets")
	}
	return c.JSON(http.StatusOK, budgets)
}

// GetBudgetSummary godoc
// @Summary Summarize budgets
// @Description Aggregate limits, spending and usage across all budgets
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.BudgetSummary
// @Failure 401 {object} ProblemDetails
// @Router /budgets/summary [get]
func (h *BudgetHandler) GetBudgetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	summary, err := h.budgetService.Summarize(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to summarize budgets")
		return NewInternalError(c, "Failed to summarize budgets")
	}
	return c.JSON(http.StatusOK, summary)
}

// UpdateBudget godoc
// @Summary Update a budget's monthly limit
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Budget ID"
// @Param request body UpdateBudgetRequest true "Budget update request"
// @Success 200 {object} domain.Budget
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	var req UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	limit, err := decimal.NewFromString(req.MonthlyLimit)
	if err != nil {
		return NewValidationError(c, "Invalid monthlyLimit", []ValidationError{
			{Field: "monthlyLimit", Message: "Must be a valid decimal number"},
		})
	}

	budget, err := h.budgetService.UpdateBudget(userID, id, limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLimit) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "monthlyLimit", Message: "Monthly limit must be positive"},
			})
		}
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to update budget")
		return NewInternalError(c, "Failed to update budget")
	}
	return c.JSON(http.StatusOK, budget)
}

// DeleteBudget godoc
// @Summary Delete a budget
// @Tags budgets
// @Security BearerAuth
// @Param id path int true "Budget ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.DeleteBudget(userID, id); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to delete budget")
		return NewInternalError(c, "Failed to delete budget")
	}
	return c.NoContent(http.StatusNoContent)
}

// parseIDParam parses the :id path parameter as an int32
func parseIDParam(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return int32(id), nil
}
