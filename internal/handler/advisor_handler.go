package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gertonargent/gta-backend/internal/domain"
	"github.com/gertonargent/gta-backend/internal/middleware"
	"github.com/gertonargent/gta-backend/internal/service"
)

// AdvisorHandler handles advisory HTTP requests
type AdvisorHandler struct {
	advisorService *service.AdvisorService
}

// NewAdvisorHandler creates a new AdvisorHandler
func NewAdvisorHandler(advisorService *service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{advisorService: advisorService}
}

// AnalyzeRequest represents the analyze request body
type AnalyzeRequest struct {
	Amount   string `json:"amount"`
	Category string `json:"category"`
}

// ChatRequest represents the chat and voice request body
type ChatRequest struct {
	Message string `json:"message"`
}

// ConfirmProposalRequest represents the proposal confirmation request body
type ConfirmProposalRequest struct {
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
}

// Analyze godoc
// @Summary Analyze a candidate expense
// @Description Score a planned expense against its budget before committing it
// @Tags advisor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AnalyzeRequest true "Analysis request"
// @Success 200 {object} service.AnalysisResult
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /advisor/analyze [post]
func (h *AdvisorHandler) Analyze(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	result, err := h.advisorService.Analyze(userID, amount, domain.Category(req.Category))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		}
		if errors.Is(err, domain.ErrInvalidCategory) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "category", Message: "Unknown category"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to analyze expense")
		return NewInternalError(c, "Failed to analyze expense")
	}
	return c.JSON(http.StatusOK, result)
}

// Chat godoc
// @Summary Ask the assistant
// @Description Answer a free-text financial question; spending questions may come back with a suggested transaction to confirm
// @Tags advisor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChatRequest true "Chat message"
// @Success 200 {object} advisor.Reply
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /advisor/chat [post]
func (h *AdvisorHandler) Chat(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if strings.TrimSpace(req.Message) == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "message", Message: "Message is required"},
		})
	}

	reply, err := h.advisorService.Chat(userID, req.Message)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to answer chat message")
		return NewInternalError(c, "Failed to answer")
	}
	return c.JSON(http.StatusOK, reply)
}

// ConfirmProposal godoc
// @Summary Confirm a suggested transaction
// @Description Commit a transaction the assistant suggested; it is recorded through the regular write path
// @Tags advisor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ConfirmProposalRequest true "Proposal to commit"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /advisor/chat/confirm [post]
func (h *AdvisorHandler) ConfirmProposal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req ConfirmProposalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	transaction, err := h.advisorService.ConfirmProposal(userID, domain.TransactionProposal{
		Amount:      amount,
		Category:    domain.Category(req.Category),
		Description: req.Description,
		Type:        domain.TransactionType(req.Type),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		}
		if errors.Is(err, domain.ErrInvalidCategory) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "category", Message: "Unknown category"},
			})
		}
		if errors.Is(err, domain.ErrInvalidTransactionType) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "type", Message: "Type must be one of: expense, income"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to confirm proposal")
		return NewInternalError(c, "Failed to confirm proposal")
	}

	log.Info().Str("user_id", userID.String()).Int32("transaction_id", transaction.ID).Msg("Proposal confirmed")
	return c.JSON(http.StatusCreated, transaction)
}

// Voice godoc
// @Summary Ask the voice assistant
// @Description Answer a voice transcript; recognized spends are recorded immediately
// @Tags advisor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChatRequest true "Voice transcript"
// @Success 200 {object} advisor.Reply
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /advisor/voice [post]
func (h *AdvisorHandler) Voice(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if strings.TrimSpace(req.Message) == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "message", Message: "Message is required"},
		})
	}

	reply, err := h.advisorService.Voice(userID, req.Message)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to answer voice message")
		return NewInternalError(c, "Failed to answer")
	}
	return c.JSON(http.StatusOK, reply)
}

// GetProjection godoc
// @Summary Project the month's spending
// @Description Extrapolate current spend rates to the end of a 30-day month
// @Tags advisor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ProjectionResult
// @Failure 401 {object} ProblemDetails
// @Router /advisor/projection [get]
func (h *AdvisorHandler) GetProjection(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	result, err := h.advisorService.Projection(userID, time.Now())
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to project month")
		return NewInternalError(c, "Failed to project month")
	}
	return c.JSON(http.StatusOK, result)
}
