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

// TransactionHandler handles transaction HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	Amount      string  `json:"amount"`
	Category    string  `json:"category"`
	Description *string `json:"description,omitempty"`
	Type        string  `json:"type"`
}

// UpdateTransactionRequest represents the update transaction request body
type UpdateTransactionRequest struct {
	Description *string `json:"description,omitempty"`
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Description Record an expense or income. Expenses are scored by the advisor and move the matching budget.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "Transaction creation request"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	transaction, err := h.transactionService.CreateTransaction(userID, service.CreateTransactionInput{
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
		if errors.Is(err, domain.ErrInvalidTransactionType) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "type", Message: "Type must be one of: expense, income"},
			})
		}
		if errors.Is(err, domain.ErrInvalidCategory) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "category", Message: "Unknown category"},
			})
		}
		if errors.Is(err, domain.ErrDescriptionTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "description", Message: "Description must be 500 characters or less"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}

	log.Info().Str("user_id", userID.String()).Int32("transaction_id", transaction.ID).Msg("Transaction created")
	return c.JSON(http.StatusCreated, transaction)
}

// GetTransactions godoc
// @Summary List transactions
// @Description Get the user's transactions, newest first, with optional filters
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Param type query string false "Transaction type (expense or income)"
// @Param limit query int false "Maximum results" default(50)
// @Param offset query int false "Results to skip"
// @Success 200 {array} domain.Transaction
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /transactions [get]
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filters := &domain.TransactionFilters{}

	if categoryStr := c.QueryParam("category"); categoryStr != "" {
		category := domain.Category(categoryStr)
		filters.Category = &category
	}
	if typeStr := c.QueryParam("type"); typeStr != "" {
		transactionType := domain.TransactionType(typeStr)
		filters.Type = &transactionType
	}
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.ParseInt(limitStr, 10, 32)
		if err != nil || limit < 0 {
			return NewValidationError(c, "Invalid limit", nil)
		}
		filters.Limit = int32(limit)
	}
	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		offset, err := strconv.ParseInt(offsetStr, 10, 32)
		if err != nil || offset < 0 {
			return NewValidationError(c, "Invalid offset", nil)
		}
		filters.Offset = int32(offset)
	}

	transactions, err := h.transactionService.ListTransactions(userID, filters)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCategory) {
			return NewValidationError(c, "Invalid category filter", nil)
		}
		if errors.Is(err, domain.ErrInvalidTransactionType) {
			return NewValidationError(c, "Invalid type filter", nil)
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list transactions")
		return NewInternalError(c, "Failed to list transactions")
	}
	return c.JSON(http.StatusOK, transactions)
}

// GetTransactionSummary godoc
// @Summary Summarize transactions
// @Description Aggregate totals, balance and per-category expenses
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.TransactionSummary
// @Failure 401 {object} ProblemDetails
// @Router /transactions/summary [get]
func (h *TransactionHandler) GetTransactionSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	summary, err := h.transactionService.Summarize(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to summarize transactions")
		return NewInternalError(c, "Failed to summarize transactions")
	}
	return c.JSON(http.StatusOK, summary)
}

// GetTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} domain.Transaction
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	transaction, err := h.transactionService.GetTransaction(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to load transaction")
		return NewInternalError(c, "Failed to load transaction")
	}
	return c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction godoc
// @Summary Update a transaction's description
// @Description Amount, category and type are immutable once recorded
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Param request body UpdateTransactionRequest true "Transaction update request"
// @Success 200 {object} domain.Transaction
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, id, req.Description)
	if err != nil {
		if errors.Is(err, domain.ErrDescriptionTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "description", Message: "Description must be 500 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to update transaction")
		return NewInternalError(c, "Failed to update transaction")
	}
	return c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Description Deleting an expense refunds the matching budget
// @Tags transactions
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(userID, id); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}
	return c.NoContent(http.StatusNoContent)
}
