package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gertonargent/gta-backend/internal/advisor"
	"github.com/gertonargent/gta-backend/internal/domain"
	"github.com/gertonargent/gta-backend/internal/websocket"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	budgetRepo      domain.BudgetRepository
	events          websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, budgetRepo domain.BudgetRepository, events websocket.EventPublisher) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		events:          events,
	}
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	Amount      decimal.Decimal
	Category    domain.Category
	Description *string
	Type        domain.TransactionType
}

// CreateTransaction records a transaction. Expenses are scored against the
// matching budget at creation time and increment its current spend.
func (s *TransactionService) CreateTransaction(userID uuid.UUID, input CreateTransactionInput) (*domain.Transaction, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if input.Type != domain.TransactionTypeExpense && input.Type != domain.TransactionTypeIncome {
		return nil, domain.ErrInvalidTransactionType
	}
	if !input.Category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}

	var description *string
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed != "" {
			if len(trimmed) > domain.MaxTransactionDescriptionLength {
				return nil, domain.ErrDescriptionTooLong
			}
			description = &trimmed
		}
	}

	transaction := &domain.Transaction{
		UserID:      userID,
		Amount:      input.Amount,
		Category:    input.Category,
		Description: description,
		Type:        input.Type,
	}

	if input.Type == domain.TransactionTypeExpense {
		// Score the spend against its budget before the budget moves
		if budget, err := s.budgetRepo.GetByCategory(userID, input.Category); err == nil {
			result := advisor.Score(input.Amount, budget.Remaining(), budget.CurrentSpent, budget.MonthlyLimit)
			transaction.Score = &result.Score
			transaction.Recommendation = &result.Recommendation
		}
	}

	created, err := s.transactionRepo.Create(transaction)
	if err != nil {
		return nil, err
	}

	if created.Type == domain.TransactionTypeExpense {
		if budget, err := s.budgetRepo.AddSpent(userID, created.Category, created.Amount); err == nil {
			s.events.Publish(userID, websocket.BudgetUpdated(budget))
		}
	}

	s.events.Publish(userID, websocket.TransactionCreated(created))
	return created, nil
}

// GetTransaction retrieves a transaction by ID
func (s *TransactionService) GetTransaction(userID uuid.UUID, id int32) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(userID, id)
}

// ListTransactions retrieves a user's transactions, newest first
func (s *TransactionService) ListTransactions(userID uuid.UUID, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	if filters != nil && filters.Category != nil && !filters.Category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}
	if filters != nil && filters.Type != nil &&
		*filters.Type != domain.TransactionTypeExpense && *filters.Type != domain.TransactionTypeIncome {
		return nil, domain.ErrInvalidTransactionType
	}
	return s.transactionRepo.GetAllByUser(userID, filters)
}

// UpdateTransaction changes a transaction's description. Amount, category
// and type are immutable once recorded: budgets already moved.
func (s *TransactionService) UpdateTransaction(userID uuid.UUID, id int32, description *string) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	if description != nil {
		trimmed := strings.TrimSpace(*description)
		if len(trimmed) > domain.MaxTransactionDescriptionLength {
			return nil, domain.ErrDescriptionTooLong
		}
		if trimmed == "" {
			transaction.Description = nil
		} else {
			transaction.Description = &trimmed
		}
	}

	return s.transactionRepo.Update(transaction)
}

// DeleteTransaction removes a transaction. Deleting an expense refunds the
// matching budget; the stored spend never goes below zero.
func (s *TransactionService) DeleteTransaction(userID uuid.UUID, id int32) error {
	transaction, err := s.transactionRepo.GetByID(userID, id)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.Delete(userID, id); err != nil {
		return err
	}

	if transaction.Type == domain.TransactionTypeExpense {
		if budget, err := s.budgetRepo.AddSpent(userID, transaction.Category, transaction.Amount.Neg()); err == nil {
			s.events.Publish(userID, websocket.BudgetUpdated(budget))
		}
	}

	s.events.Publish(userID, websocket.TransactionDeleted(transaction))
	return nil
}

// Summarize aggregates a user's transactions
func (s *TransactionService) Summarize(userID uuid.UUID) (*domain.TransactionSummary, error) {
	return s.transactionRepo.Summarize(userID)
}
