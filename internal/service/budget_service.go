package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gertonargent/gta-backend/internal/domain"
	"github.com/gertonargent/gta-backend/internal/websocket"
)

// BudgetService handles budget-related business logic
type BudgetService struct {
	budgetRepo domain.BudgetRepository
	events     websocket.EventPublisher
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, events websocket.EventPublisher) *BudgetService {
	return &BudgetService{
		budgetRepo: budgetRepo,
		events:     events,
	}
}

// CreateBudgetInput holds the input for creating a budget
type CreateBudgetInput struct {
	Category     domain.Category
	MonthlyLimit decimal.Decimal
}

// CreateBudget creates a monthly budget for one category
func (s *BudgetService) CreateBudget(userID uuid.UUID, input CreateBudgetInput) (*domain.Budget, error) {
	if !input.Category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}
	if input.MonthlyLimit.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidLimit
	}

	budget := &domain.Budget{
		UserID:       userID,
		Category:     input.Category,
		MonthlyLimit: input.MonthlyLimit,
		CurrentSpent: decimal.Zero,
	}

	created, err := s.budgetRepo.Create(budget)
	if err != nil {
		return nil, err
	}

	s.events.Publish(userID, websocket.BudgetUpdated(created))
	return created, nil
}

// GetBudget retrieves a budget by ID
func (s *BudgetService) GetBudget(userID uuid.UUID, id int32) (*domain.Budget, error) {
	return s.budgetRepo.GetByID(userID, id)
}

// ListBudgets retrieves all budgets for a user
func (s *BudgetService) ListBudgets(userID uuid.UUID) ([]*domain.Budget, error) {
	return s.budgetRepo.GetAllByUser(userID)
}

// UpdateBudget changes a budget's monthly limit
func (s *BudgetService) UpdateBudget(userID uuid.UUID, id int32, monthlyLimit decimal.Decimal) (*domain.Budget, error) {
	if monthlyLimit.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidLimit
	}

	budget, err := s.budgetRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	budget.MonthlyLimit = monthlyLimit

	updated, err := s.budgetRepo.Update(budget)
	if err != nil {
		return nil, err
	}

	s.events.Publish(userID, websocket.BudgetUpdated(updated))
	return updated, nil
}

// DeleteBudget removes a budget
func (s *BudgetService) DeleteBudget(userID uuid.UUID, id int32) error {
	budget, err := s.budgetRepo.GetByID(userID, id)
	if err != nil {
		return err
	}
	if err := s.budgetRepo.Delete(userID, id); err != nil {
		return err
	}

	s.events.Publish(userID, websocket.BudgetUpdated(budget))
	return nil
}

// BudgetSummary aggregates a user's budgets for the current period
type BudgetSummary struct {
	TotalLimit     decimal.Decimal      `json:"totalLimit"`
	TotalSpent     decimal.Decimal      `json:"totalSpent"`
	TotalRemaining decimal.Decimal      `json:"totalRemaining"`
	UsagePercent   decimal.Decimal      `json:"usagePercent"`
	Budgets        []BudgetSummaryEntry `json:"budgets"`
}

// BudgetSummaryEntry is one budget's slice of the summary
type BudgetSummaryEntry struct {
	ID           int32           `json:"id"`
	Category     domain.Category `json:"category"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
	CurrentSpent decimal.Decimal `json:"currentSpent"`
	Remaining    decimal.Decimal `json:"remaining"`
	UsagePercent decimal.Decimal `json:"usagePercent"`
}

// Summarize aggregates a user's budgets
func (s *BudgetService) Summarize(userID uuid.UUID) (*BudgetSummary, error) {
	budgets, err := s.budgetRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &BudgetSummary{
		TotalLimit:     decimal.Zero,
		TotalSpent:     decimal.Zero,
		TotalRemaining: decimal.Zero,
		UsagePercent:   decimal.Zero,
		Budgets:        make([]BudgetSummaryEntry, 0, len(budgets)),
	}
	hundred := decimal.NewFromInt(100)

	for _, b := range budgets {
		entry := BudgetSummaryEntry{
			ID:           b.ID,
			Category:     b.Category,
			MonthlyLimit: b.MonthlyLimit,
			CurrentSpent: b.CurrentSpent,
			Remaining:    b.Remaining(),
			UsagePercent: hundred,
		}
		if b.MonthlyLimit.GreaterThan(decimal.Zero) {
			entry.UsagePercent = b.CurrentSpent.Div(b.MonthlyLimit).Mul(hundred).Round(2)
		}
		summary.Budgets = append(summary.Budgets, entry)
		summary.TotalLimit = summary.TotalLimit.Add(b.MonthlyLimit)
		summary.TotalSpent = summary.TotalSpent.Add(b.CurrentSpent)
	}

	summary.TotalRemaining = summary.TotalLimit.Sub(summary.TotalSpent)
	if summary.TotalLimit.GreaterThan(decimal.Zero) {
		summary.UsagePercent = summary.TotalSpent.Div(summary.TotalLimit).Mul(hundred).Round(2)
	}
	return summary, nil
}
