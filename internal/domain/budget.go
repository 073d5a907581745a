package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is a spending category. The set is closed: budgets, transactions
// and the advisor all share these ten values.
type Category string

const (
	CategoryAlimentation  Category = "alimentation"
	CategoryTransport     Category = "transport"
	CategoryLogement      Category = "logement"
	CategorySante         Category = "sante"
	CategoryEducation     Category = "education"
	CategoryLoisirs       Category = "loisirs"
	CategoryEpargne       Category = "epargne"
	CategoryVetements     Category = "vetements"
	CategoryCommunication Category = "communication"
	CategoryAutre         Category = "autre"
)

// Categories lists every valid category in declaration order.
var Categories = []Category{
	CategoryAlimentation,
	CategoryTransport,
	CategoryLogement,
	CategorySante,
	CategoryEducation,
	CategoryLoisirs,
	CategoryEpargne,
	CategoryVetements,
	CategoryCommunication,
	CategoryAutre,
}

// IsValid reports whether c is one of the fixed categories.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

var (
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrBudgetAlreadyExists = errors.New("budget already exists for this category")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidLimit        = errors.New("monthly limit must be positive")
)

// Budget holds a user's monthly spending limit for one category together
// with the amount already spent in the current period.
type Budget struct {
	ID           int32           `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	Category     Category        `json:"category"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
	CurrentSpent decimal.Decimal `json:"currentSpent"`
	PeriodStart  time.Time       `json:"periodStart"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Remaining returns monthly_limit - current_spent. It may be negative when
// the budget is overspent.
func (b *Budget) Remaining() decimal.Decimal {
	return b.MonthlyLimit.Sub(b.CurrentSpent)
}

// Snapshot returns the read-only view the advisor engine consumes.
func (b *Budget) Snapshot() BudgetSnapshot {
	return BudgetSnapshot{
		Category:     b.Category,
		MonthlyLimit: b.MonthlyLimit,
		CurrentSpent: b.CurrentSpent,
	}
}

// BudgetSnapshot is the read-only view of a budget handed to the advisor.
// The engine never mutates it.
type BudgetSnapshot struct {
	Category     Category        `json:"category"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
	CurrentSpent decimal.Decimal `json:"currentSpent"`
}

// Remaining returns monthly_limit - current_spent.
func (s BudgetSnapshot) Remaining() decimal.Decimal {
	return s.MonthlyLimit.Sub(s.CurrentSpent)
}

// BudgetRepository defines the interface for budget persistence operations
type BudgetRepository interface {
	Create(budget *Budget) (*Budget, error)
	GetByID(userID uuid.UUID, id int32) (*Budget, error)
	GetByCategory(userID uuid.UUID, category Category) (*Budget, error)
	GetAllByUser(userID uuid.UUID) ([]*Budget, error)
	Update(budget *Budget) (*Budget, error)
	// AddSpent atomically increments current_spent by delta (which may be
	// negative for refunds; the stored value is floored at zero). Commits
	// for the same (user, category) are serialized by the database row lock.
	AddSpent(userID uuid.UUID, category Category, delta decimal.Decimal) (*Budget, error)
	Delete(userID uuid.UUID, id int32) error
}
