package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrGoalNotFound        = errors.New("goal not found")
	ErrGoalNameRequired    = errors.New("goal name is required")
	ErrGoalNameTooLong     = errors.New("goal name must be 100 characters or less")
	ErrInvalidTargetAmount = errors.New("target amount must be positive")
)

const MaxGoalNameLength = 100

// Goal is a savings objective with a target amount and accumulated progress.
type Goal struct {
	ID            int32           `json:"id"`
	UserID        uuid.UUID       `json:"userId"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    *time.Time      `json:"targetDate,omitempty"`
	Icon          string          `json:"icon"`
	Color         string          `json:"color"`
	IsCompleted   bool            `json:"isCompleted"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Progress returns current_amount / target_amount as a percentage, 0 when
// the target is not positive.
func (g *Goal) Progress() decimal.Decimal {
	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
}

// Snapshot returns the read-only view the advisor engine consumes.
func (g *Goal) Snapshot() GoalSnapshot {
	return GoalSnapshot{
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		TargetDate:    g.TargetDate,
		IsCompleted:   g.IsCompleted,
	}
}

// GoalSnapshot is the read-only view of a savings goal handed to the advisor.
type GoalSnapshot struct {
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    *time.Time      `json:"targetDate,omitempty"`
	IsCompleted   bool            `json:"isCompleted"`
}

// Progress returns current_amount / target_amount as a percentage.
func (s GoalSnapshot) Progress() decimal.Decimal {
	if s.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return s.CurrentAmount.Div(s.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
}

// GoalSummary aggregates a user's goals
type GoalSummary struct {
	TotalGoals      int             `json:"totalGoals"`
	Completed       int             `json:"completed"`
	InProgress      int             `json:"inProgress"`
	TotalTarget     decimal.Decimal `json:"totalTargetAmount"`
	TotalSaved      decimal.Decimal `json:"totalSavedAmount"`
	OverallProgress decimal.Decimal `json:"overallProgress"`
}

// GoalRepository defines the interface for goal persistence operations
type GoalRepository interface {
	Create(goal *Goal) (*Goal, error)
	GetByID(userID uuid.UUID, id int32) (*Goal, error)
	GetAllByUser(userID uuid.UUID, includeCompleted bool) ([]*Goal, error)
	Update(goal *Goal) (*Goal, error)
	Delete(userID uuid.UUID, id int32) error
}
