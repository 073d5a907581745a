package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

var (
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("transaction type must be expense or income")
	ErrDescriptionTooLong     = errors.New("description must be 500 characters or less")
)

const MaxTransactionDescriptionLength = 500

// Transaction is a recorded expense or income. Expenses carry the advisor
// score and recommendation computed when they were created.
type Transaction struct {
	ID             int32           `json:"id"`
	UserID         uuid.UUID       `json:"userId"`
	Amount         decimal.Decimal `json:"amount"`
	Category       Category        `json:"category"`
	Description    *string         `json:"description,omitempty"`
	Type           TransactionType `json:"type"`
	Score          *int            `json:"score,omitempty"`
	Recommendation *string         `json:"recommendation,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// TransactionFilters narrows transaction listings
type TransactionFilters struct {
	Category *Category
	Type     *TransactionType
	Limit    int32
	Offset   int32
}

const (
	DefaultTransactionLimit = 50
	MaxTransactionLimit     = 100
)

// TransactionSummary aggregates a user's transactions
type TransactionSummary struct {
	TotalExpenses decimal.Decimal             `json:"totalExpenses"`
	TotalIncome   decimal.Decimal             `json:"totalIncome"`
	Balance       decimal.Decimal             `json:"balance"`
	Count         int                         `json:"count"`
	ByCategory    map[Category]decimal.Decimal `json:"byCategory"`
}

// TransactionRepository defines the interface for transaction persistence operations
type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByID(userID uuid.UUID, id int32) (*Transaction, error)
	GetAllByUser(userID uuid.UUID, filters *TransactionFilters) ([]*Transaction, error)
	Update(transaction *Transaction) (*Transaction, error)
	Delete(userID uuid.UUID, id int32) error
	Summarize(userID uuid.UUID) (*TransactionSummary, error)
}
