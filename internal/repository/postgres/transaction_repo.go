package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gertonargent/gta-backend/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, user_id, amount, category, description, type, score, recommendation, created_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var amount pgtype.Numeric
	var description, recommendation pgtype.Text
	var score pgtype.Int4

	err := row.Scan(&t.ID, &t.UserID, &amount, &t.Category, &description, &t.Type, &score, &recommendation, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	t.Amount = pgNumericToDecimal(amount)
	t.Description = pgTextToString(description)
	t.Recommendation = pgTextToString(recommendation)
	if score.Valid {
		s := int(score.Int32)
		t.Score = &s
	}
	return &t, nil
}

// Create inserts a new transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	var score pgtype.Int4
	if transaction.Score != nil {
		score.Int32 = int32(*transaction.Score)
		score.Valid = true
	}

	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO transactions (user_id, amount, category, description, type, score, recommendation)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+transactionColumns,
		transaction.UserID, amount, transaction.Category,
		stringToPgText(transaction.Description), transaction.Type,
		score, stringToPgText(transaction.Recommendation),
	)
	return scanTransaction(row)
}

// GetByID retrieves a transaction by ID, scoped to the user
func (r *TransactionRepository) GetByID(userID uuid.UUID, id int32) (*domain.Transaction, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 AND id = $2`, userID, id)
	return scanTransaction(row)
}

// GetAllByUser retrieves the user's transactions, newest first, with
// optional category/type filters and pagination
func (r *TransactionRepository) GetAllByUser(userID uuid.UUID, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`)
	args := []any{userID}

	if filters != nil && filters.Category != nil {
		args = append(args, *filters.Category)
		fmt.Fprintf(&query, " AND category = $%d", len(args))
	}
	if filters != nil && filters.Type != nil {
		args = append(args, *filters.Type)
		fmt.Fprintf(&query, " AND type = $%d", len(args))
	}

	limit := int32(domain.DefaultTransactionLimit)
	offset := int32(0)
	if filters != nil {
		if filters.Limit > 0 {
			limit = filters.Limit
		}
		if filters.Offset > 0 {
			offset = filters.Offset
		}
	}
	if limit > domain.MaxTransactionLimit {
		limit = domain.MaxTransactionLimit
	}
	args = append(args, limit, offset)
	fmt.Fprintf(&query, " ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(context.Background(), query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []*domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// Update updates a transaction's description
func (r *TransactionRepository) Update(transaction *domain.Transaction) (*domain.Transaction, error) {
	row := r.pool.QueryRow(context.Background(),
		`UPDATE transactions SET description = $3
		 WHERE user_id = $1 AND id = $2
		 RETURNING `+transactionColumns,
		transaction.UserID, transaction.ID, stringToPgText(transaction.Description),
	)
	return scanTransaction(row)
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(userID uuid.UUID, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM transactions WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// Summarize aggregates the user's transactions: totals by type, overall
// balance, and expense totals per category
func (r *TransactionRepository) Summarize(userID uuid.UUID) (*domain.TransactionSummary, error) {
	ctx := context.Background()

	summary := &domain.TransactionSummary{
		TotalExpenses: decimal.Zero,
		TotalIncome:   decimal.Zero,
		Balance:       decimal.Zero,
		ByCategory:    map[domain.Category]decimal.Decimal{},
	}

	var expenses, income pgtype.Numeric
	err := r.pool.QueryRow(ctx,
		`SELECT
		   COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0),
		   COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
		   COUNT(*)
		 FROM transactions WHERE user_id = $1`, userID,
	).Scan(&expenses, &income, &summary.Count)
	if err != nil {
		return nil, err
	}
	summary.TotalExpenses = pgNumericToDecimal(expenses)
	summary.TotalIncome = pgNumericToDecimal(income)
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpenses)

	rows, err := r.pool.Query(ctx,
		`SELECT category, COALESCE(SUM(amount), 0)
		 FROM transactions WHERE user_id = $1 AND type = 'expense'
		 GROUP BY category`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var category domain.Category
		var total pgtype.Numeric
		if err := rows.Scan(&category, &total); err != nil {
			return nil, err
		}
		summary.ByCategory[category] = pgNumericToDecimal(total)
	}
	return summary, rows.Err()
}
