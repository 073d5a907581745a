package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gertonargent/gta-backend/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetColumns = `id, user_id, category, monthly_limit, current_spent, period_start, created_at, updated_at`

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var b domain.Budget
	var limit, spent pgtype.Numeric
	err := row.Scan(&b.ID, &b.UserID, &b.Category, &limit, &spent, &b.PeriodStart, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	b.MonthlyLimit = pgNumericToDecimal(limit)
	b.CurrentSpent = pgNumericToDecimal(spent)
	return &b, nil
}

// Create inserts a new budget. One budget per (user, category) is
// enforced by a unique constraint.
func (r *BudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	limit, err := decimalToPgNumeric(budget.MonthlyLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid monthly limit: %w", err)
	}
	spent, err := decimalToPgNumeric(budget.CurrentSpent)
	if err != nil {
		return nil, fmt.Errorf("invalid current spent: %w", err)
	}

	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO budgets (user_id, category, monthly_limit, current_spent, period_start)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+budgetColumns,
		budget.UserID, budget.Category, limit, spent, budget.PeriodStart,
	)
	created, err := scanBudget(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrBudgetAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a budget by ID, scoped to the user
func (r *BudgetRepository) GetByID(userID uuid.UUID, id int32) (*domain.Budget, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 AND id = $2`, userID, id)
	return scanBudget(row)
}

// GetByCategory retrieves the user's budget for a category
func (r *BudgetRepository) GetByCategory(userID uuid.UUID, category domain.Category) (*domain.Budget, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 AND category = $2`, userID, category)
	return scanBudget(row)
}

// GetAllByUser retrieves all budgets for a user, ordered by category
func (r *BudgetRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Budget, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 ORDER BY category`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := []*domain.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// Update updates a budget's monthly limit
func (r *BudgetRepository) Update(budget *domain.Budget) (*domain.Budget, error) {
	limit, err := decimalToPgNumeric(budget.MonthlyLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid monthly limit: %w", err)
	}

	row := r.pool.QueryRow(context.Background(),
		`UPDATE budgets SET monthly_limit = $3, updated_at = now()
		 WHERE user_id = $1 AND id = $2
		 RETURNING `+budgetColumns,
		budget.UserID, budget.ID, limit,
	)
	return scanBudget(row)
}

// AddSpent atomically increments current_spent by delta, floored at zero.
// The single UPDATE serializes concurrent commits for the same
// (user, category) on the row lock.
func (r *BudgetRepository) AddSpent(userID uuid.UUID, category domain.Category, delta decimal.Decimal) (*domain.Budget, error) {
	d, err := decimalToPgNumeric(delta)
	if err != nil {
		return nil, fmt.Errorf("invalid delta: %w", err)
	}

	row := r.pool.QueryRow(context.Background(),
		`UPDATE budgets SET current_spent = GREATEST(current_spent + $3, 0), updated_at = now()
		 WHERE user_id = $1 AND category = $2
		 RETURNING `+budgetColumns,
		userID, category, d,
	)
	return scanBudget(row)
}

// Delete removes a budget
func (r *BudgetRepository) Delete(userID uuid.UUID, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM budgets WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}
