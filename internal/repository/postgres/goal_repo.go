package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gertonargent/gta-backend/internal/domain"
)

// GoalRepository implements domain.GoalRepository using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

const goalColumns = `id, user_id, name, description, target_amount, current_amount, target_date, icon, color, is_completed, created_at, updated_at`

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var g domain.Goal
	var target, current pgtype.Numeric
	var description pgtype.Text
	var targetDate pgtype.Timestamptz

	err := row.Scan(&g.ID, &g.UserID, &g.Name, &description, &target, &current,
		&targetDate, &g.Icon, &g.Color, &g.IsCompleted, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}

	g.TargetAmount = pgNumericToDecimal(target)
	g.CurrentAmount = pgNumericToDecimal(current)
	g.Description = pgTextToString(description)
	if targetDate.Valid {
		t := targetDate.Time
		g.TargetDate = &t
	}
	return &g, nil
}

// Create inserts a new goal
func (r *GoalRepository) Create(goal *domain.Goal) (*domain.Goal, error) {
	target, err := decimalToPgNumeric(goal.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid target amount: %w", err)
	}
	current, err := decimalToPgNumeric(goal.CurrentAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid current amount: %w", err)
	}

	var targetDate pgtype.Timestamptz
	if goal.TargetDate != nil {
		targetDate.Time = *goal.TargetDate
		targetDate.Valid = true
	}

	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO goals (user_id, name, description, target_amount, current_amount, target_date, icon, color, is_completed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+goalColumns,
		goal.UserID, goal.Name, stringToPgText(goal.Description), target, current,
		targetDate, goal.Icon, goal.Color, goal.IsCompleted,
	)
	return scanGoal(row)
}

// GetByID retrieves a goal by ID, scoped to the user
func (r *GoalRepository) GetByID(userID uuid.UUID, id int32) (*domain.Goal, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+goalColumns+` FROM goals WHERE user_id = $1 AND id = $2`, userID, id)
	return scanGoal(row)
}

// GetAllByUser retrieves the user's goals, optionally including completed ones
func (r *GoalRepository) GetAllByUser(userID uuid.UUID, includeCompleted bool) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1`
	if !includeCompleted {
		query += ` AND is_completed = false`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []*domain.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// Update updates a goal's mutable fields
func (r *GoalRepository) Update(goal *domain.Goal) (*domain.Goal, error) {
	target, err := decimalToPgNumeric(goal.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid target amount: %w", err)
	}
	current, err := decimalToPgNumeric(goal.CurrentAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid current amount: %w", err)
	}

	var targetDate pgtype.Timestamptz
	if goal.TargetDate != nil {
		targetDate.Time = *goal.TargetDate
		targetDate.Valid = true
	}

	row := r.pool.QueryRow(context.Background(),
		`UPDATE goals
		 SET name = $3, description = $4, target_amount = $5, current_amount = $6,
		     target_date = $7, icon = $8, color = $9, is_completed = $10, updated_at = now()
		 WHERE user_id = $1 AND id = $2
		 RETURNING `+goalColumns,
		goal.UserID, goal.ID, goal.Name, stringToPgText(goal.Description),
		target, current, targetDate, goal.Icon, goal.Color, goal.IsCompleted,
	)
	return scanGoal(row)
}

// Delete removes a goal
func (r *GoalRepository) Delete(userID uuid.UUID, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM goals WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}
