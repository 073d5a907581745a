package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gertonargent/gta-backend/internal/domain"
	"github.com/gertonargent/gta-backend/internal/websocket"
)

const (
	defaultGoalIcon  = "🎯"
	defaultGoalColor = "#4CAF50"
)

// GoalService handles savings goal business logic
type GoalService struct {
	goalRepo domain.GoalRepository
	events   websocket.EventPublisher
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo domain.GoalRepository, events websocket.EventPublisher) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		events:   events,
	}
}

// CreateGoalInput holds the input for creating a goal
type CreateGoalInput struct {
	Name          string
	Description   *string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    *time.Time
	Icon          string
	Color         string
}

// CreateGoal creates a savings goal with validation
func (s *GoalService) CreateGoal(userID uuid.UUID, input CreateGoalInput) (*domain.Goal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrGoalNameRequired
	}
	if len(name) > domain.MaxGoalNameLength {
		return nil, domain.ErrGoalNameTooLong
	}
	if input.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidTargetAmount
	}

	current := input.CurrentAmount
	if current.LessThan(decimal.Zero) {
		current = decimal.Zero
	}

	icon := input.Icon
	if icon == "" {
		icon = defaultGoalIcon
	}
	color := input.Color
	if color == "" {
		color = defaultGoalColor
	}

	goal := &domain.Goal{
		UserID:        userID,
		Name:          name,
		Description:   input.Description,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: current,
		TargetDate:    input.TargetDate,
		Icon:          icon,
		Color:         color,
		IsCompleted:   current.GreaterThanOrEqual(input.TargetAmount),
	}

	created, err := s.goalRepo.Create(goal)
	if err != nil {
		return nil, err
	}

	s.events.Publish(userID, websocket.GoalUpdated(created))
	return created, nil
}

// GetGoal retrieves a goal by ID
func (s *GoalService) GetGoal(userID uuid.UUID, id int32) (*domain.Goal, error) {
	return s.goalRepo.GetByID(userID, id)
}

// ListGoals retrieves a user's goals
func (s *GoalService) ListGoals(userID uuid.UUID, includeCompleted bool) ([]*domain.Goal, error) {
	return s.goalRepo.GetAllByUser(userID, includeCompleted)
}

// UpdateGoalInput holds the optional fields for updating a goal
type UpdateGoalInput struct {
	Name         *string
	Description  *string
	TargetAmount *decimal.Decimal
	TargetDate   *time.Time
	Icon         *string
	Color        *string
}

// UpdateGoal updates a goal's fields
func (s *GoalService) UpdateGoal(userID uuid.UUID, id int32, input UpdateGoalInput) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.ErrGoalNameRequired
		}
		if len(name) > domain.MaxGoalNameLength {
			return nil, domain.ErrGoalNameTooLong
		}
		goal.Name = name
	}
	if input.Description != nil {
		goal.Description = input.Description
	}
	if input.TargetAmount != nil {
		if input.TargetAmount.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidTargetAmount
		}
		goal.TargetAmount = *input.TargetAmount
	}
	if input.TargetDate != nil {
		goal.TargetDate = input.TargetDate
	}
	if input.Icon != nil && *input.Icon != "" {
		goal.Icon = *input.Icon
	}
	if input.Color != nil && *input.Color != "" {
		goal.Color = *input.Color
	}
	goal.IsCompleted = goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount)

	updated, err := s.goalRepo.Update(goal)
	if err != nil {
		return nil, err
	}

	s.events.Publish(userID, websocket.GoalUpdated(updated))
	return updated, nil
}

// AddToGoal adds an amount to the goal's progress. The goal is completed
// automatically once current_amount reaches target_amount.
func (s *GoalService) AddToGoal(userID uuid.UUID, id int32, amount decimal.Decimal) (*domain.Goal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	goal, err := s.goalRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	wasCompleted := goal.IsCompleted
	goal.CurrentAmount = goal.CurrentAmount.Add(amount)
	goal.IsCompleted = goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount)

	updated, err := s.goalRepo.Update(goal)
	if err != nil {
		return nil, err
	}

	if updated.IsCompleted && !wasCompleted {
		s.events.Publish(userID, websocket.GoalCompleted(updated))
	} else {
		s.events.Publish(userID, websocket.GoalUpdated(updated))
	}
	return updated, nil
}

// DeleteGoal removes a goal
func (s *GoalService) DeleteGoal(userID uuid.UUID, id int32) error {
	if _, err := s.goalRepo.GetByID(userID, id); err != nil {
		return err
	}
	return s.goalRepo.Delete(userID, id)
}

// Summarize aggregates a user's goals, completed ones included
func (s *GoalService) Summarize(userID uuid.UUID) (*domain.GoalSummary, error) {
	goals, err := s.goalRepo.GetAllByUser(userID, true)
	if err != nil {
		return nil, err
	}

	summary := &domain.GoalSummary{
		TotalTarget:     decimal.Zero,
		TotalSaved:      decimal.Zero,
		OverallProgress: decimal.Zero,
	}
	for _, g := range goals {
		summary.TotalGoals++
		if g.IsCompleted {
			summary.Completed++
		} else {
			summary.InProgress++
		}
		summary.TotalTarget = summary.TotalTarget.Add(g.TargetAmount)
		summary.TotalSaved = summary.TotalSaved.Add(g.CurrentAmount)
	}
	if summary.TotalTarget.GreaterThan(decimal.Zero) {
		summary.OverallProgress = summary.TotalSaved.Div(summary.TotalTarget).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return summary, nil
}
