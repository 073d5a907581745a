package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gertonargent/gta-backend/internal/advisor"
	"github.com/gertonargent/gta-backend/internal/domain"
	"github.com/gertonargent/gta-backend/internal/websocket"
)

// approvalThreshold is the lowest score the analyzer still approves.
// Scores of 1 to 3 (the red tier) are flagged as not approved.
const approvalThreshold = 4

const (
	noBudgetAnalysisError          = "Aucun budget défini pour cette catégorie"
	noBudgetAnalysisRecommendation = "Créez d'abord un budget pour cette catégorie."
	noBudgetAnalysisScore          = 5
)

// AdvisorService runs the advisory engine over a user's stored budgets,
// goals and transactions
type AdvisorService struct {
	budgetRepo         domain.BudgetRepository
	goalRepo           domain.GoalRepository
	transactionService *TransactionService
	events             websocket.EventPublisher
}

// NewAdvisorService creates a new AdvisorService
func NewAdvisorService(budgetRepo domain.BudgetRepository, goalRepo domain.GoalRepository, transactionService *TransactionService, events websocket.EventPublisher) *AdvisorService {
	return &AdvisorService{
		budgetRepo:         budgetRepo,
		goalRepo:           goalRepo,
		transactionService: transactionService,
		events:             events,
	}
}

// AnalysisResult is the answer to a direct transaction pre-check
type AnalysisResult struct {
	Score                 int             `json:"score"`
	Color                 domain.Tier     `json:"color"`
	Approved              bool            `json:"approved"`
	Recommendation        string          `json:"recommendation"`
	BudgetPercentage      decimal.Decimal `json:"budgetPercentage"`
	TransactionPercentage decimal.Decimal `json:"transactionPercentage"`
	RemainingBudget       decimal.Decimal `json:"remainingBudget"`
	Error                 string          `json:"error,omitempty"`
}

// Analyze scores a candidate expense against the matching budget. Without
// a budget for the category it returns a neutral score and asks the user
// to create one.
func (s *AdvisorService) Analyze(userID uuid.UUID, amount decimal.Decimal, category domain.Category) (*AnalysisResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if !category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}

	budget, err := s.budgetRepo.GetByCategory(userID, category)
	if err != nil {
		return &AnalysisResult{
			Score:          noBudgetAnalysisScore,
			Color:          advisor.TierFor(noBudgetAnalysisScore),
			Approved:       true,
			Recommendation: noBudgetAnalysisRecommendation,
			Error:          noBudgetAnalysisError,
		}, nil
	}

	result := advisor.Score(amount, budget.Remaining(), budget.CurrentSpent, budget.MonthlyLimit)
	return &AnalysisResult{
		Score:                 result.Score,
		Color:                 result.Color,
		Approved:              result.Score >= approvalThreshold,
		Recommendation:        result.Recommendation,
		BudgetPercentage:      result.BudgetPercentage,
		TransactionPercentage: result.TransactionPercentage,
		RemainingBudget:       result.RemainingBudget,
	}, nil
}

// Chat runs the conversational assistant pipeline on a free-text query
func (s *AdvisorService) Chat(userID uuid.UUID, query string) (*advisor.Reply, error) {
	budgets, goals, totalBudget, totalSpent, err := s.loadContext(userID)
	if err != nil {
		return nil, err
	}

	reply := advisor.Process(query, budgets, goals, totalBudget, totalSpent)
	if reply.SuggestedTransaction != nil {
		s.events.Publish(userID, websocket.ProposalIssued(reply.SuggestedTransaction))
	}
	return &reply, nil
}

// ConfirmProposal commits a suggested transaction through the regular
// transaction write path: it is scored again at commit time and moves the
// matching budget.
func (s *AdvisorService) ConfirmProposal(userID uuid.UUID, proposal domain.TransactionProposal) (*domain.Transaction, error) {
	var description *string
	if proposal.Description != "" {
		description = &proposal.Description
	}
	transactionType := proposal.Type
	if transactionType == "" {
		transactionType = domain.TransactionTypeExpense
	}
	return s.transactionService.CreateTransaction(userID, CreateTransactionInput{
		Amount:      proposal.Amount,
		Category:    proposal.Category,
		Description: description,
		Type:        transactionType,
	})
}

// Voice answers a voice transcript. A recognized spend is recorded
// immediately: the voice client confirms out loud rather than asking for
// a second tap.
func (s *AdvisorService) Voice(userID uuid.UUID, query string) (*advisor.Reply, error) {
	budgets, goals, totalBudget, totalSpent, err := s.loadContext(userID)
	if err != nil {
		return nil, err
	}

	reply := advisor.ProcessVoice(query, budgets, goals, totalBudget, totalSpent)
	if reply.SuggestedTransaction != nil {
		if _, err := s.ConfirmProposal(userID, *reply.SuggestedTransaction); err != nil {
			return nil, err
		}
	}
	return &reply, nil
}

// ProjectionResult pairs the month projection with its advice message
type ProjectionResult struct {
	Projection domain.MonthProjection `json:"projection"`
	Advice     string                 `json:"advice"`
}

// Projection extrapolates the user's budgets to the end of a 30-day month
func (s *AdvisorService) Projection(userID uuid.UUID, now time.Time) (*ProjectionResult, error) {
	budgets, err := s.budgetRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}

	daysElapsed := now.Day()
	if daysElapsed > advisor.ProjectionDaysInMonth {
		daysElapsed = advisor.ProjectionDaysInMonth
	}

	snapshots := make([]domain.BudgetSnapshot, 0, len(budgets))
	for _, b := range budgets {
		snapshots = append(snapshots, b.Snapshot())
	}

	projection := advisor.ProjectMonth(daysElapsed, snapshots)
	return &ProjectionResult{
		Projection: projection,
		Advice:     advisor.MonthlyAdvice(projection),
	}, nil
}

// loadContext gathers everything the composer needs for one query
func (s *AdvisorService) loadContext(userID uuid.UUID) ([]domain.BudgetSnapshot, []domain.GoalSnapshot, decimal.Decimal, decimal.Decimal, error) {
	budgets, err := s.budgetRepo.GetAllByUser(userID)
	if err != nil {
		return nil, nil, decimal.Zero, decimal.Zero, err
	}
	goals, err := s.goalRepo.GetAllByUser(userID, true)
	if err != nil {
		return nil, nil, decimal.Zero, decimal.Zero, err
	}

	budgetSnapshots := make([]domain.BudgetSnapshot, 0, len(budgets))
	totalBudget := decimal.Zero
	totalSpent := decimal.Zero
	for _, b := range budgets {
		budgetSnapshots = append(budgetSnapshots, b.Snapshot())
		totalBudget = totalBudget.Add(b.MonthlyLimit)
		totalSpent = totalSpent.Add(b.CurrentSpent)
	}

	goalSnapshots := make([]domain.GoalSnapshot, 0, len(goals))
	for _, g := range goals {
		goalSnapshots = append(goalSnapshots, g.Snapshot())
	}
	return budgetSnapshots, goalSnapshots, totalBudget, totalSpent, nil
}
