package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gertonargent/gta-backend/internal/domain"
	"github.com/gertonargent/gta-backend/internal/testutil"
)

type advisorFixture struct {
	svc          *AdvisorService
	budgets      *testutil.MockBudgetRepository
	goals        *testutil.MockGoalRepository
	transactions *testutil.MockTransactionRepository
	events       *testutil.MockEventPublisher
}

func newAdvisorFixture() *advisorFixture {
	budgets := testutil.NewMockBudgetRepository()
	goals := testutil.NewMockGoalRepository()
	transactions := testutil.NewMockTransactionRepository()
	events := testutil.NewMockEventPublisher()
	txSvc := NewTransactionService(transactions, budgets, events)
	return &advisorFixture{
		svc:          NewAdvisorService(budgets, goals, txSvc, events),
		budgets:      budgets,
		goals:        goals,
		transactions: transactions,
		events:       events,
	}
}

func TestAnalyzeScoresAgainstBudget(t *testing.T) {
	f := newAdvisorFixture()
	userID := uuid.New()
	f.budgets.AddBudget(userID, domain.CategoryAlimentation, decimal.NewFromInt(50000), decimal.NewFromInt(40000))

	result, err := f.svc.Analyze(userID, decimal.NewFromInt(5000), domain.CategoryAlimentation)
	require.NoError(t, err)
	assert.Equal(t, 6, result.Score)
	assert.Equal(t, domain.TierOrange, result.Color)
	assert.True(t, result.Approved)
	assert.Empty(t, result.Error)
	assert.True(t, result.RemainingBudget.Equal(decimal.NewFromInt(10000)))
}

func TestAnalyzeRedScoreNotApproved(t *testing.T) {
	f := newAdvisorFixture()
	userID := uuid.New()
	f.budgets.AddBudget(userID, domain.CategoryLoisirs, decimal.NewFromInt(10000), decimal.NewFromInt(9500))

	result, err := f.svc.Analyze(userID, decimal.NewFromInt(2000), domain.CategoryLoisirs)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, domain.TierRed, result.Color)
	assert.False(t, result.Approved)
}

func TestAnalyzeWithoutBudget(t *testing.T) {
	f := newAdvisorFixture()

	result, err := f.svc.Analyze(uuid.New(), decimal.NewFromInt(5000), domain.CategoryTransport)
	require.NoError(t, err)
	assert.Equal(t, noBudgetAnalysisScore, result.Score)
	assert.Equal(t, noBudgetAnalysisError, result.Error)
	assert.Equal(t, noBudgetAnalysisRecommendation, result.Recommendation)
	assert.True(t, result.Approved)
}

func TestAnalyzeValidation(t *testing.T) {
	f := newAdvisorFixture()

	_, err := f.svc.Analyze(uuid.New(), decimal.Zero, domain.CategoryAutre)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.svc.Analyze(uuid.New(), decimal.NewFromInt(100), domain.Category("voyages"))
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestChatIssuesProposal(t *testing.T) {
	f := newAdvisorFixture()
	userID := uuid.New()
	f.budgets.AddBudget(userID, domain.CategoryAlimentation, decimal.NewFromInt(50000), decimal.NewFromInt(40000))

	reply, err := f.svc.Chat(userID, "j'ai dépensé 5000 francs en nourriture")
	require.NoError(t, err)
	assert.Equal(t, domain.IntentExpensePast, reply.Intent)
	assert.True(t, reply.CanAddTransaction)
	require.NotNil(t, reply.SuggestedTransaction)
	assert.Equal(t, 6, reply.SuggestedTransaction.RecommendationScore)

	// A proposal is announced but nothing is recorded yet
	assert.Equal(t, []string{"proposal.proposed"}, f.events.EventTypes())
	assert.Empty(t, f.transactions.Transactions)
}

func TestConfirmProposalRecordsTransaction(t *testing.T) {
	f := newAdvisorFixture()
	userID := uuid.New()
	f.budgets.AddBudget(userID, domain.CategoryAlimentation, decimal.NewFromInt(50000), decimal.NewFromInt(40000))

	reply, err := f.svc.Chat(userID, "j'ai dépensé 5000 francs en nourriture")
	require.NoError(t, err)
	require.NotNil(t, reply.SuggestedTransaction)

	created, err := f.svc.ConfirmProposal(userID, *reply.SuggestedTransaction)
	require.NoError(t, err)
	assert.True(t, created.Amount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, domain.CategoryAlimentation, created.Category)
	require.NotNil(t, created.Score)
	assert.Equal(t, 6, *created.Score)

	budget, err := f.budgets.GetByCategory(userID, domain.CategoryAlimentation)
	require.NoError(t, err)
	assert.True(t, budget.CurrentSpent.Equal(decimal.NewFromInt(45000)))
}

func TestChatBalanceUsesStoredBudgets(t *testing.T) {
	f := newAdvisorFixture()
	userID := uuid.New()
	f.budgets.AddBudget(userID, domain.CategoryAlimentation, decimal.NewFromInt(50000), decimal.NewFromInt(10000))

	reply, err := f.svc.Chat(userID, "combien il me reste ?")
	require.NoError(t, err)
	assert.Equal(t, domain.IntentBalance, reply.Intent)
	assert.Contains(t, reply.Message, "40 000 FCFA")
}

func TestVoiceRecordsExpenseImmediately(t *testing.T) {
	f := newAdvisorFixture()
	userID := uuid.New()
	f.budgets.AddBudget(userID, domain.CategoryTransport, decimal.NewFromInt(20000), decimal.Zero)

	reply, err := f.svc.Voice(userID, "ajoute 2000 francs de taxi")
	require.NoError(t, err)
	assert.Equal(t, domain.IntentExpensePast, reply.Intent)
	assert.Contains(t, reply.Message, "enregistré")

	require.Len(t, f.transactions.Transactions, 1)
	budget, err := f.budgets.GetByCategory(userID, domain.CategoryTransport)
	require.NoError(t, err)
	assert.True(t, budget.CurrentSpent.Equal(decimal.NewFromInt(2000)))
}

func TestVoiceGoalsDoesNotRecord(t *testing.T) {
	f := newAdvisorFixture()
	userID := uuid.New()
	f.goals.AddGoal(userID, "Moto", decimal.NewFromInt(200000), decimal.NewFromInt(50000))

	reply, err := f.svc.Voice(userID, "où en sont mes objectifs ?")
	require.NoError(t, err)
	assert.Equal(t, domain.IntentGoals, reply.Intent)
	assert.Contains(t, reply.Message, "Moto")
	assert.Empty(t, f.transactions.Transactions)
}

func TestProjectionUsesCalendarDay(t *testing.T) {
	f := newAdvisorFixture()
	userID := uuid.New()
	f.budgets.AddBudget(userID, domain.CategoryAlimentation, decimal.NewFromInt(30000), decimal.NewFromInt(15000))

	now := time.Date(2026, time.September, 10, 12, 0, 0, 0, time.UTC)
	result, err := f.svc.Projection(userID, now)
	require.NoError(t, err)

	assert.Equal(t, 10, result.Projection.DaysElapsed)
	assert.Equal(t, 20, result.Projection.DaysRemaining)
	require.Len(t, result.Projection.Budgets, 1)
	assert.Equal(t, domain.BudgetStatusWillExceed, result.Projection.Budgets[0].Status)
	assert.Equal(t, domain.MonthStatusCritical, result.Projection.Status)
	assert.Contains(t, result.Advice, "Réduis tes dépenses")
}

func TestProjectionClampsDay31(t *testing.T) {
	f := newAdvisorFixture()
	userID := uuid.New()
	f.budgets.AddBudget(userID, domain.CategoryAlimentation, decimal.NewFromInt(30000), decimal.NewFromInt(10000))

	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	result, err := f.svc.Projection(userID, now)
	require.NoError(t, err)
	assert.Equal(t, 30, result.Projection.DaysElapsed)
	assert.Equal(t, 0, result.Projection.DaysRemaining)
}
