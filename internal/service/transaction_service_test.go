package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gertonargent/gta-backend/internal/domain"
	"github.com/gertonargent/gta-backend/internal/testutil"
)

func newTestTransactionService() (*TransactionService, *testutil.MockBudgetRepository, *testutil.MockEventPublisher) {
	budgets := testutil.NewMockBudgetRepository()
	events := testutil.NewMockEventPublisher()
	svc := NewTransactionService(testutil.NewMockTransactionRepository(), budgets, events)
	return svc, budgets, events
}

func TestCreateExpenseScoresAndMovesBudget(t *testing.T) {
	svc, budgets, events := newTestTransactionService()
	userID := uuid.New()
	budgets.AddBudget(userID, domain.CategoryAlimentation, decimal.NewFromInt(50000), decimal.NewFromInt(40000))

	created, err := svc.CreateTransaction(userID, CreateTransactionInput{
		Amount:   decimal.NewFromInt(5000),
		Category: domain.CategoryAlimentation,
		Type:     domain.TransactionTypeExpense,
	})
	require.NoError(t, err)

	// 80% budget usage costs three, the 10% transaction share costs one
	require.NotNil(t, created.Score)
	assert.Equal(t, 6, *created.Score)
	require.NotNil(t, created.Recommendation)
	assert.Contains(t, *created.Recommendation, "Prudence")

	budget, err := budgets.GetByCategory(userID, domain.CategoryAlimentation)
	require.NoError(t, err)
	assert.True(t, budget.CurrentSpent.Equal(decimal.NewFromInt(45000)))

	assert.Equal(t, []string{"budget.updated", "transaction.created"}, events.EventTypes())
}

func TestCreateExpenseWithoutBudget(t *testing.T) {
	svc, _, events := newTestTransactionService()
	userID := uuid.New()

	created, err := svc.CreateTransaction(userID, CreateTransactionInput{
		Amount:   decimal.NewFromInt(5000),
		Category: domain.CategoryLoisirs,
		Type:     domain.TransactionTypeExpense,
	})
	require.NoError(t, err)

	// No budget for the category: the expense is recorded unscored
	assert.Nil(t, created.Score)
	assert.Nil(t, created.Recommendation)
	assert.Equal(t, []string{"transaction.created"}, events.EventTypes())
}

func TestCreateIncomeDoesNotTouchBudgets(t *testing.T) {
	svc, budgets, _ := newTestTransactionService()
	userID := uuid.New()
	budgets.AddBudget(userID, domain.CategoryAutre, decimal.NewFromInt(10000), decimal.NewFromInt(2000))

	created, err := svc.CreateTransaction(userID, CreateTransactionInput{
		Amount:   decimal.NewFromInt(30000),
		Category: domain.CategoryAutre,
		Type:     domain.TransactionTypeIncome,
	})
	require.NoError(t, err)
	assert.Nil(t, created.Score)

	budget, err := budgets.GetByCategory(userID, domain.CategoryAutre)
	require.NoError(t, err)
	assert.True(t, budget.CurrentSpent.Equal(decimal.NewFromInt(2000)))
}

func TestCreateTransactionValidation(t *testing.T) {
	svc, _, _ := newTestTransactionService()
	userID := uuid.New()

	_, err := svc.CreateTransaction(userID, CreateTransactionInput{
		Amount:   decimal.Zero,
		Category: domain.CategoryAutre,
		Type:     domain.TransactionTypeExpense,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.CreateTransaction(userID, CreateTransactionInput{
		Amount:   decimal.NewFromInt(100),
		Category: domain.Category("voyages"),
		Type:     domain.TransactionTypeExpense,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	_, err = svc.CreateTransaction(userID, CreateTransactionInput{
		Amount:   decimal.NewFromInt(100),
		Category: domain.CategoryAutre,
		Type:     domain.TransactionType("transfer"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransactionType)
}

func TestDeleteExpenseRefundsBudget(t *testing.T) {
	svc, budgets, events := newTestTransactionService()
	userID := uuid.New()
	budgets.AddBudget(userID, domain.CategoryTransport, decimal.NewFromInt(20000), decimal.Zero)

	created, err := svc.CreateTransaction(userID, CreateTransactionInput{
		Amount:   decimal.NewFromInt(3000),
		Category: domain.CategoryTransport,
		Type:     domain.TransactionTypeExpense,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(userID, created.ID))

	budget, err := budgets.GetByCategory(userID, domain.CategoryTransport)
	require.NoError(t, err)
	assert.True(t, budget.CurrentSpent.IsZero())

	types := events.EventTypes()
	assert.Contains(t, types, "transaction.deleted")
}

func TestDeleteExpenseRefundFloorsAtZero(t *testing.T) {
	svc, budgets, _ := newTestTransactionService()
	userID := uuid.New()
	budgets.AddBudget(userID, domain.CategoryTransport, decimal.NewFromInt(20000), decimal.NewFromInt(1000))

	created, err := svc.CreateTransaction(userID, CreateTransactionInput{
		Amount:   decimal.NewFromInt(3000),
		Category: domain.CategoryTransport,
		Type:     domain.TransactionTypeExpense,
	})
	require.NoError(t, err)

	// Simulate an external reset between create and delete
	budget, err := budgets.GetByCategory(userID, domain.CategoryTransport)
	require.NoError(t, err)
	budget.CurrentSpent = decimal.NewFromInt(500)

	require.NoError(t, svc.DeleteTransaction(userID, created.ID))

	budget, err = budgets.GetByCategory(userID, domain.CategoryTransport)
	require.NoError(t, err)
	assert.True(t, budget.CurrentSpent.IsZero())
}

func TestDeleteTransactionScopedToUser(t *testing.T) {
	svc, budgets, _ := newTestTransactionService()
	owner := uuid.New()
	budgets.AddBudget(owner, domain.CategoryAutre, decimal.NewFromInt(10000), decimal.Zero)

	created, err := svc.CreateTransaction(owner, CreateTransactionInput{
		Amount:   decimal.NewFromInt(1000),
		Category: domain.CategoryAutre,
		Type:     domain.TransactionTypeExpense,
	})
	require.NoError(t, err)

	err = svc.DeleteTransaction(uuid.New(), created.ID)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestUpdateTransactionDescriptionOnly(t *testing.T) {
	svc, _, _ := newTestTransactionService()
	userID := uuid.New()

	created, err := svc.CreateTransaction(userID, CreateTransactionInput{
		Amount:   decimal.NewFromInt(1000),
		Category: domain.CategoryAutre,
		Type:     domain.TransactionTypeExpense,
	})
	require.NoError(t, err)

	desc := "taxi gare routière"
	updated, err := svc.UpdateTransaction(userID, created.ID, &desc)
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, desc, *updated.Description)
}
