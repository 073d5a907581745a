package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gertonargent/gta-backend/internal/domain"
)

func foodBudget(limit, spent string) []domain.BudgetSnapshot {
	return []domain.BudgetSnapshot{
		{Category: domain.CategoryAlimentation, MonthlyLimit: d(limit), CurrentSpent: d(spent)},
	}
}

func TestProcessPastExpenseEndToEnd(t *testing.T) {
	budgets := foodBudget("50000", "40000")

	reply := Process("j'ai dépensé 5000 sur la nourriture", budgets, nil, d("50000"), d("40000"))

	assert.Equal(t, domain.IntentExpensePast, reply.Intent)
	assert.True(t, reply.CanAddTransaction)
	require.NotNil(t, reply.SuggestedTransaction)

	proposal := reply.SuggestedTransaction
	assert.True(t, proposal.Amount.Equal(d("5000")), "amount %s", proposal.Amount)
	assert.Equal(t, domain.CategoryAlimentation, proposal.Category)
	// 80% budget usage costs three, the 10% transaction share costs one.
	assert.Equal(t, 6, proposal.RecommendationScore)
	assert.Equal(t, domain.TransactionTypeExpense, proposal.Type)
	assert.Contains(t, reply.Message, "⚠️")
}

func TestProcessFutureExpenseHardBlock(t *testing.T) {
	budgets := foodBudget("10000", "9000")

	// Total remaining is 1000, the ask is 5000.
	reply := Process("je veux acheter un gadget à 5000", budgets, nil, d("10000"), d("9000"))

	assert.Equal(t, domain.IntentExpenseFuture, reply.Intent)
	assert.False(t, reply.CanAddTransaction)
	assert.Nil(t, reply.SuggestedTransaction)
	assert.Contains(t, reply.Message, "⛔")
}

func TestProcessPastExpenseAlwaysRecordable(t *testing.T) {
	// Past spending is a fact: even over budget it stays recordable.
	budgets := foodBudget("10000", "9500")

	reply := Process("j'ai dépensé 5000 au restaurant", budgets, nil, d("10000"), d("9500"))

	assert.Equal(t, domain.IntentExpensePast, reply.Intent)
	assert.True(t, reply.CanAddTransaction)
	require.NotNil(t, reply.SuggestedTransaction)
	assert.Equal(t, 1, reply.SuggestedTransaction.RecommendationScore)
}

func TestProcessExpenseWithoutBudgetUsesCoarseHeuristic(t *testing.T) {
	// No budget row for transport: the coarse remaining-ratio heuristic
	// applies instead of the banded score.
	budgets := foodBudget("50000", "10000")

	tests := []struct {
		name      string
		query     string
		wantScore int
	}{
		{"well within remaining", "je veux payer 5000 de taxi", 7},
		{"within remaining", "je veux payer 30000 de taxi", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := Process(tt.query, budgets, nil, d("50000"), d("10000"))
			require.NotNil(t, reply.SuggestedTransaction)
			assert.Equal(t, domain.CategoryTransport, reply.SuggestedTransaction.Category)
			assert.Equal(t, tt.wantScore, reply.SuggestedTransaction.RecommendationScore)
		})
	}
}

func TestProcessExpenseUnknownCategoryDefaultsToAutre(t *testing.T) {
	budgets := foodBudget("50000", "10000")

	reply := Process("j'ai dépensé 2000 pour un truc", budgets, nil, d("50000"), d("10000"))

	require.NotNil(t, reply.SuggestedTransaction)
	assert.Equal(t, domain.CategoryAutre, reply.SuggestedTransaction.Category)
}

func TestProcessBalanceMessages(t *testing.T) {
	tests := []struct {
		name     string
		spent    string
		fragment string
	}{
		{"low usage", "10000", "✅"},
		{"mid usage", "30000", "👍"},
		{"high usage", "45000", "⚠️"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budgets := foodBudget("50000", tt.spent)
			reply := Process("combien il me reste ?", budgets, nil, d("50000"), d(tt.spent))
			assert.Equal(t, domain.IntentBalance, reply.Intent)
			assert.False(t, reply.CanAddTransaction)
			assert.Contains(t, reply.Message, tt.fragment)
		})
	}
}

func TestProcessBalanceWithoutBudgets(t *testing.T) {
	reply := Process("quel est mon solde ?", nil, nil, d("0"), d("0"))
	assert.Equal(t, domain.IntentBalance, reply.Intent)
	assert.Contains(t, reply.Message, "pas encore de budget")
}

func TestProcessAdviceFlagsWorstCategory(t *testing.T) {
	budgets := []domain.BudgetSnapshot{
		{Category: domain.CategoryAlimentation, MonthlyLimit: d("50000"), CurrentSpent: d("20000")},
		{Category: domain.CategoryLoisirs, MonthlyLimit: d("10000"), CurrentSpent: d("9000")},
	}

	reply := Process("donne-moi un conseil", budgets, nil, d("60000"), d("29000"))

	assert.Equal(t, domain.IntentAdvice, reply.Intent)
	assert.Contains(t, reply.Message, "loisirs")
	assert.Contains(t, reply.Message, "90%")
}

func TestProcessAdviceGeneralBands(t *testing.T) {
	// No single budget above 80%: the general tonal bands apply.
	budgets := foodBudget("50000", "20000")
	reply := Process("un conseil ?", budgets, nil, d("50000"), d("20000"))
	assert.Contains(t, reply.Message, "✅")

	budgets = foodBudget("50000", "40000")
	reply = Process("un conseil ?", budgets, nil, d("50000"), d("40000"))
	// Worst band divides what is left over a fixed ten-day horizon:
	// 10000 / 10 = 1000 per day.
	assert.Contains(t, reply.Message, "1 000 FCFA")
}

func TestProcessGreetingFallback(t *testing.T) {
	budgets := foodBudget("50000", "20000")

	reply := Process("bonjour !", budgets, nil, d("50000"), d("20000"))

	assert.Equal(t, domain.IntentGreeting, reply.Intent)
	assert.Contains(t, reply.Message, "30 000 FCFA")
}

func TestProcessVoiceRecordsExpense(t *testing.T) {
	budgets := foodBudget("50000", "10000")

	reply := ProcessVoice("sika ajoute une dépense de 2000 francs pour le repas", budgets, nil, d("50000"), d("10000"))

	assert.Equal(t, domain.IntentExpensePast, reply.Intent)
	assert.True(t, reply.CanAddTransaction)
	require.NotNil(t, reply.SuggestedTransaction)
	assert.True(t, reply.SuggestedTransaction.Amount.Equal(d("2000")))
	assert.Equal(t, domain.CategoryAlimentation, reply.SuggestedTransaction.Category)
	assert.Contains(t, reply.Message, "2 000 FCFA")
}

func TestProcessVoiceMissingAmount(t *testing.T) {
	reply := ProcessVoice("ajoute une dépense", foodBudget("50000", "10000"), nil, d("50000"), d("10000"))
	assert.False(t, reply.CanAddTransaction)
	assert.Nil(t, reply.SuggestedTransaction)
	assert.Contains(t, reply.Message, "montant")
}

func TestProcessVoiceGoals(t *testing.T) {
	goals := []domain.GoalSnapshot{
		{Name: "Moto", TargetAmount: d("200000"), CurrentAmount: d("50000")},
		{Name: "Urgences", TargetAmount: d("100000"), CurrentAmount: d("100000"), IsCompleted: true},
	}

	reply := ProcessVoice("où en sont mes objectifs ?", nil, goals, d("0"), d("0"))

	assert.Equal(t, domain.IntentGoals, reply.Intent)
	assert.Contains(t, reply.Message, "Moto est à 25%")
	assert.Contains(t, reply.Message, "bravo")
}

func TestProcessVoiceBudgetOverview(t *testing.T) {
	budgets := []domain.BudgetSnapshot{
		{Category: domain.CategoryAlimentation, MonthlyLimit: d("50000"), CurrentSpent: d("20000")},
		{Category: domain.CategoryTransport, MonthlyLimit: d("20000"), CurrentSpent: d("5000")},
	}

	reply := ProcessVoice("montre-moi mon budget", budgets, nil, d("70000"), d("25000"))

	assert.Equal(t, domain.IntentBudgetQuery, reply.Intent)
	assert.Contains(t, reply.Message, "alimentation : il reste 30 000 FCFA sur 50 000 FCFA")
	assert.Contains(t, reply.Message, "transport : il reste 15 000 FCFA sur 20 000 FCFA")
}

func TestProcessVoiceFallbackGreeting(t *testing.T) {
	reply := ProcessVoice("bonjour", nil, nil, d("0"), d("0"))
	assert.Equal(t, domain.IntentGreeting, reply.Intent)
	assert.Contains(t, reply.Message, "Sika")
}
