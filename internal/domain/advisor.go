package domain

import (
	"github.com/shopspring/decimal"
)

// Tier is the traffic-light rating derived from a score: red blocks,
// orange cautions, green approves.
type Tier string

const (
	TierRed    Tier = "red"
	TierOrange Tier = "orange"
	TierGreen  Tier = "green"
)

// ScoreResult is the advisor's rating of a candidate expense. All fields
// are derived and recomputed on every call.
type ScoreResult struct {
	Score                 int             `json:"score"`
	Color                 Tier            `json:"color"`
	Recommendation        string          `json:"recommendation"`
	BudgetPercentage      decimal.Decimal `json:"budgetPercentage"`
	TransactionPercentage decimal.Decimal `json:"transactionPercentage"`
	RemainingBudget       decimal.Decimal `json:"remainingBudget"`
}

// Intent is the classified purpose of a free-text financial query.
type Intent string

const (
	IntentGreeting      Intent = "greeting"
	IntentBalance       Intent = "balance"
	IntentExpensePast   Intent = "expense_past"
	IntentExpenseFuture Intent = "expense_future"
	IntentAdvice        Intent = "advice"
	IntentGoals         Intent = "goals"
	IntentBudgetQuery   Intent = "budget_query"
)

// TransactionProposal is an advisor-produced candidate transaction. It is
// never persisted by the engine: callers either commit it (creating a real
// transaction and bumping the matching budget) or discard it.
type TransactionProposal struct {
	Amount              decimal.Decimal `json:"amount"`
	Category            Category        `json:"category"`
	Description         string          `json:"description"`
	RecommendationScore int             `json:"recommendationScore"`
	Type                TransactionType `json:"type"`
}

// BudgetStatus classifies a projected end-of-month outcome per budget.
type BudgetStatus string

const (
	BudgetStatusOnTrack    BudgetStatus = "on_track"
	BudgetStatusAtRisk     BudgetStatus = "at_risk"
	BudgetStatusWillExceed BudgetStatus = "will_exceed"
)

// BudgetProjection extrapolates one budget's spend rate to month end.
type BudgetProjection struct {
	Category           Category        `json:"category"`
	MonthlyLimit       decimal.Decimal `json:"monthlyLimit"`
	CurrentSpent       decimal.Decimal `json:"currentSpent"`
	DailyRate          decimal.Decimal `json:"dailyRate"`
	PredictedTotal     decimal.Decimal `json:"predictedTotal"`
	PredictedOverspend decimal.Decimal `json:"predictedOverspend"`
	Status             BudgetStatus    `json:"status"`
}

// MonthStatus is the aggregate projection outcome.
type MonthStatus string

const (
	MonthStatusHealthy  MonthStatus = "healthy"
	MonthStatusCritical MonthStatus = "critical"
)

// MonthProjection aggregates all budget projections for the month.
type MonthProjection struct {
	DaysElapsed        int                `json:"daysElapsed"`
	DaysRemaining      int                `json:"daysRemaining"`
	Budgets            []BudgetProjection `json:"budgets"`
	TotalLimit         decimal.Decimal    `json:"totalLimit"`
	TotalSpent         decimal.Decimal    `json:"totalSpent"`
	TotalPredicted     decimal.Decimal    `json:"totalPredicted"`
	PredictedOverspend decimal.Decimal    `json:"predictedOverspend"`
	Status             MonthStatus        `json:"status"`
}
