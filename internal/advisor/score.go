// Package advisor implements the rule-based financial advisory engine:
// transaction risk scoring, end-of-month budget projection, and the
// French free-text pipeline (entity extraction, intent classification,
// response composition). Every function here is pure: the engine never
// touches storage and keeps no state between calls.
package advisor

import (
	"github.com/shopspring/decimal"

	"github.com/gertonargent/gta-backend/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)

	// Budget bands are strict: spending exactly 90% of the limit is not
	// over the line. Transaction bands are inclusive: a transaction worth
	// exactly 10% of the limit already pays the penalty.
	budgetPenaltyBands = []penaltyBand{
		{threshold: decimal.NewFromInt(90), penalty: 5},
		{threshold: decimal.NewFromInt(75), penalty: 3},
		{threshold: decimal.NewFromInt(50), penalty: 1},
	}
	transactionPenaltyBands = []penaltyBand{
		{threshold: decimal.NewFromInt(20), penalty: 2, inclusive: true},
		{threshold: decimal.NewFromInt(10), penalty: 1, inclusive: true},
	}
)

// penaltyBand deducts penalty when the percentage exceeds threshold.
// Bands are evaluated highest threshold first and only the first match
// applies.
type penaltyBand struct {
	threshold decimal.Decimal
	penalty   int
	inclusive bool
}

func (b penaltyBand) matches(pct decimal.Decimal) bool {
	if b.inclusive {
		return pct.GreaterThanOrEqual(b.threshold)
	}
	return pct.GreaterThan(b.threshold)
}

func firstMatchingPenalty(bands []penaltyBand, pct decimal.Decimal) int {
	for _, band := range bands {
		if band.matches(pct) {
			return band.penalty
		}
	}
	return 0
}

const (
	recommendationBlocking   = "⛔ Attention ! Cette dépense risque de compromettre vos objectifs."
	recommendationCaution    = "⚠️ Prudence recommandée. Votre budget est presque épuisé."
	recommendationReasonable = "✅ Cette dépense est raisonnable par rapport à votre budget."
)

// Score rates a candidate expense against a budget snapshot on a 1 to 10
// scale. A zero or negative monthlyLimit pins both percentages at 100
// instead of dividing by zero. If budgetRemaining cannot cover the amount
// the score is forced to 1 regardless of the band penalties.
func Score(amount, budgetRemaining, monthlySpent, monthlyLimit decimal.Decimal) domain.ScoreResult {
	budgetPct := hundred
	transactionPct := hundred
	if monthlyLimit.GreaterThan(decimal.Zero) {
		budgetPct = monthlySpent.Div(monthlyLimit).Mul(hundred)
		transactionPct = amount.Div(monthlyLimit).Mul(hundred)
	}

	score := 10
	score -= firstMatchingPenalty(budgetPenaltyBands, budgetPct)
	score -= firstMatchingPenalty(transactionPenaltyBands, transactionPct)

	if budgetRemaining.LessThan(amount) {
		score = 1
	}
	score = clampScore(score)

	return domain.ScoreResult{
		Score:                 score,
		Color:                 TierFor(score),
		Recommendation:        recommendationFor(score),
		BudgetPercentage:      budgetPct.Round(2),
		TransactionPercentage: transactionPct.Round(2),
		RemainingBudget:       budgetRemaining.Round(2),
	}
}

func clampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

// TierFor maps a score to its traffic-light tier: 1-3 red, 4-6 orange,
// 7-10 green.
func TierFor(score int) domain.Tier {
	switch {
	case score <= 3:
		return domain.TierRed
	case score <= 6:
		return domain.TierOrange
	default:
		return domain.TierGreen
	}
}

func recommendationFor(score int) string {
	switch TierFor(score) {
	case domain.TierRed:
		return recommendationBlocking
	case domain.TierOrange:
		return recommendationCaution
	default:
		return recommendationReasonable
	}
}
