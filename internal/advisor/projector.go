package advisor

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gertonargent/gta-backend/internal/domain"
	"github.com/gertonargent/gta-backend/internal/util"
)

// The projection model treats every month as 30 days. Messages and the
// mobile client depend on this exact arithmetic, so it is not calendar
// accurate on purpose.
const ProjectionDaysInMonth = 30

var atRiskFactor = decimal.RequireFromString("0.9")

// ProjectMonth extrapolates each budget's spend rate over the remaining
// days of a fixed 30-day month. daysElapsed at or below zero yields a zero
// daily rate rather than a division by zero.
func ProjectMonth(daysElapsed int, budgets []domain.BudgetSnapshot) domain.MonthProjection {
	daysRemaining := ProjectionDaysInMonth - daysElapsed

	projection := domain.MonthProjection{
		DaysElapsed:        daysElapsed,
		DaysRemaining:      daysRemaining,
		Budgets:            make([]domain.BudgetProjection, 0, len(budgets)),
		TotalLimit:         decimal.Zero,
		TotalSpent:         decimal.Zero,
		TotalPredicted:     decimal.Zero,
		PredictedOverspend: decimal.Zero,
		Status:             domain.MonthStatusHealthy,
	}

	for _, b := range budgets {
		p := projectBudget(b, daysElapsed, daysRemaining)
		projection.Budgets = append(projection.Budgets, p)
		projection.TotalLimit = projection.TotalLimit.Add(p.MonthlyLimit)
		projection.TotalSpent = projection.TotalSpent.Add(p.CurrentSpent)
		projection.TotalPredicted = projection.TotalPredicted.Add(p.PredictedTotal)
		projection.PredictedOverspend = projection.PredictedOverspend.Add(p.PredictedOverspend)
	}

	if projection.PredictedOverspend.GreaterThan(decimal.Zero) {
		projection.Status = domain.MonthStatusCritical
	}
	return projection
}

func projectBudget(b domain.BudgetSnapshot, daysElapsed, daysRemaining int) domain.BudgetProjection {
	dailyRate := decimal.Zero
	if daysElapsed > 0 {
		dailyRate = b.CurrentSpent.Div(decimal.NewFromInt(int64(daysElapsed)))
	}

	predictedTotal := b.CurrentSpent.Add(dailyRate.Mul(decimal.NewFromInt(int64(daysRemaining))))
	predictedOverspend := predictedTotal.Sub(b.MonthlyLimit)
	if predictedOverspend.LessThan(decimal.Zero) {
		predictedOverspend = decimal.Zero
	}

	status := domain.BudgetStatusOnTrack
	switch {
	case predictedTotal.GreaterThan(b.MonthlyLimit):
		status = domain.BudgetStatusWillExceed
	case predictedTotal.GreaterThan(atRiskFactor.Mul(b.MonthlyLimit)):
		status = domain.BudgetStatusAtRisk
	}

	return domain.BudgetProjection{
		Category:           b.Category,
		MonthlyLimit:       b.MonthlyLimit,
		CurrentSpent:       b.CurrentSpent,
		DailyRate:          dailyRate.Round(2),
		PredictedTotal:     predictedTotal.Round(2),
		PredictedOverspend: predictedOverspend.Round(2),
		Status:             status,
	}
}

// MonthlyAdvice turns a projection into the message shown on the
// dashboard. Overspend trajectories get a daily reduction target, healthy
// ones a tonal message by usage band with a daily allowance in the worst
// band.
func MonthlyAdvice(p domain.MonthProjection) string {
	if p.PredictedOverspend.GreaterThan(decimal.Zero) {
		reduction := p.PredictedOverspend
		if p.DaysRemaining > 0 {
			reduction = p.PredictedOverspend.Div(decimal.NewFromInt(int64(p.DaysRemaining)))
		}
		return fmt.Sprintf(
			"⛔ À ce rythme tu dépasseras ton budget de %s. Réduis tes dépenses de %s par jour pour finir le mois dans le vert.",
			util.FormatFCFA(p.PredictedOverspend), util.FormatFCFA(reduction))
	}

	usage := hundred
	if p.TotalLimit.GreaterThan(decimal.Zero) {
		usage = p.TotalSpent.Div(p.TotalLimit).Mul(hundred)
	}

	switch {
	case usage.LessThan(decimal.NewFromInt(50)):
		return "✅ Excellente gestion ! Tu es bien en dessous de tes limites, continue comme ça."
	case usage.LessThan(decimal.NewFromInt(75)):
		return "👍 Bonne trajectoire. Garde un œil sur tes dépenses pour rester dans ton budget."
	default:
		allowance := decimal.Zero
		remaining := p.TotalLimit.Sub(p.TotalSpent)
		if p.DaysRemaining > 0 {
			allowance = remaining.Div(decimal.NewFromInt(int64(p.DaysRemaining)))
		}
		return fmt.Sprintf(
			"⚠️ Ton budget est bien entamé. Il te reste %s, soit environ %s par jour jusqu'à la fin du mois.",
			util.FormatFCFA(remaining), util.FormatFCFA(allowance))
	}
}
