package advisor

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gertonargent/gta-backend/internal/domain"
	"github.com/gertonargent/gta-backend/internal/util"
)

// Reply is the structured answer for a conversational or voice query.
// SuggestedTransaction is only set when CanAddTransaction is true.
type Reply struct {
	Message              string                      `json:"message"`
	Intent               domain.Intent               `json:"intent"`
	CanAddTransaction    bool                        `json:"canAddTransaction"`
	SuggestedTransaction *domain.TransactionProposal `json:"suggestedTransaction,omitempty"`
}

var coarseComfortRatio = decimal.RequireFromString("0.3")

// Process runs the full conversational pipeline on a raw query: entity
// extraction, intent classification, then composition of the reply.
// Empty budget lists degrade to "no data" messages, never errors.
func Process(query string, budgets []domain.BudgetSnapshot, goals []domain.GoalSnapshot, totalBudget, totalSpent decimal.Decimal) Reply {
	q := Normalize(query)
	amount, hasAmount := ExtractAmount(q)
	intent := ClassifyAssistant(q, hasAmount)

	switch intent {
	case domain.IntentExpensePast, domain.IntentExpenseFuture:
		return composeExpense(query, intent, amount, budgets, totalBudget.Sub(totalSpent))
	case domain.IntentBalance:
		return composeBalance(budgets, totalBudget, totalSpent)
	case domain.IntentAdvice:
		return composeAdvice(budgets, totalBudget, totalSpent)
	default:
		return composeGreeting(budgets, totalBudget.Sub(totalSpent))
	}
}

func composeExpense(query string, intent domain.Intent, amount decimal.Decimal, budgets []domain.BudgetSnapshot, totalRemaining decimal.Decimal) Reply {
	q := Normalize(query)
	category, found := ExtractCategory(q)
	if !found {
		category = domain.CategoryAutre
	}

	score := scoreForCategory(amount, category, budgets, totalRemaining)
	past := intent == domain.IntentExpensePast
	rendered := util.FormatFCFA(amount)

	// Future spending that exceeds everything the user has left is the
	// one case the assistant refuses outright.
	if !past && amount.GreaterThan(totalRemaining) {
		return Reply{
			Message: fmt.Sprintf("⛔ Je te le déconseille fortement : %s dépasse tout ce qu'il te reste (%s). Cette dépense n'est pas possible sans casser ton budget.",
				rendered, util.FormatFCFA(totalRemaining)),
			Intent:            intent,
			CanAddTransaction: false,
		}
	}

	message := expenseMessage(TierFor(score), past, rendered, category)
	return Reply{
		Message:           message,
		Intent:            intent,
		CanAddTransaction: true,
		SuggestedTransaction: &domain.TransactionProposal{
			Amount:              amount,
			Category:            category,
			Description:         strings.TrimSpace(query),
			RecommendationScore: score,
			Type:                domain.TransactionTypeExpense,
		},
	}
}

// scoreForCategory scores against the matching budget when one exists,
// otherwise falls back to a coarse three-tier heuristic on the total
// remaining budget.
func scoreForCategory(amount decimal.Decimal, category domain.Category, budgets []domain.BudgetSnapshot, totalRemaining decimal.Decimal) int {
	for _, b := range budgets {
		if b.Category == category {
			return Score(amount, b.Remaining(), b.CurrentSpent, b.MonthlyLimit).Score
		}
	}
	switch {
	case amount.LessThanOrEqual(coarseComfortRatio.Mul(totalRemaining)):
		return 7
	case amount.LessThanOrEqual(totalRemaining):
		return 5
	default:
		return 2
	}
}

func expenseMessage(tier domain.Tier, past bool, rendered string, category domain.Category) string {
	if past {
		switch tier {
		case domain.TierGreen:
			return fmt.Sprintf("✅ C'est noté ! %s en %s, ton budget le supporte sans problème.", rendered, category)
		case domain.TierOrange:
			return fmt.Sprintf("⚠️ J'ai noté %s en %s. Fais attention, ce budget commence à se resserrer.", rendered, category)
		default:
			return fmt.Sprintf("⛔ J'enregistre %s en %s, mais ce budget est en zone rouge. Lève le pied !", rendered, category)
		}
	}
	switch tier {
	case domain.TierGreen:
		return fmt.Sprintf("✅ Vas-y ! %s en %s rentre tranquillement dans ton budget.", rendered, category)
	case domain.TierOrange:
		return fmt.Sprintf("⚠️ Tu peux te le permettre, mais %s va bien entamer ton budget %s. À toi de voir.", rendered, category)
	default:
		return fmt.Sprintf("⛔ Je te le déconseille : %s mettrait ton budget %s dans le rouge.", rendered, category)
	}
}

func composeBalance(budgets []domain.BudgetSnapshot, totalBudget, totalSpent decimal.Decimal) Reply {
	if len(budgets) == 0 || totalBudget.LessThanOrEqual(decimal.Zero) {
		return Reply{
			Message: "Tu n'as pas encore de budget défini. Crée tes budgets et je pourrai suivre tes dépenses avec toi !",
			Intent:  domain.IntentBalance,
		}
	}

	remaining := totalBudget.Sub(totalSpent)
	usage := totalSpent.Div(totalBudget).Mul(hundred)
	pct := usage.Round(0)

	var message string
	switch {
	case usage.LessThan(decimal.NewFromInt(50)):
		message = fmt.Sprintf("✅ Tout va bien ! Il te reste %s sur %s, tu n'as utilisé que %s%% de ton budget.",
			util.FormatFCFA(remaining), util.FormatFCFA(totalBudget), pct)
	case usage.LessThan(decimal.NewFromInt(75)):
		message = fmt.Sprintf("👍 Il te reste %s. Tu as dépensé %s, soit %s%% de ton budget. Tu tiens le bon rythme.",
			util.FormatFCFA(remaining), util.FormatFCFA(totalSpent), pct)
	default:
		message = fmt.Sprintf("⚠️ Attention, il ne te reste que %s. Tu as déjà utilisé %s%% de ton budget ce mois-ci.",
			util.FormatFCFA(remaining), pct)
	}
	return Reply{Message: message, Intent: domain.IntentBalance}
}

// adviceDailyHorizon is the fixed remainder the advice message divides
// over. It is deliberately not the actual days left in the month; the
// rendered figures are part of the product behavior.
const adviceDailyHorizon = 10

func composeAdvice(budgets []domain.BudgetSnapshot, totalBudget, totalSpent decimal.Decimal) Reply {
	if len(budgets) == 0 {
		return Reply{
			Message: "Je n'ai pas encore de données pour te conseiller. Commence par créer tes budgets !",
			Intent:  domain.IntentAdvice,
		}
	}

	worst, worstUsage := worstBudget(budgets)
	if worstUsage.GreaterThan(decimal.NewFromInt(80)) {
		return Reply{
			Message: fmt.Sprintf("⚠️ Ton budget %s est utilisé à %s%%. C'est ta priorité : ralentis sur cette catégorie jusqu'à la fin du mois.",
				worst.Category, worstUsage.Round(0)),
			Intent: domain.IntentAdvice,
		}
	}

	usage := hundred
	if totalBudget.GreaterThan(decimal.Zero) {
		usage = totalSpent.Div(totalBudget).Mul(hundred)
	}

	var message string
	switch {
	case usage.LessThan(decimal.NewFromInt(50)):
		message = "✅ Tes finances sont saines ce mois-ci. C'est le bon moment pour mettre un peu de côté sur tes objectifs."
	case usage.LessThan(decimal.NewFromInt(75)):
		message = "👍 Tu gères bien. Continue de noter tes dépenses et évite les gros achats imprévus d'ici la fin du mois."
	default:
		allowance := totalBudget.Sub(totalSpent).Div(decimal.NewFromInt(adviceDailyHorizon))
		message = fmt.Sprintf("⚠️ Ton budget est bien entamé. Limite-toi à environ %s par jour sur les %d prochains jours.",
			util.FormatFCFA(allowance), adviceDailyHorizon)
	}
	return Reply{Message: message, Intent: domain.IntentAdvice}
}

// worstBudget returns the budget with the highest usage percentage. A
// zero limit counts as 100% usage.
func worstBudget(budgets []domain.BudgetSnapshot) (domain.BudgetSnapshot, decimal.Decimal) {
	worst := budgets[0]
	worstUsage := usagePercent(budgets[0])
	for _, b := range budgets[1:] {
		if u := usagePercent(b); u.GreaterThan(worstUsage) {
			worst = b
			worstUsage = u
		}
	}
	return worst, worstUsage
}

func usagePercent(b domain.BudgetSnapshot) decimal.Decimal {
	if b.MonthlyLimit.LessThanOrEqual(decimal.Zero) {
		return hundred
	}
	return b.CurrentSpent.Div(b.MonthlyLimit).Mul(hundred)
}

func composeGreeting(budgets []domain.BudgetSnapshot, totalRemaining decimal.Decimal) Reply {
	if len(budgets) == 0 {
		return Reply{
			Message: "Bonjour ! Je suis Sika, ton assistant financier. Commence par créer tes budgets et je t'aiderai à suivre tes dépenses.",
			Intent:  domain.IntentGreeting,
		}
	}
	return Reply{
		Message: fmt.Sprintf("Bonjour ! Je suis Sika, ton assistant financier. Il te reste %s ce mois-ci. Comment puis-je t'aider ?",
			util.FormatFCFA(totalRemaining)),
		Intent: domain.IntentGreeting,
	}
}

// ProcessVoice answers a voice transcript with the simpler voice
// classifier. Recording intents reuse the extraction and scoring
// primitives of the assistant pipeline.
func ProcessVoice(query string, budgets []domain.BudgetSnapshot, goals []domain.GoalSnapshot, totalBudget, totalSpent decimal.Decimal) Reply {
	q := Normalize(query)

	switch ClassifyVoice(q) {
	case domain.IntentBalance:
		return composeBalance(budgets, totalBudget, totalSpent)

	case domain.IntentExpensePast:
		amount, ok := ExtractAmount(q)
		if !ok {
			return Reply{
				Message: "Je n'ai pas compris le montant. Répète en précisant la somme, par exemple deux mille francs.",
				Intent:  domain.IntentExpensePast,
			}
		}
		category, found := ExtractCategory(q)
		if !found {
			category = domain.CategoryAutre
		}
		score := scoreForCategory(amount, category, budgets, totalBudget.Sub(totalSpent))
		return Reply{
			Message:           fmt.Sprintf("Très bien, j'ai enregistré %s en %s.", util.FormatFCFA(amount), category),
			Intent:            domain.IntentExpensePast,
			CanAddTransaction: true,
			SuggestedTransaction: &domain.TransactionProposal{
				Amount:              amount,
				Category:            category,
				Description:         strings.TrimSpace(query),
				RecommendationScore: score,
				Type:                domain.TransactionTypeExpense,
			},
		}

	case domain.IntentGoals:
		return composeGoals(goals)

	case domain.IntentBudgetQuery:
		return composeBudgetOverview(budgets)

	case domain.IntentAdvice:
		return composeAdvice(budgets, totalBudget, totalSpent)

	default:
		return Reply{
			Message: "Bonjour ! Je suis Sika, ton assistant financier. Tu peux me demander ton solde, tes budgets ou enregistrer une dépense.",
			Intent:  domain.IntentGreeting,
		}
	}
}

func composeGoals(goals []domain.GoalSnapshot) Reply {
	if len(goals) == 0 {
		return Reply{
			Message: "Tu n'as pas encore d'objectif d'épargne. Crée ton premier objectif et on avancera ensemble !",
			Intent:  domain.IntentGoals,
		}
	}

	parts := make([]string, 0, len(goals))
	for _, g := range goals {
		if g.IsCompleted {
			parts = append(parts, fmt.Sprintf("%s est atteint, bravo !", g.Name))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s est à %s%% (%s sur %s)",
			g.Name, g.Progress().Round(0), util.FormatFCFA(g.CurrentAmount), util.FormatFCFA(g.TargetAmount)))
	}
	return Reply{
		Message: "Tes objectifs : " + strings.Join(parts, " ; ") + ".",
		Intent:  domain.IntentGoals,
	}
}

func composeBudgetOverview(budgets []domain.BudgetSnapshot) Reply {
	if len(budgets) == 0 {
		return Reply{
			Message: "Tu n'as pas encore de budget défini. Crée tes budgets et je pourrai suivre tes dépenses avec toi !",
			Intent:  domain.IntentBudgetQuery,
		}
	}

	parts := make([]string, 0, len(budgets))
	for _, b := range budgets {
		parts = append(parts, fmt.Sprintf("%s : il reste %s sur %s",
			b.Category, util.FormatFCFA(b.Remaining()), util.FormatFCFA(b.MonthlyLimit)))
	}
	return Reply{
		Message: strings.Join(parts, " ; ") + ".",
		Intent:  domain.IntentBudgetQuery,
	}
}
