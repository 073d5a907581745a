package advisor

import (
	"strings"

	"github.com/gertonargent/gta-backend/internal/domain"
)

// Assistant classifier keyword sets. Priority is fixed: expense (with a
// parsed amount) first, then balance, then advice, then the greeting
// fallback. The order is load-bearing: "combien" appears in both expense
// questions and balance questions, and the expense check must win when an
// amount is present.
var (
	expenseKeywords = []string{
		"acheter", "achète", "achete", "acheté",
		"dépenser", "depenser", "dépensé", "depense",
		"payer", "payé", "paye",
		"prendre", "pris",
		"commander", "commandé", "commande",
		"je veux", "je peux", "puis-je", "est-ce que je peux",
	}
	pastMarkers = []string{
		"j'ai dépensé", "j'ai depense",
		"j'ai payé", "j'ai paye",
		"j'ai acheté", "j'ai achete",
		"j'ai pris", "j'ai commandé", "j'ai commande",
		"je viens de",
	}
	balanceKeywords = []string{
		"combien", "reste", "restant", "disponible", "solde", "budget",
	}
	adviceKeywords = []string{
		"conseil", "aide", "recommand", "que faire", "comment faire", "astuce",
	}
)

func containsAny(query string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(query, kw) {
			return true
		}
	}
	return false
}

// Normalize lower-cases and trims query text before classification and
// extraction. Both classifiers expect normalized input.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// ClassifyAssistant maps a normalized query to an intent for the
// conversational pipeline. hasAmount reports whether ExtractAmount
// succeeded on the same text: expense intents require it, so "je veux
// acheter quelque chose" without a figure falls through to the later
// checks.
func ClassifyAssistant(query string, hasAmount bool) domain.Intent {
	if hasAmount && containsAny(query, expenseKeywords) {
		if containsAny(query, pastMarkers) {
			return domain.IntentExpensePast
		}
		return domain.IntentExpenseFuture
	}
	if containsAny(query, balanceKeywords) {
		return domain.IntentBalance
	}
	if containsAny(query, adviceKeywords) {
		return domain.IntentAdvice
	}
	return domain.IntentGreeting
}
