package advisor

import (
	"github.com/gertonargent/gta-backend/internal/domain"
)

// The voice endpoint runs a simpler classifier than the assistant: each
// query type carries its own keyword set and is checked in sequence, with
// no amount requirement and no shared priority table. The two classifiers
// deliberately stay separate; their precedence rules differ and the
// mobile client depends on each one's behavior.
var voiceChecks = []struct {
	intent   domain.Intent
	keywords []string
}{
	{domain.IntentBalance, []string{"solde", "combien il me reste", "combien j'ai", "mon argent"}},
	{domain.IntentExpensePast, []string{"ajoute", "ajouter", "enregistre", "enregistrer", "dépense", "depense", "acheté", "achete", "payé", "paye"}},
	{domain.IntentGoals, []string{"objectif", "épargne", "epargne", "économies", "economies"}},
	{domain.IntentBudgetQuery, []string{"budget", "limite", "plafond"}},
	{domain.IntentAdvice, []string{"conseil", "aide", "recommandation", "astuce"}},
}

// ClassifyVoice maps a normalized voice transcript to an intent. The
// first matching keyword set wins; anything unrecognized gets the
// greeting.
func ClassifyVoice(query string) domain.Intent {
	for _, check := range voiceChecks {
		if containsAny(query, check.keywords) {
			return check.intent
		}
	}
	return domain.IntentGreeting
}
