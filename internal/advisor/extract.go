package advisor

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gertonargent/gta-backend/internal/domain"
)

// Amount patterns are tried in declaration order and the first pattern
// with a parseable match wins, even if a later pattern would match more
// text. Digit runs may be grouped with spaces ("5 000") and the decimal
// separator may be a comma or a dot.
var amountPatterns = []amountPattern{
	// Local currency markers.
	{re: regexp.MustCompile(`(\d+(?:[ \x{00a0}]\d{3})*(?:[.,]\d+)?)\s*(?:francs?|fcfa|cfa|f)\b`), multiplier: 1},
	// Shorthand thousands: "5k", "5 mille".
	{re: regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:k\b|mille\b|thousand\b)`), multiplier: 1000},
	// Euro markers.
	{re: regexp.MustCompile(`(\d+(?:[ \x{00a0}]\d{3})*(?:[.,]\d+)?)\s*(?:euros?|€)`), multiplier: 1},
	// Bare digit run, catch-all.
	{re: regexp.MustCompile(`(\d+(?:[ \x{00a0}]\d{3})*(?:[.,]\d+)?)`), multiplier: 1},
}

type amountPattern struct {
	re         *regexp.Regexp
	multiplier int64
}

var amountNormalizer = strings.NewReplacer(" ", "", " ", "", ",", ".")

// ExtractAmount pulls a monetary amount out of lower-cased query text.
// The boolean is false when no pattern yields a parseable number.
func ExtractAmount(query string) (decimal.Decimal, bool) {
	for _, p := range amountPatterns {
		m := p.re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		raw := amountNormalizer.Replace(m[1])
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		if p.multiplier != 1 {
			amount = amount.Mul(decimal.NewFromInt(p.multiplier))
		}
		return amount, true
	}
	return decimal.Zero, false
}

// categoryKeywords maps each category to its French synonyms. Declaration
// order is the tie-break: when a query mentions keywords from several
// categories, the first category in this table wins.
var categoryKeywords = []struct {
	category domain.Category
	keywords []string
}{
	{domain.CategoryAlimentation, []string{"nourriture", "manger", "repas", "restaurant", "bouffe", "courses", "marché", "marche", "riz", "food"}},
	{domain.CategoryTransport, []string{"transport", "taxi", "bus", "essence", "carburant", "moto", "uber", "trajet"}},
	{domain.CategoryLogement, []string{"loyer", "logement", "maison", "appartement", "électricité", "electricite", "facture"}},
	{domain.CategorySante, []string{"santé", "sante", "médecin", "medecin", "pharmacie", "médicament", "medicament", "hôpital", "hopital"}},
	{domain.CategoryEducation, []string{"école", "ecole", "éducation", "education", "formation", "cours", "livre", "université", "universite"}},
	{domain.CategoryLoisirs, []string{"loisir", "cinéma", "cinema", "sortie", "jeu", "sport", "concert", "fête", "fete"}},
	{domain.CategoryEpargne, []string{"épargne", "epargne", "économie", "economie", "économiser", "economiser"}},
	{domain.CategoryVetements, []string{"vêtement", "vetement", "habit", "chaussure", "pantalon", "chemise", "robe"}},
	{domain.CategoryCommunication, []string{"crédit", "credit", "téléphone", "telephone", "internet", "forfait", "recharge", "wifi"}},
}

// ExtractCategory matches lower-cased query text against the keyword
// table. The boolean is false when nothing matches; callers default to
// the "autre" category.
func ExtractCategory(query string) (domain.Category, bool) {
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(query, kw) {
				return entry.category, true
			}
		}
	}
	return "", false
}
