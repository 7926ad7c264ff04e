// Package classify derives the legal qualification of an infraction from
// the reference catalog. Every function is pure and advisory: unknown
// categories or article codes produce an empty suggestion, never an
// error, and callers may always override the result manually.
package classify

import (
	"github.com/aduanas/casengine/internal/catalog"
	"github.com/aduanas/casengine/internal/domain"
)

// Classifier answers qualification questions against an injected catalog.
type Classifier struct {
	catalog catalog.Provider
}

func New(p catalog.Provider) *Classifier {
	return &Classifier{catalog: p}
}

// SuggestArticle proposes a legal article for an infraction category,
// preferring one matching the case-type hint.
func (c *Classifier) SuggestArticle(category string, hint domain.CaseType) (string, bool) {
	a, ok := c.catalog.ArticleForCategory(category, hint)
	if !ok {
		return "", false
	}
	return a.Code, true
}

// Qualify returns the authoritative case type and governing norm for an
// article. Once an article is selected it, not the intake hint, decides
// whether the case is administrative or criminal.
func (c *Classifier) Qualify(articleCode string) (domain.CaseType, string, bool) {
	a, ok := c.catalog.FindArticle(articleCode)
	if !ok {
		return "", "", false
	}
	return a.CaseType, a.Norm, true
}

// FineSuggestion is the computed fine for a monetary base under an
// article, with the optional settlement-discounted alternative.
type FineSuggestion struct {
	Fine           int64
	DiscountedFine int64
	HasDiscount    bool
}

// SuggestFine computes round(base × rate) clamped into the article's
// [MinFine, MaxFine] range where those bounds exist. A zero bound means
// the bound is absent. All arithmetic is integer minor units, rounding
// half up.
func (c *Classifier) SuggestFine(base int64, articleCode string) (FineSuggestion, bool) {
	a, ok := c.catalog.FindArticle(articleCode)
	if !ok || base <= 0 {
		return FineSuggestion{}, false
	}

	fine := roundPct(base, a.RatePct)
	if a.MinFine > 0 && fine < a.MinFine {
		fine = a.MinFine
	}
	if a.MaxFine > 0 && fine > a.MaxFine {
		fine = a.MaxFine
	}

	s := FineSuggestion{Fine: fine}
	if a.AllowsSettlement && a.SettlementPct > 0 {
		s.DiscountedFine = roundPct(fine, 100-a.SettlementPct)
		s.HasDiscount = true
	}
	return s, true
}

// roundPct computes amount × pct / 100 rounding half up.
func roundPct(amount int64, pct int) int64 {
	return (amount*int64(pct) + 50) / 100
}
