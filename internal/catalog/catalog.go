// Package catalog holds the read-only reference data the engine consults:
// legal articles with their fine ranges, the account-type chart and the
// currency list. Catalogs are loaded once at startup and never mutated,
// so they are safe to share across requests.
package catalog

import "github.com/aduanas/casengine/internal/domain"

// Article is a legal article from the customs infraction table.
// MinFine/MaxFine of zero mean the bound is absent. RatePct is the fixed
// fine rate applied to the monetary base, in whole percent.
type Article struct {
	Code             string          `json:"code"`
	Category         string          `json:"category"`
	Description      string          `json:"description"`
	CaseType         domain.CaseType `json:"case_type"`
	Norm             string          `json:"norm"`
	RatePct          int             `json:"rate_pct"`
	MinFine          int64           `json:"min_fine,omitempty"`
	MaxFine          int64           `json:"max_fine,omitempty"`
	AllowsSettlement bool            `json:"allows_settlement"`
	SettlementPct    int             `json:"settlement_pct,omitempty"`
}

// AccountType is an entry of the revenue account chart.
type AccountType struct {
	Code  string              `json:"code"`
	Name  string              `json:"name"`
	Class domain.AccountClass `json:"class"`
}

// Currency is an accepted settlement currency.
type Currency struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	MinorUnits int    `json:"minor_units"`
}

// Provider is the lookup contract the engine depends on. Lookups never
// fail with an error; absence is reported through the boolean.
type Provider interface {
	FindArticle(code string) (Article, bool)
	ArticleForCategory(category string, hint domain.CaseType) (Article, bool)
	FindAccountType(code string) (AccountType, bool)
	FindCurrency(code string) (Currency, bool)
	Articles() []Article
}

// Static is an in-memory Provider built once from slices.
type Static struct {
	articles     []Article
	byCode       map[string]Article
	accountTypes map[string]AccountType
	currencies   map[string]Currency
}

// NewStatic indexes the given reference data.
func NewStatic(articles []Article, accounts []AccountType, currencies []Currency) *Static {
	s := &Static{
		articles:     articles,
		byCode:       make(map[string]Article, len(articles)),
		accountTypes: make(map[string]AccountType, len(accounts)),
		currencies:   make(map[string]Currency, len(currencies)),
	}
	for _, a := range articles {
		s.byCode[a.Code] = a
	}
	for _, at := range accounts {
		s.accountTypes[at.Code] = at
	}
	for _, c := range currencies {
		s.currencies[c.Code] = c
	}
	return s
}

func (s *Static) FindArticle(code string) (Article, bool) {
	a, ok := s.byCode[code]
	return a, ok
}

// ArticleForCategory returns the first article matching the category and
// case-type hint, falling back to a category match of either case type.
func (s *Static) ArticleForCategory(category string, hint domain.CaseType) (Article, bool) {
	var fallback Article
	var found bool
	for _, a := range s.articles {
		if a.Category != category {
			continue
		}
		if a.CaseType == hint {
			return a, true
		}
		if !found {
			fallback, found = a, true
		}
	}
	return fallback, found
}

func (s *Static) FindAccountType(code string) (AccountType, bool) {
	at, ok := s.accountTypes[code]
	return at, ok
}

func (s *Static) FindCurrency(code string) (Currency, bool) {
	c, ok := s.currencies[code]
	return c, ok
}

func (s *Static) Articles() []Article {
	return s.articles
}
