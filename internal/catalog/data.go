package catalog

import "github.com/aduanas/casengine/internal/domain"

// Default returns the built-in reference catalog. Deployments that manage
// their own article table can construct a Static from their own data
// instead; nothing in the engine assumes this particular set.
func Default() *Static {
	return NewStatic(defaultArticles, defaultAccountTypes, defaultCurrencies)
}

var defaultArticles = []Article{
	{
		Code:             "ART-101",
		Category:         "undeclared_goods",
		Description:      "Omission or inaccuracy in goods declaration",
		CaseType:         domain.CaseAdministrative,
		Norm:             "General Customs Law, art. 101",
		RatePct:          10,
		MinFine:          50_000,
		MaxFine:          500_000_000,
		AllowsSettlement: true,
		SettlementPct:    25,
	},
	{
		Code:        "ART-108",
		Category:    "late_declaration",
		Description: "Declaration filed after the statutory deadline",
		CaseType:    domain.CaseAdministrative,
		Norm:        "General Customs Law, art. 108",
		RatePct:     5,
		MinFine:     25_000,
		MaxFine:     100_000_000,
	},
	{
		Code:             "ART-112",
		Category:         "misclassified_tariff",
		Description:      "Incorrect tariff classification affecting duties",
		CaseType:         domain.CaseAdministrative,
		Norm:             "General Customs Law, art. 112",
		RatePct:          10,
		MinFine:          50_000,
		AllowsSettlement: true,
		SettlementPct:    20,
	},
	{
		Code:        "ART-176",
		Category:    "undeclared_goods",
		Description: "Concealment of goods with intent to evade control",
		CaseType:    domain.CaseCriminal,
		Norm:        "Customs Criminal Code, art. 176",
		RatePct:     100,
		MinFine:     1_000_000,
	},
	{
		Code:        "ART-182",
		Category:    "smuggling",
		Description: "Smuggling of merchandise subject to restriction",
		CaseType:    domain.CaseCriminal,
		Norm:        "Customs Criminal Code, art. 182",
		RatePct:     200,
		MinFine:     5_000_000,
	},
}

var defaultAccountTypes = []AccountType{
	{Code: "1001", Name: "Import duty", Class: domain.ClassDuty},
	{Code: "1002", Name: "Countervailing duty", Class: domain.ClassDuty},
	{Code: "2001", Name: "Administrative fine", Class: domain.ClassFine},
	{Code: "2002", Name: "Settled fine", Class: domain.ClassFine},
	{Code: "3001", Name: "Default interest", Class: domain.ClassInterest},
	{Code: "9001", Name: "Processing costs", Class: domain.ClassOther},
}

var defaultCurrencies = []Currency{
	{Code: "PEN", Name: "Sol", MinorUnits: 2},
	{Code: "USD", Name: "US Dollar", MinorUnits: 2},
}
