// Package convert turns an intake finding into a pre-populated accusation
// draft. The conversion never mutates the source finding and is
// idempotent: converting the same finding twice yields equivalent drafts
// (numbering is assigned later by the service layer).
package convert

import (
	"time"

	"github.com/aduanas/casengine/internal/classify"
	"github.com/aduanas/casengine/internal/domain"
)

// Derived-amount policy rates, in whole percent of the estimated base.
const (
	dutyRatePct        = 6
	withholdingRatePct = 2
)

// Resolution deadline granted to a new accusation.
const resolutionPeriod = 90 * 24 * time.Hour

// Converter builds accusation drafts using the classifier for the legal
// qualification.
type Converter struct {
	classifier *classify.Classifier
}

func New(c *classify.Classifier) *Converter {
	return &Converter{classifier: c}
}

// Convert maps the finding onto a new accusation draft. The draft carries
// no numbers; ID and case numbers belong to the caller. The article, when
// one is suggested, overrides the finding's case-type hint.
func (c *Converter) Convert(f domain.Finding, now time.Time) *domain.Accusation {
	a := &domain.Accusation{
		Origin:        domain.OriginFinding,
		SourceFinding: f.ID,
		IngressDate:   now,
		IssuanceDate:  now,
		Deadline:      now.Add(resolutionPeriod),
		Category:      f.Category,
		CaseType:      f.CaseTypeHint,
		Currency:      f.Currency,

		DutyAmount:       pct(f.EstimatedBase, dutyRatePct),
		WithheldAmount:   pct(f.EstimatedBase, withholdingRatePct),
		UndeclaredAmount: f.EstimatedBase,

		Parties: []domain.InvolvedParty{{
			Role:              "infractor",
			Identity:          f.PartyIdentity,
			Name:              f.PartyName,
			ResponsibilityPct: 100,
			Principal:         true,
		}},
		Documents: append([]domain.Document(nil), f.Documents...),

		State:     domain.AccusationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if code, ok := c.classifier.SuggestArticle(f.Category, f.CaseTypeHint); ok {
		a.ArticleCode = code
		if caseType, norm, ok := c.classifier.Qualify(code); ok {
			a.CaseType = caseType
			a.Norm = norm
		}
		if fine, ok := c.classifier.SuggestFine(f.EstimatedBase, code); ok {
			a.FineAmount = fine.Fine
			a.DiscountedFine = fine.DiscountedFine
		}
	}

	return a
}

func pct(amount int64, rate int) int64 {
	return (amount*int64(rate) + 50) / 100
}
