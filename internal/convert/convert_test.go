package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aduanas/casengine/internal/catalog"
	"github.com/aduanas/casengine/internal/classify"
	"github.com/aduanas/casengine/internal/domain"
)

func testConverter() *Converter {
	cat := catalog.NewStatic([]catalog.Article{
		{
			Code: "ART-101", Category: "undeclared_goods",
			CaseType: domain.CaseAdministrative, Norm: "General Customs Law, art. 101",
			RatePct: 10, MinFine: 500_000, MaxFine: 5_000_000,
		},
	}, nil, nil)
	return New(classify.New(cat))
}

func testFinding() domain.Finding {
	return domain.Finding{
		ID:              "f-1",
		ReferenceNumber: "HAL-2026-0001",
		Category:        "undeclared_goods",
		CaseTypeHint:    domain.CaseCriminal,
		PartyIdentity:   "20481234567",
		PartyName:       "Importadora Andina S.A.C.",
		EstimatedBase:   12_500_000,
		Currency:        "PEN",
		Description:     "Undeclared electronics",
	}
}

func TestConvert(t *testing.T) {
	conv := testConverter()
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("derived amounts follow policy rates", func(t *testing.T) {
		a := conv.Convert(testFinding(), now)
		assert.Equal(t, int64(750_000), a.DutyAmount, "duty is 6% of base")
		assert.Equal(t, int64(250_000), a.WithheldAmount, "withholding is 2% of base")
		assert.Equal(t, int64(12_500_000), a.UndeclaredAmount, "undeclared equals base")
		assert.Equal(t, int64(1_250_000), a.FineAmount, "fine is clamped 10% of base")
	})

	t.Run("article overrides case type hint", func(t *testing.T) {
		a := conv.Convert(testFinding(), now)
		assert.Equal(t, "ART-101", a.ArticleCode)
		assert.Equal(t, domain.CaseAdministrative, a.CaseType,
			"criminal hint must yield to the article's qualification")
		assert.Equal(t, "General Customs Law, art. 101", a.Norm)
	})

	t.Run("seeds one principal party", func(t *testing.T) {
		a := conv.Convert(testFinding(), now)
		require.Len(t, a.Parties, 1)
		p := a.Parties[0]
		assert.True(t, p.Principal)
		assert.Equal(t, 100, p.ResponsibilityPct)
		assert.Equal(t, "20481234567", p.Identity)
		assert.Equal(t, "Importadora Andina S.A.C.", p.Name)
	})

	t.Run("draft starts pending with origin finding", func(t *testing.T) {
		a := conv.Convert(testFinding(), now)
		assert.Equal(t, domain.AccusationPending, a.State)
		assert.Equal(t, domain.OriginFinding, a.Origin)
		assert.Equal(t, "f-1", a.SourceFinding)
	})

	t.Run("does not mutate the source finding", func(t *testing.T) {
		f := testFinding()
		before := f
		conv.Convert(f, now)
		assert.Equal(t, before, f)
	})

	t.Run("idempotent for the same finding", func(t *testing.T) {
		a1 := conv.Convert(testFinding(), now)
		a2 := conv.Convert(testFinding(), now)
		assert.Equal(t, a1, a2)
	})

	t.Run("unknown category leaves classification empty", func(t *testing.T) {
		f := testFinding()
		f.Category = "no_such_category"
		a := conv.Convert(f, now)
		assert.Empty(t, a.ArticleCode)
		assert.Equal(t, domain.CaseCriminal, a.CaseType, "hint stands without an article")
		assert.Zero(t, a.FineAmount)
	})
}
