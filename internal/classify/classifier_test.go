package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aduanas/casengine/internal/catalog"
	"github.com/aduanas/casengine/internal/domain"
)

func testCatalog() catalog.Provider {
	return catalog.NewStatic([]catalog.Article{
		{
			Code: "ART-101", Category: "undeclared_goods",
			CaseType: domain.CaseAdministrative, Norm: "General Customs Law, art. 101",
			RatePct: 10, MinFine: 500_000, MaxFine: 5_000_000,
			AllowsSettlement: true, SettlementPct: 25,
		},
		{
			Code: "ART-176", Category: "undeclared_goods",
			CaseType: domain.CaseCriminal, Norm: "Customs Criminal Code, art. 176",
			RatePct: 100, MinFine: 1_000_000,
		},
		{
			Code: "ART-108", Category: "late_declaration",
			CaseType: domain.CaseAdministrative, RatePct: 5,
		},
	}, nil, nil)
}

func TestSuggestArticle(t *testing.T) {
	c := New(testCatalog())

	t.Run("prefers case type hint", func(t *testing.T) {
		code, ok := c.SuggestArticle("undeclared_goods", domain.CaseCriminal)
		require.True(t, ok)
		assert.Equal(t, "ART-176", code)
	})

	t.Run("falls back across case types", func(t *testing.T) {
		code, ok := c.SuggestArticle("late_declaration", domain.CaseCriminal)
		require.True(t, ok)
		assert.Equal(t, "ART-108", code)
	})

	t.Run("unknown category yields empty suggestion", func(t *testing.T) {
		code, ok := c.SuggestArticle("no_such_category", domain.CaseAdministrative)
		assert.False(t, ok)
		assert.Empty(t, code)
	})
}

func TestQualify(t *testing.T) {
	c := New(testCatalog())

	caseType, norm, ok := c.Qualify("ART-176")
	require.True(t, ok)
	assert.Equal(t, domain.CaseCriminal, caseType)
	assert.Equal(t, "Customs Criminal Code, art. 176", norm)

	_, _, ok = c.Qualify("ART-999")
	assert.False(t, ok, "unknown article must not qualify")
}

func TestSuggestFine(t *testing.T) {
	c := New(testCatalog())

	t.Run("rate within range stays unclamped", func(t *testing.T) {
		// base 12,500,000 at 10% lands inside [500,000; 5,000,000]
		s, ok := c.SuggestFine(12_500_000, "ART-101")
		require.True(t, ok)
		assert.Equal(t, int64(1_250_000), s.Fine)
	})

	t.Run("clamps to minimum", func(t *testing.T) {
		s, ok := c.SuggestFine(100_000, "ART-101")
		require.True(t, ok)
		assert.Equal(t, int64(500_000), s.Fine)
	})

	t.Run("clamps to maximum", func(t *testing.T) {
		s, ok := c.SuggestFine(200_000_000, "ART-101")
		require.True(t, ok)
		assert.Equal(t, int64(5_000_000), s.Fine)
	})

	t.Run("settlement discount", func(t *testing.T) {
		s, ok := c.SuggestFine(12_500_000, "ART-101")
		require.True(t, ok)
		require.True(t, s.HasDiscount)
		assert.Equal(t, int64(937_500), s.DiscountedFine)
	})

	t.Run("no discount without settlement flag", func(t *testing.T) {
		s, ok := c.SuggestFine(2_000_000, "ART-176")
		require.True(t, ok)
		assert.False(t, s.HasDiscount)
		assert.Zero(t, s.DiscountedFine)
	})

	t.Run("absent max bound only clamps below", func(t *testing.T) {
		s, ok := c.SuggestFine(1_000_000_000, "ART-176")
		require.True(t, ok)
		assert.Equal(t, int64(1_000_000_000), s.Fine)
	})

	t.Run("unknown article yields no suggestion", func(t *testing.T) {
		_, ok := c.SuggestFine(1_000_000, "ART-999")
		assert.False(t, ok)
	})

	t.Run("non-positive base yields no suggestion", func(t *testing.T) {
		_, ok := c.SuggestFine(0, "ART-101")
		assert.False(t, ok)
	})
}
