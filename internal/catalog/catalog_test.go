package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aduanas/casengine/internal/domain"
)

func TestStaticLookups(t *testing.T) {
	cat := Default()

	t.Run("article by code", func(t *testing.T) {
		a, ok := cat.FindArticle("ART-101")
		require.True(t, ok)
		assert.Equal(t, domain.CaseAdministrative, a.CaseType)
		assert.NotEmpty(t, a.Norm)
	})

	t.Run("absence is a valid result", func(t *testing.T) {
		_, ok := cat.FindArticle("ART-000")
		assert.False(t, ok)
		_, ok = cat.FindAccountType("0000")
		assert.False(t, ok)
		_, ok = cat.FindCurrency("XXX")
		assert.False(t, ok)
	})

	t.Run("account types carry classes", func(t *testing.T) {
		at, ok := cat.FindAccountType("2001")
		require.True(t, ok)
		assert.Equal(t, domain.ClassFine, at.Class)
		// Class derived from the code prefix must agree with the chart.
		assert.Equal(t, at.Class, domain.ClassOf(at.Code))
	})

	t.Run("currency minor units", func(t *testing.T) {
		c, ok := cat.FindCurrency("PEN")
		require.True(t, ok)
		assert.Equal(t, 2, c.MinorUnits)
	})
}

func TestArticleForCategory(t *testing.T) {
	cat := Default()

	t.Run("hint picks among same-category articles", func(t *testing.T) {
		a, ok := cat.ArticleForCategory("undeclared_goods", domain.CaseCriminal)
		require.True(t, ok)
		assert.Equal(t, domain.CaseCriminal, a.CaseType)

		a, ok = cat.ArticleForCategory("undeclared_goods", domain.CaseAdministrative)
		require.True(t, ok)
		assert.Equal(t, domain.CaseAdministrative, a.CaseType)
	})

	t.Run("category with single case type falls back", func(t *testing.T) {
		a, ok := cat.ArticleForCategory("smuggling", domain.CaseAdministrative)
		require.True(t, ok)
		assert.Equal(t, "ART-182", a.Code)
	})

	t.Run("unknown category not found", func(t *testing.T) {
		_, ok := cat.ArticleForCategory("jaywalking", domain.CaseAdministrative)
		assert.False(t, ok)
	})
}
