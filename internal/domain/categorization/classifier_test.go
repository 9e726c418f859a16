package categorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_CategorizeEstablishment(t *testing.T) {
	c := NewClassifier()

	t.Run("matches supermarket keywords", func(t *testing.T) {
		got := c.CategorizeEstablishment("SUPERMERCADO GUANABARA LTDA")
		assert.Equal(t, "supermercado", got.ID)
		assert.Equal(t, "Supermercado", got.Name)
	})

	t.Run("matches pharmacy keywords", func(t *testing.T) {
		got := c.CategorizeEstablishment("DROGARIA PACHECO SA")
		assert.Equal(t, "saude", got.ID)
	})

	t.Run("matches gas station keywords", func(t *testing.T) {
		got := c.CategorizeEstablishment("AUTO POSTO IPIRANGA")
		assert.Equal(t, "transporte", got.ID)
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := c.CategorizeEstablishment("mercado do bairro")
		assert.Equal(t, "supermercado", got.ID)
	})

	t.Run("earlier table row wins on multiple matches", func(t *testing.T) {
		// "energia" (contas_fixas) comes before "posto" (transporte).
		got := c.CategorizeEstablishment("POSTO DE ENERGIA ELETRICA")
		assert.Equal(t, "contas_fixas", got.ID)
	})

	t.Run("falls back to outras", func(t *testing.T) {
		got := c.CategorizeEstablishment("XYZW COMERCIO GENERICO")
		assert.Equal(t, "outras", got.ID)
	})

	t.Run("empty name falls back to outras", func(t *testing.T) {
		got := c.CategorizeEstablishment("")
		assert.Equal(t, "outras", got.ID)
	})
}

func TestClassifier_Subcategorize(t *testing.T) {
	c := NewClassifier()

	t.Run("beer item maps to alcoholic drinks", func(t *testing.T) {
		got := c.Subcategorize("supermercado", "CERV B.BADEN GOLD 350ML")
		assert.Equal(t, "bebidas_alcoolicas", got.ID)
	})

	t.Run("soda maps to non alcoholic drinks", func(t *testing.T) {
		got := c.Subcategorize("supermercado", "REFRIGERANTE GUARANA 2L")
		assert.Equal(t, "bebidas_nao_alcoolicas", got.ID)
	})

	t.Run("fuel item under transporte", func(t *testing.T) {
		got := c.Subcategorize("transporte", "GASOLINA ADITIVADA")
		assert.Equal(t, "combustivel", got.ID)
	})

	t.Run("unmatched description falls back to outros", func(t *testing.T) {
		got := c.Subcategorize("supermercado", "ITEM QUALQUER 123")
		assert.Equal(t, "outros", got.ID)
	})

	t.Run("unknown category falls back to outros", func(t *testing.T) {
		got := c.Subcategorize("nope", "CERVEJA")
		assert.Equal(t, "outros", got.ID)
	})
}

func TestTaxonomyListings(t *testing.T) {
	t.Run("expense categories keep table order", func(t *testing.T) {
		cats := ExpenseCategories()
		require.Len(t, cats, 12)
		assert.Equal(t, "moradia", cats[0].ID)
		assert.Equal(t, "outras", cats[len(cats)-1].ID)
	})

	t.Run("income categories are exposed", func(t *testing.T) {
		cats := IncomeCategories()
		require.NotEmpty(t, cats)
		assert.Equal(t, "salario", cats[0].ID)
	})

	t.Run("subcategories include fallback bucket", func(t *testing.T) {
		subs := SubcategoriesFor("supermercado")
		require.NotEmpty(t, subs)
		assert.Equal(t, "outros", subs[len(subs)-1].ID)
	})

	t.Run("unknown category gets only fallback", func(t *testing.T) {
		subs := SubcategoriesFor("does-not-exist")
		require.Len(t, subs, 1)
		assert.Equal(t, "outros", subs[0].ID)
	})
}
