package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ports "github.com/ZanzyTHEbar/vendabot/vbot/agent/ports"
)

var catalog = []ports.Product{
	{ID: "P1", Name: "Café Torrado", Image: "http://img/p1.png"},
	{ID: "P2", Name: "Arroz Branco Tipo 1", Image: "http://img/p2.png"},
	{ID: "P3", Name: "Sem Imagem"},
}

func TestRecommend_MatchByName(t *testing.T) {
	rec := NewRecommender()

	p, ok := rec.Recommend("Recomendo o nosso café torrado, é uma delícia!", catalog, "")

	require.True(t, ok)
	assert.Equal(t, "P1", p.ID)
}

func TestRecommend_MatchByID(t *testing.T) {
	rec := NewRecommender()

	p, ok := rec.Recommend("Que tal o produto P2?", catalog, "")

	require.True(t, ok)
	assert.Equal(t, "P2", p.ID)
}

func TestRecommend_TokenOverlapLongName(t *testing.T) {
	rec := NewRecommender()

	// "Arroz Branco Tipo 1" has 4 tokens; 2 shared tokens suffice.
	p, ok := rec.Recommend("Sugiro o arroz branco da casa", catalog, "")

	require.True(t, ok)
	assert.Equal(t, "P2", p.ID)
}

func TestRecommend_ShortNameNeedsAllTokens(t *testing.T) {
	rec := NewRecommender()

	// "Café Torrado" has 2 tokens; one alone is not enough.
	_, ok := rec.Recommend("Temos bebidas com café em promoção hoje", catalog, "")
	assert.False(t, ok)
}

func TestRecommend_NotARecommendation(t *testing.T) {
	rec := NewRecommender()

	_, ok := rec.Recommend("O café torrado custa dez reais.", catalog, "")
	assert.False(t, ok)
}

func TestRecommend_CartActionSuppresses(t *testing.T) {
	rec := NewRecommender()

	// Looks like a recommendation but is a cart action; no image.
	_, ok := rec.Recommend("Adicionei o café torrado que recomendo ao carrinho!", catalog, "")
	assert.False(t, ok)
}

func TestRecommend_SkipsProductsWithoutImage(t *testing.T) {
	rec := NewRecommender()

	_, ok := rec.Recommend("Recomendo o sem imagem", catalog, "")
	assert.False(t, ok)
}

func TestRecommend_DedupGuard(t *testing.T) {
	rec := NewRecommender()

	// Same product as last time: no image attached.
	_, ok := rec.Recommend("Recomendo o café torrado!", catalog, "P1")
	assert.False(t, ok)

	// A different product passes and would update the guard.
	p, ok := rec.Recommend("Recomendo o arroz branco tipo 1!", catalog, "P1")
	require.True(t, ok)
	assert.Equal(t, "P2", p.ID)
}

func TestRecommend_FirstCatalogMatchWins(t *testing.T) {
	rec := NewRecommender()

	p, ok := rec.Recommend("Recomendo o café torrado e o arroz branco tipo 1", catalog, "")

	require.True(t, ok)
	assert.Equal(t, "P1", p.ID)
}
