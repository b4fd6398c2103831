package search

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/painmapapp/painmap-server/internal/domain"
)

func testIndex(t *testing.T) *PinIndex {
	t.Helper()

	idx, err := NewPinIndex(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func testPins() []domain.Pin {
	return []domain.Pin{
		{
			ID:          "bakery-paris-001",
			Name:        "Boulangerie Poilâne",
			NameReading: "Boulangerie Poilâne",
			Type:        domain.PinTypeBoulangerie,
			Address:     "8 Rue du Cherche-Midi, 75006 Paris",
			Region:      "Île-de-France",
			Lat:         48.8513,
			Lng:         2.3290,
		},
		{
			ID:          "bakery-paris-002",
			Name:        "Du Pain et des Idées",
			NameReading: "Du Pain et des Idées",
			Type:        domain.PinTypeBoulangerie,
			Address:     "34 Rue Yves Toudic, 75010 Paris",
			Region:      "Île-de-France",
			Lat:         48.8707,
			Lng:         2.3625,
		},
		{
			ID:          "bakery-lyon-001",
			Name:        "Maison Pozzoli",
			NameReading: "Maison Pozzoli",
			Type:        domain.PinTypePatisserie,
			Address:     "27 Rue Saint-Jean, 69005 Lyon",
			Region:      "Auvergne-Rhône-Alpes",
			Lat:         45.7622,
			Lng:         4.8271,
		},
		{
			ID:       "custom-abc123",
			Name:     "Chez Camille",
			Type:     domain.PinTypeArtisan,
			Region:   "Bretagne",
			Lat:      48.39,
			Lng:      -4.49,
			IsCustom: true,
		},
	}
}

func TestRebuildAndDocumentCount(t *testing.T) {
	idx := testIndex(t)

	require.NoError(t, idx.Rebuild(testPins()))

	count, err := idx.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), count)

	// Rebuilding replaces, not appends.
	require.NoError(t, idx.Rebuild(testPins()[:2]))
	count, err = idx.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}

func TestSearch_NameMatch(t *testing.T) {
	idx := testIndex(t)
	require.NoError(t, idx.Rebuild(testPins()))

	result, err := idx.Search(context.Background(), SearchParams{Query: "Poilâne", Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "bakery-paris-001", result.Hits[0].ID)
	assert.Equal(t, "Boulangerie Poilâne", result.Hits[0].Name)
	assert.Equal(t, "Île-de-France", result.Hits[0].Region)
}

func TestSearch_AddressMatch(t *testing.T) {
	idx := testIndex(t)
	require.NoError(t, idx.Rebuild(testPins()))

	result, err := idx.Search(context.Background(), SearchParams{Query: "Toudic", Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "bakery-paris-002", result.Hits[0].ID)
}

func TestSearch_FuzzyTypo(t *testing.T) {
	idx := testIndex(t)
	require.NoError(t, idx.Rebuild(testPins()))

	// One character off. The typo goes through the same analysis as the
	// indexed name, so the doubled consonant still collapses before the
	// edit distance is measured.
	result, err := idx.Search(context.Background(), SearchParams{Query: "Pozzola", Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "bakery-lyon-001", result.Hits[0].ID)
}

func TestSearch_Prefix(t *testing.T) {
	idx := testIndex(t)
	require.NoError(t, idx.Rebuild(testPins()))

	result, err := idx.Search(context.Background(), SearchParams{Query: "cami", Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "custom-abc123", result.Hits[0].ID)
}

func TestSearch_TypeAndRegionFilters(t *testing.T) {
	idx := testIndex(t)
	require.NoError(t, idx.Rebuild(testPins()))

	result, err := idx.Search(context.Background(), SearchParams{
		Types: []string{"patisserie"},
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "bakery-lyon-001", result.Hits[0].ID)

	result, err = idx.Search(context.Background(), SearchParams{
		Regions: []string{"Île-de-France"},
		Limit:   10,
	})
	require.NoError(t, err)
	assert.Len(t, result.Hits, 2)
}

func TestSearch_EmptyQueryMatchesAll(t *testing.T) {
	idx := testIndex(t)
	require.NoError(t, idx.Rebuild(testPins()))

	result, err := idx.Search(context.Background(), SearchParams{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), result.Total)
}

func TestMatchingIDs(t *testing.T) {
	idx := testIndex(t)
	require.NoError(t, idx.Rebuild(testPins()))

	ids, err := idx.MatchingIDs(context.Background(), "Paris", 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bakery-paris-001", "bakery-paris-002"}, ids)
}

func TestUpsertAndDelete(t *testing.T) {
	idx := testIndex(t)
	require.NoError(t, idx.Rebuild(testPins()))

	require.NoError(t, idx.Upsert(domain.Pin{
		ID:     "custom-new1",
		Name:   "Fournil du Port",
		Type:   domain.PinTypeBoulangerie,
		Region: "Bretagne",
	}))

	result, err := idx.Search(context.Background(), SearchParams{Query: "Fournil", Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "custom-new1", result.Hits[0].ID)

	require.NoError(t, idx.Delete("custom-new1"))
	result, err = idx.Search(context.Background(), SearchParams{Query: "Fournil", Limit: 10})
	require.NoError(t, err)
	for _, hit := range result.Hits {
		assert.NotEqual(t, "custom-new1", hit.ID)
	}
}
