package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/painmapapp/painmap-server/internal/dataset"
	"github.com/painmapapp/painmap-server/internal/domain"
	"github.com/painmapapp/painmap-server/internal/errors"
	"github.com/painmapapp/painmap-server/internal/geo"
	"github.com/painmapapp/painmap-server/internal/search"
	"github.com/painmapapp/painmap-server/internal/store"
)

type testServices struct {
	pins    *PinService
	marks   *MarkService
	memos   *MemoService
	custom  *CustomBakeryService
	filters *FilterService
	stats   *StatsService
	links   *LinkService
	store   *store.Store
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.New(t.TempDir(), logger, store.NewNoopEmitter(), 10*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ds := dataset.New(logger, geo.Classify, "")
	require.NoError(t, ds.Load())

	idx, err := search.NewPinIndex(logger)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	pins, err := NewPinService(ds, st, idx, logger)
	require.NoError(t, err)

	return &testServices{
		pins:    pins,
		marks:   NewMarkService(st, pins, logger),
		memos:   NewMemoService(st, pins, logger),
		custom:  NewCustomBakeryService(st, pins, logger),
		filters: NewFilterService(st),
		stats:   NewStatsService(st, pins),
		links:   NewLinkService(pins),
		store:   st,
	}
}

func anyPinID(t *testing.T, s *testServices) string {
	t.Helper()
	pins := s.pins.AllPins()
	require.NotEmpty(t, pins)
	return pins[0].ID
}

func TestListPins_DefaultShowsEverything(t *testing.T) {
	s := newTestServices(t)

	views, err := s.pins.ListPins(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Len(t, views, len(s.pins.AllPins()))
}

func TestListPins_TriedModeShowsOnlyTried(t *testing.T) {
	s := newTestServices(t)
	pinID := anyPinID(t, s)

	_, err := s.marks.MarkTried(context.Background(), pinID)
	require.NoError(t, err)

	mode := domain.FilterTried
	views, err := s.pins.ListPins(context.Background(), ListOptions{Mode: &mode})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, pinID, views[0].ID)
	assert.True(t, views[0].Tried)
	assert.NotNil(t, views[0].TriedAt)
}

func TestListPins_WantToGoMode(t *testing.T) {
	s := newTestServices(t)
	pinID := anyPinID(t, s)

	require.NoError(t, s.marks.AddWantToGo(context.Background(), pinID))

	mode := domain.FilterWantToGo
	views, err := s.pins.ListPins(context.Background(), ListOptions{Mode: &mode})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, pinID, views[0].ID)
}

func TestListPins_RegionFilter(t *testing.T) {
	s := newTestServices(t)

	region := "Île-de-France"
	views, err := s.pins.ListPins(context.Background(), ListOptions{Region: &region})
	require.NoError(t, err)
	require.NotEmpty(t, views)
	for _, v := range views {
		assert.Equal(t, region, v.Region)
	}
}

func TestListPins_HideExcluded(t *testing.T) {
	s := newTestServices(t)
	pinID := anyPinID(t, s)

	require.NoError(t, s.marks.Exclude(context.Background(), pinID))

	hide := true
	views, err := s.pins.ListPins(context.Background(), ListOptions{HideExcluded: &hide})
	require.NoError(t, err)
	for _, v := range views {
		assert.NotEqual(t, pinID, v.ID)
	}

	// Without hiding, the excluded pin is still listed and flagged.
	views, err = s.pins.ListPins(context.Background(), ListOptions{})
	require.NoError(t, err)
	var found bool
	for _, v := range views {
		if v.ID == pinID {
			found = true
			assert.True(t, v.Excluded)
		}
	}
	assert.True(t, found)
}

func TestListPins_SearchQuery(t *testing.T) {
	s := newTestServices(t)

	views, err := s.pins.ListPins(context.Background(), ListOptions{Query: "Utopie"})
	require.NoError(t, err)
	require.NotEmpty(t, views)
	assert.Equal(t, "bakery-paris-001", views[0].ID)
}

func TestListPins_UnknownModeRejected(t *testing.T) {
	s := newTestServices(t)

	mode := domain.FilterMode("starred")
	_, err := s.pins.ListPins(context.Background(), ListOptions{Mode: &mode})
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestGetPin_UnknownID(t *testing.T) {
	s := newTestServices(t)

	_, err := s.pins.GetPin(context.Background(), "bakery-nope")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestMarkTried_UnknownPinRejected(t *testing.T) {
	s := newTestServices(t)

	_, err := s.marks.MarkTried(context.Background(), "bakery-nope")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	// Unmarking an unknown pin is an idempotent no-op.
	assert.NoError(t, s.marks.UnmarkTried(context.Background(), "bakery-nope"))
}

func TestSetMemo_RatingValidation(t *testing.T) {
	s := newTestServices(t)
	pinID := anyPinID(t, s)

	_, err := s.memos.SetMemo(context.Background(), pinID, "excellent croissant", 6)
	assert.ErrorIs(t, err, errors.ErrValidation)

	memo, err := s.memos.SetMemo(context.Background(), pinID, "excellent croissant", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, memo.Rating)

	// Rating 0 clears the rating but keeps the note.
	memo, err = s.memos.SetMemo(context.Background(), pinID, "excellent croissant", 0)
	require.NoError(t, err)
	assert.Zero(t, memo.Rating)
}

func TestAddPhoto_RequiresURI(t *testing.T) {
	s := newTestServices(t)
	pinID := anyPinID(t, s)

	_, err := s.memos.AddPhoto(context.Background(), pinID, "")
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestCustomBakery_AddIsSearchableAndListed(t *testing.T) {
	s := newTestServices(t)

	bakery, err := s.custom.Add(context.Background(), "Fournil des Tests", domain.PinTypeBoulangerie, 48.85, 2.35, "1 Rue du Test, Paris")
	require.NoError(t, err)
	assert.True(t, s.pins.Exists(bakery.ID))

	views, err := s.pins.ListPins(context.Background(), ListOptions{Query: "Fournil"})
	require.NoError(t, err)
	require.NotEmpty(t, views)
	assert.Equal(t, bakery.ID, views[0].ID)
	assert.True(t, views[0].IsCustom)
	assert.Equal(t, "Île-de-France", views[0].Region)
}

func TestCustomBakery_AddValidation(t *testing.T) {
	s := newTestServices(t)

	_, err := s.custom.Add(context.Background(), "  ", domain.PinTypeBoulangerie, 48.85, 2.35, "")
	assert.ErrorIs(t, err, errors.ErrValidation)

	_, err = s.custom.Add(context.Background(), "Fournil", domain.PinType("fromagerie"), 48.85, 2.35, "")
	assert.ErrorIs(t, err, errors.ErrValidation)

	_, err = s.custom.Add(context.Background(), "Fournil", domain.PinTypeBoulangerie, 123, 2.35, "")
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestCustomBakery_UpdateUnknownID(t *testing.T) {
	s := newTestServices(t)

	name := "Renamed"
	_, err := s.custom.Update(context.Background(), "custom-nope", domain.CustomBakeryUpdate{Name: &name})
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestCustomBakery_DeleteCascades(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	bakery, err := s.custom.Add(ctx, "Fournil des Tests", domain.PinTypeBoulangerie, 48.85, 2.35, "")
	require.NoError(t, err)

	_, err = s.marks.MarkTried(ctx, bakery.ID)
	require.NoError(t, err)
	_, err = s.memos.SetMemo(ctx, bakery.ID, "note", 4)
	require.NoError(t, err)

	require.NoError(t, s.custom.Delete(ctx, bakery.ID))

	assert.False(t, s.pins.Exists(bakery.ID))
	assert.False(t, s.store.IsTried(bakery.ID))
	_, ok := s.store.Memo(bakery.ID)
	assert.False(t, ok)

	// Deleting again is a no-op.
	assert.NoError(t, s.custom.Delete(ctx, bakery.ID))
}

func TestFilters_UpdateAndValidate(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	mode := domain.FilterTried
	region := "Bretagne"
	state, err := s.filters.UpdateFilters(ctx, store.FilterUpdate{Mode: &mode, Region: &region})
	require.NoError(t, err)
	assert.Equal(t, domain.FilterTried, state.Mode)
	assert.Equal(t, "Bretagne", state.Region)

	badRegion := "Atlantis"
	_, err = s.filters.UpdateFilters(ctx, store.FilterUpdate{Region: &badRegion})
	assert.ErrorIs(t, err, errors.ErrValidation)

	badMode := domain.FilterMode("starred")
	_, err = s.filters.UpdateFilters(ctx, store.FilterUpdate{Mode: &badMode})
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestStats_CountsRegions(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	pinID := "bakery-paris-001"
	_, err := s.marks.MarkTried(ctx, pinID)
	require.NoError(t, err)
	require.NoError(t, s.marks.AddWantToGo(ctx, "bakery-lyon-001"))

	stats := s.stats.Stats(ctx)
	assert.Equal(t, len(s.pins.AllPins()), stats.TotalPins)
	assert.Equal(t, 1, stats.Tried)
	assert.Equal(t, 1, stats.WantToGo)

	var idf *RegionStats
	for i := range stats.Regions {
		if stats.Regions[i].Region == "Île-de-France" {
			idf = &stats.Regions[i]
		}
	}
	require.NotNil(t, idf)
	assert.Equal(t, 1, idf.Tried)
	assert.Positive(t, idf.Total)
}

func TestLinks_BuildsEscapedURLs(t *testing.T) {
	s := newTestServices(t)

	links, err := s.links.Links(context.Background(), "bakery-paris-001")
	require.NoError(t, err)
	assert.Contains(t, links.AppleMaps, "https://maps.apple.com/?")
	assert.Contains(t, links.GoogleMaps, "https://www.google.com/maps/search/?")
	assert.Contains(t, links.WebSearch, "https://www.google.com/search?")
	assert.NotContains(t, links.WebSearch, " ")

	_, err = s.links.Links(context.Background(), "bakery-nope")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestRegions_ReturnsDisplayGroups(t *testing.T) {
	s := newTestServices(t)

	groups := s.pins.Regions()
	require.NotEmpty(t, groups)
	assert.Equal(t, "Île-de-France", groups[0].Name)
}
