package dataset

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/painmapapp/painmap-server/internal/domain"
	"github.com/painmapapp/painmap-server/internal/geo"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadEmbedded(t *testing.T) *Loader {
	t.Helper()
	l := New(testLogger(), geo.Classify, "")
	require.NoError(t, l.Load())
	return l
}

func TestLoad_Embedded(t *testing.T) {
	l := loadEmbedded(t)

	pins := l.Pins()
	require.NotEmpty(t, pins)
	assert.Equal(t, len(pins), l.Count())

	for _, pin := range pins {
		assert.NotEmpty(t, pin.ID, "pin %q has no id", pin.Name)
		assert.NotEmpty(t, pin.Name)
		assert.NotEmpty(t, pin.NameReading)
		assert.NotEmpty(t, pin.Region, "pin %q has no region", pin.ID)
		assert.True(t, pin.Type.Valid(), "pin %q has invalid type %q", pin.ID, pin.Type)
		assert.False(t, pin.IsCustom)
	}
}

func TestLoad_MergesCollectionAndExtraFiles(t *testing.T) {
	l := loadEmbedded(t)

	// One pin from the main collection, one from the bare-array extras.
	_, ok := l.Pin("bakery-paris-001")
	assert.True(t, ok)

	var foundExtra bool
	for _, pin := range l.Pins() {
		if pin.Name == "Mamiche" {
			foundExtra = true
		}
	}
	assert.True(t, foundExtra, "extra file features should be merged in")
}

func TestLoad_FallbacksForSparseFeature(t *testing.T) {
	l := loadEmbedded(t)

	// The extras file carries a feature with only a type and coordinates.
	pin, ok := l.Pin("bakery-6.0241-47.2378")
	require.True(t, ok, "coordinate-derived id should be assigned")

	assert.Equal(t, "Boulangerie", pin.Name)
	assert.Equal(t, pin.Name, pin.NameReading)
	assert.Equal(t, domain.PinTypePatisserie, pin.Type)
	assert.Equal(t, "Bourgogne-Franche-Comté", pin.Region, "region should come from the classifier")
}

func TestLoad_DirOverride(t *testing.T) {
	dir := t.TempDir()
	collection := `{
		"type": "FeatureCollection",
		"features": [
			{
				"type": "Feature",
				"geometry": {"type": "Point", "coordinates": [2.35, 48.85]},
				"properties": {"id": "bakery-test-1", "name": "Test Bakery", "type": "boulangerie"}
			}
		]
	}`
	extras := `[
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [4.83, 45.76]},
			"properties": {"name": "Extra Bakery", "type": "artisan"}
		}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_main.json"), []byte(collection), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_extra.json"), []byte(extras), 0o644))

	l := New(testLogger(), geo.Classify, dir)
	require.NoError(t, l.Load())

	assert.Equal(t, 2, l.Count())

	pin, ok := l.Pin("bakery-test-1")
	require.True(t, ok)
	assert.Equal(t, "Île-de-France", pin.Region)
	assert.Equal(t, "Test Bakery", pin.Name)
}

func TestLoad_DuplicateIDsKeepFirst(t *testing.T) {
	dir := t.TempDir()
	collection := `{
		"type": "FeatureCollection",
		"features": [
			{
				"type": "Feature",
				"geometry": {"type": "Point", "coordinates": [2.35, 48.85]},
				"properties": {"id": "bakery-dup", "name": "First", "type": "boulangerie"}
			},
			{
				"type": "Feature",
				"geometry": {"type": "Point", "coordinates": [2.36, 48.86]},
				"properties": {"id": "bakery-dup", "name": "Second", "type": "boulangerie"}
			}
		]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.json"), []byte(collection), 0o644))

	l := New(testLogger(), geo.Classify, dir)
	require.NoError(t, l.Load())

	require.Equal(t, 1, l.Count())
	pin, _ := l.Pin("bakery-dup")
	assert.Equal(t, "First", pin.Name)
}

func TestLoad_BadJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	l := New(testLogger(), geo.Classify, dir)
	assert.Error(t, l.Load())
}

func TestLoad_SkipsFeatureWithoutCoordinates(t *testing.T) {
	dir := t.TempDir()
	extras := `[
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": []}, "properties": {"name": "Nowhere"}},
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [2.35, 48.85]}, "properties": {"name": "Somewhere", "type": "boulangerie"}}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extras.json"), []byte(extras), 0o644))

	l := New(testLogger(), geo.Classify, dir)
	require.NoError(t, l.Load())
	assert.Equal(t, 1, l.Count())
}

func TestCustomPin(t *testing.T) {
	l := loadEmbedded(t)

	pin := l.CustomPin(domain.CustomBakery{
		ID:   "custom-abc",
		Name: "Ma Boulangerie",
		Type: domain.PinTypeBoulangerie,
		Lat:  48.85,
		Lng:  2.35,
	})

	assert.Equal(t, "custom-abc", pin.ID)
	assert.True(t, pin.IsCustom)
	assert.Equal(t, "Île-de-France", pin.Region)
	assert.Equal(t, pin.Name, pin.NameReading)
}

func TestCoordID(t *testing.T) {
	assert.Equal(t, "bakery-2.35-48.85", coordID(2.35, 48.85))
	assert.Equal(t, "bakery--1.55-47.22", coordID(-1.55, 47.22))
}
