// Package dataset loads the bakery pin dataset from embedded GeoJSON files,
// or from a directory override that can be reloaded at runtime.
package dataset

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/painmapapp/painmap-server/internal/domain"
)

//go:embed data/*.json
var embeddedData embed.FS

// Classifier maps a coordinate to a region name. An empty string means the
// coordinate falls outside every known region.
type Classifier func(lat, lng float64) string

// feature is a single GeoJSON point feature in a dataset file.
type feature struct {
	Type     string `json:"type"`
	Geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"` // [longitude, latitude]
	} `json:"geometry"`
	Properties struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		NameReading     string `json:"name_reading"`
		Region          string `json:"region"`
		Address         string `json:"address"`
		Type            string `json:"type"`
		Characteristics string `json:"characteristics"`
		Source          string `json:"source"`
	} `json:"properties"`
}

// featureCollection is the standard GeoJSON wrapper. Extra dataset files may
// instead hold a bare array of features.
type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

// Loader holds the parsed dataset. Pins are parsed once and cached until
// Reload is called.
type Loader struct {
	logger   *slog.Logger
	classify Classifier
	dir      string // when set, overrides the embedded files

	mu   sync.RWMutex
	pins []domain.Pin
	byID map[string]int
}

// New creates a dataset loader. When dir is empty the embedded files are
// used; otherwise every *.json file in dir is loaded in name order.
func New(logger *slog.Logger, classify Classifier, dir string) *Loader {
	return &Loader{
		logger:   logger,
		classify: classify,
		dir:      dir,
	}
}

// Load parses the dataset files and replaces the cached pins.
func (l *Loader) Load() error {
	var files [][]byte
	var err error
	if l.dir != "" {
		files, err = readDir(l.dir)
	} else {
		files, err = readEmbedded()
	}
	if err != nil {
		return err
	}

	var pins []domain.Pin
	byID := make(map[string]int)
	for _, data := range files {
		features, err := parseFeatures(data)
		if err != nil {
			return err
		}
		for _, f := range features {
			pin, ok := l.featureToPin(f)
			if !ok {
				continue
			}
			if _, dup := byID[pin.ID]; dup {
				l.logger.Warn("duplicate pin id in dataset, keeping first", "pin_id", pin.ID)
				continue
			}
			byID[pin.ID] = len(pins)
			pins = append(pins, pin)
		}
	}

	l.mu.Lock()
	l.pins = pins
	l.byID = byID
	l.mu.Unlock()

	l.logger.Info("dataset loaded", "pins", len(pins), "files", len(files))
	return nil
}

// Pins returns the cached dataset pins. The returned slice is shared and
// must not be mutated.
func (l *Loader) Pins() []domain.Pin {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pins
}

// Pin looks up a dataset pin by id.
func (l *Loader) Pin(id string) (domain.Pin, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.byID[id]
	if !ok {
		return domain.Pin{}, false
	}
	return l.pins[i], true
}

// Count returns the number of dataset pins.
func (l *Loader) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.pins)
}

// CustomPin converts a user-created bakery into a pin. The region is always
// derived from the coordinate.
func (l *Loader) CustomPin(b domain.CustomBakery) domain.Pin {
	return domain.Pin{
		ID:          b.ID,
		Lat:         b.Lat,
		Lng:         b.Lng,
		Name:        b.Name,
		NameReading: b.Name,
		Type:        b.Type,
		Address:     b.Address,
		Region:      l.classify(b.Lat, b.Lng),
		IsCustom:    true,
	}
}

// featureToPin normalizes a raw feature. Missing fields get fallbacks so a
// sparse feature still produces a usable pin. Features without a point
// coordinate are skipped.
func (l *Loader) featureToPin(f feature) (domain.Pin, bool) {
	if len(f.Geometry.Coordinates) < 2 {
		l.logger.Warn("skipping feature without coordinates", "name", f.Properties.Name)
		return domain.Pin{}, false
	}
	lng, lat := f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]

	name := f.Properties.Name
	if name == "" {
		name = "Boulangerie"
	}
	reading := f.Properties.NameReading
	if reading == "" {
		reading = name
	}
	pinType := domain.PinType(f.Properties.Type)
	if !pinType.Valid() {
		pinType = domain.PinTypeBoulangerie
	}
	id := f.Properties.ID
	if id == "" {
		id = coordID(lng, lat)
	}
	address := f.Properties.Address
	if address == "" {
		address = f.Properties.Region
	}
	region := f.Properties.Region
	if region == "" {
		region = l.classify(lat, lng)
	}

	return domain.Pin{
		ID:              id,
		Lat:             lat,
		Lng:             lng,
		Name:            name,
		NameReading:     reading,
		Type:            pinType,
		Address:         address,
		Region:          region,
		Characteristics: f.Properties.Characteristics,
	}, true
}

// coordID builds the fallback id for features that ship without one.
// Coordinates keep GeoJSON order, longitude first.
func coordID(lng, lat float64) string {
	return "bakery-" + strconv.FormatFloat(lng, 'f', -1, 64) + "-" + strconv.FormatFloat(lat, 'f', -1, 64)
}

// parseFeatures accepts either a FeatureCollection or a bare feature array.
func parseFeatures(data []byte) ([]feature, error) {
	trimmed := strings.TrimLeftFunc(string(data), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if strings.HasPrefix(trimmed, "[") {
		var features []feature
		if err := json.Unmarshal(data, &features); err != nil {
			return nil, fmt.Errorf("parse feature array: %w", err)
		}
		return features, nil
	}

	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse feature collection: %w", err)
	}
	return fc.Features, nil
}

// readEmbedded returns the embedded dataset files in name order.
func readEmbedded() ([][]byte, error) {
	entries, err := fs.Glob(embeddedData, "data/*.json")
	if err != nil {
		return nil, fmt.Errorf("glob embedded dataset: %w", err)
	}
	sort.Strings(entries)

	files := make([][]byte, 0, len(entries))
	for _, name := range entries {
		data, err := embeddedData.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read embedded dataset %s: %w", name, err)
		}
		files = append(files, data)
	}
	return files, nil
}

// readDir returns every *.json file in dir in name order.
func readDir(dir string) ([][]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dataset dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	files := make([][]byte, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name)) //#nosec G304 -- dataset dir comes from config
		if err != nil {
			return nil, fmt.Errorf("read dataset file %s: %w", name, err)
		}
		files = append(files, data)
	}
	return files, nil
}
