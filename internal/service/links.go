package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// PinLinks holds external map and search URLs for a pin.
type PinLinks struct {
	AppleMaps  string `json:"apple_maps"`
	GoogleMaps string `json:"google_maps"`
	WebSearch  string `json:"web_search"`
}

// LinkService builds hand-off URLs for opening a pin in external map apps or
// a web search.
type LinkService struct {
	pins *PinService
}

// NewLinkService creates a new link service.
func NewLinkService(pins *PinService) *LinkService {
	return &LinkService{pins: pins}
}

// Links returns the external URLs for a pin.
func (s *LinkService) Links(ctx context.Context, pinID string) (PinLinks, error) {
	view, err := s.pins.GetPin(ctx, pinID)
	if err != nil {
		return PinLinks{}, err
	}

	lat := strconv.FormatFloat(view.Lat, 'f', -1, 64)
	lng := strconv.FormatFloat(view.Lng, 'f', -1, 64)
	coords := lat + "," + lng

	apple := url.Values{}
	apple.Set("q", view.Name)
	apple.Set("ll", coords)

	google := url.Values{}
	google.Set("api", "1")
	google.Set("query", coords)

	searchTerm := view.Name
	if view.Address != "" {
		searchTerm += " " + view.Address
	}
	web := url.Values{}
	web.Set("q", searchTerm)

	return PinLinks{
		AppleMaps:  fmt.Sprintf("https://maps.apple.com/?%s", apple.Encode()),
		GoogleMaps: fmt.Sprintf("https://www.google.com/maps/search/?%s", google.Encode()),
		WebSearch:  fmt.Sprintf("https://www.google.com/search?%s", web.Encode()),
	}, nil
}
