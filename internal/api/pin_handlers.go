package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/painmapapp/painmap-server/internal/domain"
	"github.com/painmapapp/painmap-server/internal/geo"
	"github.com/painmapapp/painmap-server/internal/service"
)

func (s *Server) registerPinRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPins",
		Method:      http.MethodGet,
		Path:        "/api/v1/pins",
		Summary:     "List pins",
		Description: "Returns dataset and custom pins with overlay state, narrowed by filters and an optional search query",
		Tags:        []string{"Pins"},
	}, s.handleListPins)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPin",
		Method:      http.MethodGet,
		Path:        "/api/v1/pins/{id}",
		Summary:     "Get pin",
		Description: "Returns a single pin with overlay state",
		Tags:        []string{"Pins"},
	}, s.handleGetPin)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPinLinks",
		Method:      http.MethodGet,
		Path:        "/api/v1/pins/{id}/links",
		Summary:     "Get pin links",
		Description: "Returns external map and web search URLs for a pin",
		Tags:        []string{"Pins"},
	}, s.handleGetPinLinks)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRegions",
		Method:      http.MethodGet,
		Path:        "/api/v1/regions",
		Summary:     "List regions",
		Description: "Returns the display region groups in fixed order",
		Tags:        []string{"Pins"},
	}, s.handleListRegions)

	huma.Register(s.api, huma.Operation{
		OperationID: "getStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats",
		Summary:     "Get stats",
		Description: "Returns overall and per-region progress counts",
		Tags:        []string{"Stats"},
	}, s.handleGetStats)
}

// === DTOs ===

// ListPinsInput narrows the pin listing. Omitted parameters fall back to the
// server's current filter selection.
type ListPinsInput struct {
	Mode         string `query:"mode" enum:"all,tried,wantToGo" doc:"Filter mode override"`
	Region       string `query:"region" doc:"Region override"`
	HideExcluded string `query:"hide_excluded" enum:"true,false" doc:"Hide excluded pins override"`
	Query        string `query:"q" maxLength:"200" doc:"Full-text search query"`
}

// PinListResponse contains the pins matching the request.
type PinListResponse struct {
	Pins  []service.PinView `json:"pins" doc:"Matching pins with overlay state"`
	Total int               `json:"total" doc:"Number of matching pins"`
}

// PinListOutput wraps the pin list for Huma.
type PinListOutput struct {
	Body PinListResponse
}

// PinInput identifies a pin by path parameter.
type PinInput struct {
	ID string `path:"id" maxLength:"128" doc:"Pin identifier"`
}

// PinOutput wraps a single pin for Huma.
type PinOutput struct {
	Body service.PinView
}

// PinLinksOutput wraps the external link set for Huma.
type PinLinksOutput struct {
	Body service.PinLinks
}

// RegionsResponse lists the display region groups.
type RegionsResponse struct {
	Groups []geo.Group `json:"groups" doc:"Region groups in display order"`
}

// RegionsOutput wraps the region groups for Huma.
type RegionsOutput struct {
	Body RegionsResponse
}

// StatsOutput wraps the progress stats for Huma.
type StatsOutput struct {
	Body service.Stats
}

// === Handlers ===

func (s *Server) handleListPins(ctx context.Context, input *ListPinsInput) (*PinListOutput, error) {
	opts := service.ListOptions{Query: input.Query}

	if input.Mode != "" {
		mode := domain.FilterMode(input.Mode)
		opts.Mode = &mode
	}
	if input.Region != "" {
		opts.Region = &input.Region
	}
	if input.HideExcluded != "" {
		hide := input.HideExcluded == "true"
		opts.HideExcluded = &hide
	}

	views, err := s.services.Pins.ListPins(ctx, opts)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []service.PinView{}
	}

	return &PinListOutput{
		Body: PinListResponse{
			Pins:  views,
			Total: len(views),
		},
	}, nil
}

func (s *Server) handleGetPin(ctx context.Context, input *PinInput) (*PinOutput, error) {
	view, err := s.services.Pins.GetPin(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &PinOutput{Body: view}, nil
}

func (s *Server) handleGetPinLinks(ctx context.Context, input *PinInput) (*PinLinksOutput, error) {
	links, err := s.services.Links.Links(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &PinLinksOutput{Body: links}, nil
}

func (s *Server) handleListRegions(_ context.Context, _ *struct{}) (*RegionsOutput, error) {
	return &RegionsOutput{
		Body: RegionsResponse{Groups: s.services.Pins.Regions()},
	}, nil
}

func (s *Server) handleGetStats(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
	return &StatsOutput{Body: s.services.Stats.Stats(ctx)}, nil
}
