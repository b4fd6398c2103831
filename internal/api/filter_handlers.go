package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/painmapapp/painmap-server/internal/domain"
	"github.com/painmapapp/painmap-server/internal/store"
)

func (s *Server) registerFilterRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getFilters",
		Method:      http.MethodGet,
		Path:        "/api/v1/filters",
		Summary:     "Get filters",
		Description: "Returns the current filter selection. Filters reset to defaults on every server start.",
		Tags:        []string{"Filters"},
	}, s.handleGetFilters)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateFilters",
		Method:      http.MethodPut,
		Path:        "/api/v1/filters",
		Summary:     "Update filters",
		Description: "Applies the provided fields to the filter selection; omitted fields are left untouched",
		Tags:        []string{"Filters"},
	}, s.handleUpdateFilters)
}

// === DTOs ===

// FilterResponse contains the filter selection in API responses.
type FilterResponse struct {
	Mode         string `json:"mode" doc:"all, tried, or wantToGo"`
	Region       string `json:"region" doc:"Region restriction, empty for all"`
	HideExcluded bool   `json:"hide_excluded"`
	Distance     string `json:"distance" doc:"Reserved distance filter"`
}

// FilterOutput wraps the filter selection for Huma.
type FilterOutput struct {
	Body FilterResponse
}

// UpdateFiltersInput carries a partial filter update.
type UpdateFiltersInput struct {
	Body struct {
		Mode         *string `json:"mode,omitempty" enum:"all,tried,wantToGo"`
		Region       *string `json:"region,omitempty" maxLength:"64"`
		HideExcluded *bool   `json:"hide_excluded,omitempty"`
		Distance     *string `json:"distance,omitempty" enum:"none,500m,1km,3km"`
	}
}

func filterResponse(state domain.FilterState) FilterResponse {
	return FilterResponse{
		Mode:         string(state.Mode),
		Region:       state.Region,
		HideExcluded: state.HideExcluded,
		Distance:     string(state.Distance),
	}
}

// === Handlers ===

func (s *Server) handleGetFilters(ctx context.Context, _ *struct{}) (*FilterOutput, error) {
	return &FilterOutput{Body: filterResponse(s.services.Filters.Filters(ctx))}, nil
}

func (s *Server) handleUpdateFilters(ctx context.Context, input *UpdateFiltersInput) (*FilterOutput, error) {
	update := store.FilterUpdate{
		Region:       input.Body.Region,
		HideExcluded: input.Body.HideExcluded,
	}
	if input.Body.Mode != nil {
		mode := domain.FilterMode(*input.Body.Mode)
		update.Mode = &mode
	}
	if input.Body.Distance != nil {
		distance := domain.DistanceFilter(*input.Body.Distance)
		update.Distance = &distance
	}

	state, err := s.services.Filters.UpdateFilters(ctx, update)
	if err != nil {
		return nil, err
	}
	return &FilterOutput{Body: filterResponse(state)}, nil
}
