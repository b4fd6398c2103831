package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerMarkRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "markTried",
		Method:      http.MethodPut,
		Path:        "/api/v1/pins/{id}/tried",
		Summary:     "Mark pin tried",
		Description: "Records a visit. Marking twice keeps the original timestamp.",
		Tags:        []string{"Marks"},
	}, s.handleMarkTried)

	huma.Register(s.api, huma.Operation{
		OperationID: "unmarkTried",
		Method:      http.MethodDelete,
		Path:        "/api/v1/pins/{id}/tried",
		Summary:     "Unmark pin tried",
		Description: "Removes the visit record. Idempotent.",
		Tags:        []string{"Marks"},
	}, s.handleUnmarkTried)

	huma.Register(s.api, huma.Operation{
		OperationID: "addWantToGo",
		Method:      http.MethodPut,
		Path:        "/api/v1/pins/{id}/want-to-go",
		Summary:     "Add want-to-go",
		Description: "Puts a pin on the want-to-go list",
		Tags:        []string{"Marks"},
	}, s.handleAddWantToGo)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeWantToGo",
		Method:      http.MethodDelete,
		Path:        "/api/v1/pins/{id}/want-to-go",
		Summary:     "Remove want-to-go",
		Description: "Takes a pin off the want-to-go list. Idempotent.",
		Tags:        []string{"Marks"},
	}, s.handleRemoveWantToGo)

	huma.Register(s.api, huma.Operation{
		OperationID: "excludePin",
		Method:      http.MethodPut,
		Path:        "/api/v1/pins/{id}/excluded",
		Summary:     "Exclude pin",
		Description: "Hides a pin from the map when hide-excluded is on",
		Tags:        []string{"Marks"},
	}, s.handleExclude)

	huma.Register(s.api, huma.Operation{
		OperationID: "unexcludePin",
		Method:      http.MethodDelete,
		Path:        "/api/v1/pins/{id}/excluded",
		Summary:     "Unexclude pin",
		Description: "Restores a hidden pin. Idempotent.",
		Tags:        []string{"Marks"},
	}, s.handleUnexclude)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearExcluded",
		Method:      http.MethodDelete,
		Path:        "/api/v1/excluded",
		Summary:     "Clear excluded",
		Description: "Restores every hidden pin at once",
		Tags:        []string{"Marks"},
	}, s.handleClearExcluded)
}

// === DTOs ===

// TriedMarkResponse reports a recorded visit.
type TriedMarkResponse struct {
	ID      string    `json:"id" doc:"Pin identifier"`
	TriedAt time.Time `json:"tried_at" doc:"When the pin was first marked tried"`
}

// TriedMarkOutput wraps the tried mark for Huma.
type TriedMarkOutput struct {
	Body TriedMarkResponse
}

// MarkStatusResponse reports the overlay state after a mark mutation.
type MarkStatusResponse struct {
	ID       string `json:"id" doc:"Pin identifier"`
	Tried    bool   `json:"tried"`
	WantToGo bool   `json:"want_to_go"`
	Excluded bool   `json:"excluded"`
}

// MarkStatusOutput wraps the overlay state for Huma.
type MarkStatusOutput struct {
	Body MarkStatusResponse
}

// === Handlers ===

func (s *Server) markStatus(ctx context.Context, pinID string) *MarkStatusOutput {
	view, err := s.services.Pins.GetPin(ctx, pinID)
	if err != nil {
		// Pin was deleted between mutation and readback: report the bare id.
		return &MarkStatusOutput{Body: MarkStatusResponse{ID: pinID}}
	}
	return &MarkStatusOutput{
		Body: MarkStatusResponse{
			ID:       pinID,
			Tried:    view.Tried,
			WantToGo: view.WantToGo,
			Excluded: view.Excluded,
		},
	}
}

func (s *Server) handleMarkTried(ctx context.Context, input *PinInput) (*TriedMarkOutput, error) {
	mark, err := s.services.Marks.MarkTried(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &TriedMarkOutput{
		Body: TriedMarkResponse{ID: mark.ID, TriedAt: mark.TriedAt},
	}, nil
}

func (s *Server) handleUnmarkTried(ctx context.Context, input *PinInput) (*MarkStatusOutput, error) {
	if err := s.services.Marks.UnmarkTried(ctx, input.ID); err != nil {
		return nil, err
	}
	return s.markStatus(ctx, input.ID), nil
}

func (s *Server) handleAddWantToGo(ctx context.Context, input *PinInput) (*MarkStatusOutput, error) {
	if err := s.services.Marks.AddWantToGo(ctx, input.ID); err != nil {
		return nil, err
	}
	return s.markStatus(ctx, input.ID), nil
}

func (s *Server) handleRemoveWantToGo(ctx context.Context, input *PinInput) (*MarkStatusOutput, error) {
	if err := s.services.Marks.RemoveWantToGo(ctx, input.ID); err != nil {
		return nil, err
	}
	return s.markStatus(ctx, input.ID), nil
}

func (s *Server) handleExclude(ctx context.Context, input *PinInput) (*MarkStatusOutput, error) {
	if err := s.services.Marks.Exclude(ctx, input.ID); err != nil {
		return nil, err
	}
	return s.markStatus(ctx, input.ID), nil
}

func (s *Server) handleUnexclude(ctx context.Context, input *PinInput) (*MarkStatusOutput, error) {
	if err := s.services.Marks.Unexclude(ctx, input.ID); err != nil {
		return nil, err
	}
	return s.markStatus(ctx, input.ID), nil
}

func (s *Server) handleClearExcluded(ctx context.Context, _ *struct{}) (*struct{}, error) {
	if err := s.services.Marks.ClearExcluded(ctx); err != nil {
		return nil, err
	}
	return nil, nil
}
