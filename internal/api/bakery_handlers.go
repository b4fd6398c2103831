package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/painmapapp/painmap-server/internal/domain"
)

func (s *Server) registerBakeryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCustomBakeries",
		Method:      http.MethodGet,
		Path:        "/api/v1/bakeries",
		Summary:     "List custom bakeries",
		Description: "Returns the user's custom bakeries",
		Tags:        []string{"Custom bakeries"},
	}, s.handleListCustomBakeries)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addCustomBakery",
		Method:        http.MethodPost,
		Path:          "/api/v1/bakeries",
		Summary:       "Add custom bakery",
		Description:   "Creates a user-added bakery pin",
		Tags:          []string{"Custom bakeries"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddCustomBakery)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCustomBakery",
		Method:      http.MethodPatch,
		Path:        "/api/v1/bakeries/{id}",
		Summary:     "Update custom bakery",
		Description: "Applies a partial update to a custom bakery",
		Tags:        []string{"Custom bakeries"},
	}, s.handleUpdateCustomBakery)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCustomBakery",
		Method:      http.MethodDelete,
		Path:        "/api/v1/bakeries/{id}",
		Summary:     "Delete custom bakery",
		Description: "Deletes a custom bakery together with its tried mark, want-to-go membership, and memo. Idempotent.",
		Tags:        []string{"Custom bakeries"},
	}, s.handleDeleteCustomBakery)
}

// === DTOs ===

// CustomBakeryResponse contains custom bakery data in API responses.
type CustomBakeryResponse struct {
	ID        string    `json:"id" doc:"Bakery identifier, always custom- prefixed"`
	Name      string    `json:"name"`
	Type      string    `json:"type" doc:"boulangerie, patisserie, or artisan"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Address   string    `json:"address,omitempty"`
	Region    string    `json:"region" doc:"Region derived from coordinates"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomBakeryOutput wraps a custom bakery for Huma.
type CustomBakeryOutput struct {
	Body CustomBakeryResponse
}

// CustomBakeryListResponse lists the user's custom bakeries.
type CustomBakeryListResponse struct {
	Bakeries []CustomBakeryResponse `json:"bakeries"`
	Total    int                    `json:"total"`
}

// CustomBakeryListOutput wraps the list for Huma.
type CustomBakeryListOutput struct {
	Body CustomBakeryListResponse
}

// AddCustomBakeryInput carries the add-bakery form.
type AddCustomBakeryInput struct {
	Body struct {
		Name    string  `json:"name" minLength:"1" maxLength:"200" doc:"Display name"`
		Type    string  `json:"type" enum:"boulangerie,patisserie,artisan" doc:"Bakery type"`
		Lat     float64 `json:"lat" minimum:"-90" maximum:"90" doc:"Latitude"`
		Lng     float64 `json:"lng" minimum:"-180" maximum:"180" doc:"Longitude"`
		Address string  `json:"address,omitempty" maxLength:"500" doc:"Optional street address"`
	}
}

// UpdateCustomBakeryInput carries a partial update; omitted fields are left
// untouched.
type UpdateCustomBakeryInput struct {
	ID   string `path:"id" maxLength:"128" doc:"Bakery identifier"`
	Body struct {
		Name    *string  `json:"name,omitempty" maxLength:"200"`
		Type    *string  `json:"type,omitempty" enum:"boulangerie,patisserie,artisan"`
		Lat     *float64 `json:"lat,omitempty" minimum:"-90" maximum:"90"`
		Lng     *float64 `json:"lng,omitempty" minimum:"-180" maximum:"180"`
		Address *string  `json:"address,omitempty" maxLength:"500"`
	}
}

func (s *Server) customBakeryResponse(b domain.CustomBakery) CustomBakeryResponse {
	pin := s.services.Pins.CustomPin(b)
	return CustomBakeryResponse{
		ID:        b.ID,
		Name:      b.Name,
		Type:      string(b.Type),
		Lat:       b.Lat,
		Lng:       b.Lng,
		Address:   b.Address,
		Region:    pin.Region,
		CreatedAt: b.CreatedAt,
	}
}

// === Handlers ===

func (s *Server) handleListCustomBakeries(ctx context.Context, _ *struct{}) (*CustomBakeryListOutput, error) {
	bakeries := s.services.Custom.List(ctx)

	out := make([]CustomBakeryResponse, len(bakeries))
	for i, b := range bakeries {
		out[i] = s.customBakeryResponse(b)
	}

	return &CustomBakeryListOutput{
		Body: CustomBakeryListResponse{Bakeries: out, Total: len(out)},
	}, nil
}

func (s *Server) handleAddCustomBakery(ctx context.Context, input *AddCustomBakeryInput) (*CustomBakeryOutput, error) {
	bakery, err := s.services.Custom.Add(ctx,
		input.Body.Name,
		domain.PinType(input.Body.Type),
		input.Body.Lat,
		input.Body.Lng,
		input.Body.Address,
	)
	if err != nil {
		return nil, err
	}
	return &CustomBakeryOutput{Body: s.customBakeryResponse(bakery)}, nil
}

func (s *Server) handleUpdateCustomBakery(ctx context.Context, input *UpdateCustomBakeryInput) (*CustomBakeryOutput, error) {
	update := domain.CustomBakeryUpdate{
		Name:    input.Body.Name,
		Lat:     input.Body.Lat,
		Lng:     input.Body.Lng,
		Address: input.Body.Address,
	}
	if input.Body.Type != nil {
		t := domain.PinType(*input.Body.Type)
		update.Type = &t
	}

	bakery, err := s.services.Custom.Update(ctx, input.ID, update)
	if err != nil {
		return nil, err
	}
	return &CustomBakeryOutput{Body: s.customBakeryResponse(bakery)}, nil
}

func (s *Server) handleDeleteCustomBakery(ctx context.Context, input *PinInput) (*struct{}, error) {
	if err := s.services.Custom.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}
