package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/painmapapp/painmap-server/internal/domain"
)

func (s *Server) registerMemoRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getMemo",
		Method:      http.MethodGet,
		Path:        "/api/v1/pins/{id}/memo",
		Summary:     "Get memo",
		Description: "Returns the memo attached to a pin",
		Tags:        []string{"Memos"},
	}, s.handleGetMemo)

	huma.Register(s.api, huma.Operation{
		OperationID: "setMemo",
		Method:      http.MethodPut,
		Path:        "/api/v1/pins/{id}/memo",
		Summary:     "Set memo",
		Description: "Creates or replaces the memo note and rating. Rating 0 clears the rating; photos are preserved.",
		Tags:        []string{"Memos"},
	}, s.handleSetMemo)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteMemo",
		Method:      http.MethodDelete,
		Path:        "/api/v1/pins/{id}/memo",
		Summary:     "Delete memo",
		Description: "Removes the memo, rating, and photo references. Idempotent.",
		Tags:        []string{"Memos"},
	}, s.handleDeleteMemo)

	huma.Register(s.api, huma.Operation{
		OperationID: "addMemoPhoto",
		Method:      http.MethodPost,
		Path:        "/api/v1/pins/{id}/memo/photos",
		Summary:     "Add memo photo",
		Description: "Attaches a photo reference, creating an empty memo if needed. Additions past the cap are silently refused.",
		Tags:        []string{"Memos"},
	}, s.handleAddMemoPhoto)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeMemoPhoto",
		Method:      http.MethodDelete,
		Path:        "/api/v1/pins/{id}/memo/photos",
		Summary:     "Remove memo photo",
		Description: "Detaches a photo reference. Removing an absent reference is a no-op.",
		Tags:        []string{"Memos"},
	}, s.handleRemoveMemoPhoto)
}

// === DTOs ===

// MemoResponse contains memo data in API responses.
type MemoResponse struct {
	ID        string    `json:"id" doc:"Pin identifier the memo is attached to"`
	Note      string    `json:"note" doc:"Free-text note"`
	Rating    int       `json:"rating,omitempty" doc:"Rating 1-5, omitted when unrated"`
	Photos    []string  `json:"photos,omitempty" doc:"Photo reference URIs"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last modification time"`
}

// MemoOutput wraps the memo for Huma.
type MemoOutput struct {
	Body MemoResponse
}

// SetMemoInput carries the memo note and rating.
type SetMemoInput struct {
	ID   string `path:"id" maxLength:"128" doc:"Pin identifier"`
	Body struct {
		Note   string `json:"note" maxLength:"4000" doc:"Free-text note"`
		Rating int    `json:"rating,omitempty" minimum:"0" maximum:"5" doc:"Rating 1-5, 0 clears"`
	}
}

// MemoPhotoInput carries a photo reference URI.
type MemoPhotoInput struct {
	ID   string `path:"id" maxLength:"128" doc:"Pin identifier"`
	Body struct {
		URI string `json:"uri" minLength:"1" maxLength:"2048" doc:"Photo reference URI"`
	}
}

func memoResponse(memo domain.Memo) MemoResponse {
	return MemoResponse{
		ID:        memo.ID,
		Note:      memo.Note,
		Rating:    memo.Rating,
		Photos:    memo.Photos,
		UpdatedAt: memo.UpdatedAt,
	}
}

// === Handlers ===

func (s *Server) handleGetMemo(ctx context.Context, input *PinInput) (*MemoOutput, error) {
	memo, err := s.services.Memos.GetMemo(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &MemoOutput{Body: memoResponse(memo)}, nil
}

func (s *Server) handleSetMemo(ctx context.Context, input *SetMemoInput) (*MemoOutput, error) {
	memo, err := s.services.Memos.SetMemo(ctx, input.ID, input.Body.Note, input.Body.Rating)
	if err != nil {
		return nil, err
	}
	return &MemoOutput{Body: memoResponse(memo)}, nil
}

func (s *Server) handleDeleteMemo(ctx context.Context, input *PinInput) (*struct{}, error) {
	if err := s.services.Memos.DeleteMemo(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleAddMemoPhoto(ctx context.Context, input *MemoPhotoInput) (*MemoOutput, error) {
	memo, err := s.services.Memos.AddPhoto(ctx, input.ID, input.Body.URI)
	if err != nil {
		return nil, err
	}
	return &MemoOutput{Body: memoResponse(memo)}, nil
}

func (s *Server) handleRemoveMemoPhoto(ctx context.Context, input *MemoPhotoInput) (*MemoOutput, error) {
	memo, err := s.services.Memos.RemovePhoto(ctx, input.ID, input.Body.URI)
	if err != nil {
		return nil, err
	}
	return &MemoOutput{Body: memoResponse(memo)}, nil
}
