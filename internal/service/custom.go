package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/painmapapp/painmap-server/internal/domain"
	"github.com/painmapapp/painmap-server/internal/errors"
	"github.com/painmapapp/painmap-server/internal/store"
	"github.com/painmapapp/painmap-server/internal/validation"
)

// CustomBakeryService manages user-added bakeries.
type CustomBakeryService struct {
	store     *store.Store
	pins      *PinService
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCustomBakeryService creates a new custom bakery service.
func NewCustomBakeryService(st *store.Store, pins *PinService, logger *slog.Logger) *CustomBakeryService {
	return &CustomBakeryService{
		store:     st,
		pins:      pins,
		validator: validation.New(),
		logger:    logger,
	}
}

// customBakeryFields carries the validatable fields of an add request.
type customBakeryFields struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Type    string  `json:"type" validate:"pintype"`
	Lat     float64 `json:"lat" validate:"latitude"`
	Lng     float64 `json:"lng" validate:"longitude"`
	Address string  `json:"address" validate:"max=500"`
}

// customBakeryUpdateFields mirrors customBakeryFields for partial updates.
// Nil fields are absent from the request and skip validation.
type customBakeryUpdateFields struct {
	Name    *string  `json:"name" validate:"omitempty,max=200"`
	Type    *string  `json:"type" validate:"omitempty,pintype"`
	Lat     *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng     *float64 `json:"lng" validate:"omitempty,longitude"`
	Address *string  `json:"address" validate:"omitempty,max=500"`
}

// Add creates a custom bakery and indexes it for search.
func (s *CustomBakeryService) Add(ctx context.Context, name string, pinType domain.PinType, lat, lng float64, address string) (domain.CustomBakery, error) {
	name = strings.TrimSpace(name)
	if err := s.validator.Validate(customBakeryFields{
		Name:    name,
		Type:    string(pinType),
		Lat:     lat,
		Lng:     lng,
		Address: address,
	}); err != nil {
		return domain.CustomBakery{}, err
	}

	bakery, err := s.store.AddCustomBakery(ctx, name, pinType, lat, lng, address)
	if err != nil {
		return domain.CustomBakery{}, err
	}

	if err := s.pins.index.Upsert(s.pins.dataset.CustomPin(bakery)); err != nil {
		s.logger.Warn("failed to index custom bakery", "bakery_id", bakery.ID, "error", err)
	}

	s.logger.Info("custom bakery added", "bakery_id", bakery.ID, "name", bakery.Name)
	return bakery, nil
}

// Update applies a partial update. Unknown ids return a not found error.
func (s *CustomBakeryService) Update(ctx context.Context, bakeryID string, update domain.CustomBakeryUpdate) (domain.CustomBakery, error) {
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if trimmed == "" {
			return domain.CustomBakery{}, errors.Validation("name cannot be empty")
		}
		update.Name = &trimmed
	}

	fields := customBakeryUpdateFields{
		Name:    update.Name,
		Lat:     update.Lat,
		Lng:     update.Lng,
		Address: update.Address,
	}
	if update.Type != nil {
		t := string(*update.Type)
		fields.Type = &t
	}
	if err := s.validator.Validate(fields); err != nil {
		return domain.CustomBakery{}, err
	}

	bakery, found, err := s.store.UpdateCustomBakery(ctx, bakeryID, update)
	if err != nil {
		return domain.CustomBakery{}, err
	}
	if !found {
		return domain.CustomBakery{}, errors.NotFoundf("custom bakery %s not found", bakeryID)
	}

	if err := s.pins.index.Upsert(s.pins.dataset.CustomPin(bakery)); err != nil {
		s.logger.Warn("failed to reindex custom bakery", "bakery_id", bakery.ID, "error", err)
	}
	return bakery, nil
}

// Delete removes a custom bakery together with its tried mark, want-to-go
// membership, and memo. Deleting an unknown id succeeds without effect.
func (s *CustomBakeryService) Delete(ctx context.Context, bakeryID string) error {
	deleted, err := s.store.DeleteCustomBakery(ctx, bakeryID)
	if err != nil {
		return err
	}
	if !deleted {
		return nil
	}

	if err := s.pins.index.Delete(bakeryID); err != nil {
		s.logger.Warn("failed to deindex custom bakery", "bakery_id", bakeryID, "error", err)
	}

	s.logger.Info("custom bakery deleted", "bakery_id", bakeryID)
	return nil
}

// List returns all custom bakeries.
func (s *CustomBakeryService) List(_ context.Context) []domain.CustomBakery {
	return s.store.CustomBakeries()
}
