// Package service implements the registry business rules on top of a
// storage.Store.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rfeldman/wedsite/internal/models"
	"github.com/rfeldman/wedsite/internal/storage"
)

// ErrInvalidAmount is returned for non-positive contribution amounts.
var ErrInvalidAmount = errors.New("contribution must be a positive number")

// RegistryService holds the business logic for registry operations.
// Persistence is delegated to the injected store.
type RegistryService struct {
	store storage.Store
}

// NewRegistryService creates a new RegistryService with the given storage backend.
func NewRegistryService(store storage.Store) *RegistryService {
	return &RegistryService{store: store}
}

// GetAllItems returns every registry item. Store failures propagate unchanged.
func (s *RegistryService) GetAllItems(ctx context.Context) ([]models.RegistryItem, error) {
	return s.store.GetAllItems(ctx)
}

// GetItemByID returns one item or storage.ErrItemNotFound.
func (s *RegistryService) GetItemByID(ctx context.Context, id string) (*models.RegistryItem, error) {
	return s.store.GetItemByID(ctx, id)
}

// CreateItem creates a new item. The store zeroes the funding state, so a
// freshly created item is always unpurchased with no contributions. Input
// validation is the caller's responsibility.
func (s *RegistryService) CreateItem(ctx context.Context, item *models.RegistryItem) error {
	return s.store.CreateItem(ctx, item)
}

// UpdateItem applies a partial admin edit. Contributors cannot be set through
// this path; storage.ItemUpdate has no field for them.
func (s *RegistryService) UpdateItem(ctx context.Context, id string, update storage.ItemUpdate) (*models.RegistryItem, error) {
	return s.store.UpdateItem(ctx, id, update)
}

// DeleteItem removes an item. Hard delete; there is no soft-delete concept.
func (s *RegistryService) DeleteItem(ctx context.Context, id string) error {
	return s.store.DeleteItem(ctx, id)
}

// ContributeToItem records a contribution to (or claim of) an item.
//
// The guards here run in a fixed order so callers get a specific error as
// early as possible: amount, existence, purchased state, remaining balance.
// They are advisory only. The store repeats the purchased/remaining checks
// inside its transaction, which is what actually prevents two racing
// contributions from overdrawing the item; see storage.Store.
func (s *RegistryService) ContributeToItem(ctx context.Context, itemID string, c storage.Contribution) (*models.RegistryItem, error) {
	if c.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	item, err := s.store.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.Purchased {
		return nil, storage.ErrAlreadyPurchased
	}

	if c.Amount > item.Remaining() {
		return nil, storage.ErrExceedsRemaining
	}

	updated, err := s.store.ContributeToItem(ctx, itemID, c)
	if err != nil {
		// The advisory checks passed but the transaction refused: a
		// concurrent contribution won the race.
		slog.Warn("contribution rejected by transaction",
			"item_id", itemID,
			"amount", c.Amount,
			"error", err,
		)
		return nil, err
	}

	return updated, nil
}
