// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/rfeldman/wedsite/internal/models"
)

var (
	// ErrItemNotFound is returned when no registry item exists for an ID.
	ErrItemNotFound = errors.New("registry item not found")

	// ErrAlreadyPurchased is returned when a contribution targets an item
	// that is already fully claimed or funded.
	ErrAlreadyPurchased = errors.New("item has already been purchased")

	// ErrExceedsRemaining is returned when a contribution would overdraw
	// the item's remaining balance.
	ErrExceedsRemaining = errors.New("contribution exceeds the remaining amount")
)

// Contribution is a pending contribution toward a registry item.
type Contribution struct {
	Name   string
	Amount float64
}

// ItemUpdate is a partial update of a registry item. Nil fields are left
// unchanged. Contributors are deliberately absent: they can only be appended
// by the contribution transaction.
type ItemUpdate struct {
	Name          *string
	Description   *string
	Category      *string
	Price         *float64
	Image         *string
	VendorURL     *string
	Quantity      *int
	IsGroupGift   *bool
	Purchased     *bool
	PurchaserName *string
}

// Store defines the interface for registry persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// GetAllItems retrieves every registry item with its contributors.
	GetAllItems(ctx context.Context) ([]models.RegistryItem, error)

	// GetItemByID retrieves one item by ID.
	// Returns ErrItemNotFound if the item does not exist.
	GetItemByID(ctx context.Context, id string) (*models.RegistryItem, error)

	// CreateItem persists a new item. The item.ID and item.CreatedAt fields
	// are populated by the store; Purchased, AmountContributed, and
	// Contributors always start zeroed regardless of the input.
	CreateItem(ctx context.Context, item *models.RegistryItem) error

	// UpdateItem applies a partial update and returns the updated item.
	// Returns ErrItemNotFound if the item does not exist.
	UpdateItem(ctx context.Context, id string, update ItemUpdate) (*models.RegistryItem, error)

	// DeleteItem removes an item and its contributors.
	// Returns ErrItemNotFound if the item does not exist.
	DeleteItem(ctx context.Context, id string) error

	// ContributeToItem records a contribution in a single atomic
	// transaction: it re-reads the item, re-checks the remaining balance,
	// recomputes Purchased, appends the contributor row with a
	// server-assigned timestamp, and commits. The re-check inside the
	// transaction is the authoritative guard against two concurrent
	// contributions overdrawing the same item; a non-transactional
	// read-then-write here would permit double-spending.
	//
	// A non-group item is claimed instead: PurchaserName is set,
	// AmountContributed jumps to the full price, and no contributor row is
	// written.
	ContributeToItem(ctx context.Context, id string, c Contribution) (*models.RegistryItem, error)

	// Close releases any resources held by the store.
	Close() error
}
