// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/rfeldman/wedsite/internal/models"
	"github.com/rfeldman/wedsite/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// querier is satisfied by both *sql.DB and *sql.Tx so row scanning can be
// shared between plain reads and the contribution transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// _txlock=immediate makes BeginTx take the write lock up front, so the
	// read inside ContributeToItem and the write that follows it are one
	// serialized unit rather than a deferred-lock upgrade.
	db, err := sql.Open("sqlite", dbPath+"?_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; one connection avoids busy errors.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const itemColumns = `id, name, description, category, price, image, vendor_url,
	quantity, is_group_gift, purchased, purchaser_name, amount_contributed, created_at`

// scanItem scans one registry item row without its contributors.
func scanItem(row *sql.Row) (*models.RegistryItem, error) {
	item := &models.RegistryItem{}
	var vendorURL, purchaserName sql.NullString
	err := row.Scan(
		&item.ID, &item.Name, &item.Description, &item.Category, &item.Price,
		&item.Image, &vendorURL, &item.Quantity, &item.IsGroupGift,
		&item.Purchased, &purchaserName, &item.AmountContributed, &item.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan registry item: %w", err)
	}
	item.VendorURL = vendorURL.String
	item.PurchaserName = purchaserName.String
	item.Contributors = []models.Contributor{}
	return item, nil
}

// loadContributors fetches an item's contributors in commit order.
func loadContributors(ctx context.Context, q querier, itemID string) ([]models.Contributor, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT name, amount, date FROM contributors WHERE item_id = ? ORDER BY date, id",
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get contributors: %w", err)
	}
	defer rows.Close()

	contributors := []models.Contributor{}
	for rows.Next() {
		var c models.Contributor
		var date int64
		if err := rows.Scan(&c.Name, &c.Amount, &date); err != nil {
			return nil, fmt.Errorf("failed to scan contributor: %w", err)
		}
		c.Date = time.Unix(date, 0).UTC()
		contributors = append(contributors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contributors: %w", err)
	}
	return contributors, nil
}

// getItem loads one item with its contributors using q.
func getItem(ctx context.Context, q querier, id string) (*models.RegistryItem, error) {
	item, err := scanItem(q.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM registry_items WHERE id = ?", id))
	if err != nil {
		return nil, err
	}
	contributors, err := loadContributors(ctx, q, id)
	if err != nil {
		return nil, err
	}
	item.Contributors = contributors
	return item, nil
}

// GetAllItems retrieves every registry item with its contributors.
func (s *SQLiteStore) GetAllItems(ctx context.Context) ([]models.RegistryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM registry_items ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get registry items: %w", err)
	}
	defer rows.Close()

	items := []models.RegistryItem{}
	for rows.Next() {
		item := models.RegistryItem{}
		var vendorURL, purchaserName sql.NullString
		err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Category, &item.Price,
			&item.Image, &vendorURL, &item.Quantity, &item.IsGroupGift,
			&item.Purchased, &purchaserName, &item.AmountContributed, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registry item: %w", err)
		}
		item.VendorURL = vendorURL.String
		item.PurchaserName = purchaserName.String
		item.Contributors = []models.Contributor{}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate registry items: %w", err)
	}

	for i := range items {
		contributors, err := loadContributors(ctx, s.db, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Contributors = contributors
	}

	return items, nil
}

// GetItemByID retrieves a single item, including its contributors.
func (s *SQLiteStore) GetItemByID(ctx context.Context, id string) (*models.RegistryItem, error) {
	return getItem(ctx, s.db, id)
}

// CreateItem persists a new registry item. The funding fields always start
// zeroed: an item enters the registry unpurchased with no contributions.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.RegistryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}
	item.Purchased = false
	item.PurchaserName = ""
	item.AmountContributed = 0
	item.Contributors = []models.Contributor{}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO registry_items
			(id, name, description, category, price, image, vendor_url,
			 quantity, is_group_gift, purchased, purchaser_name, amount_contributed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, NULL, 0, ?)`,
		item.ID, item.Name, item.Description, item.Category, item.Price,
		item.Image, nullable(item.VendorURL), item.Quantity, item.IsGroupGift,
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert registry item: %w", err)
	}
	return nil
}

// UpdateItem applies a partial update. Contributors are not updatable through
// this path; they only change inside the contribution transaction.
func (s *SQLiteStore) UpdateItem(ctx context.Context, id string, update storage.ItemUpdate) (*models.RegistryItem, error) {
	sets := []string{}
	args := []any{}
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Category != nil {
		add("category", *update.Category)
	}
	if update.Price != nil {
		add("price", *update.Price)
	}
	if update.Image != nil {
		add("image", *update.Image)
	}
	if update.VendorURL != nil {
		add("vendor_url", nullable(*update.VendorURL))
	}
	if update.Quantity != nil {
		add("quantity", *update.Quantity)
	}
	if update.IsGroupGift != nil {
		add("is_group_gift", *update.IsGroupGift)
	}
	if update.Purchased != nil {
		add("purchased", *update.Purchased)
	}
	if update.PurchaserName != nil {
		add("purchaser_name", nullable(*update.PurchaserName))
	}

	if len(sets) > 0 {
		args = append(args, id)
		res, err := s.db.ExecContext(ctx,
			"UPDATE registry_items SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return nil, fmt.Errorf("failed to update registry item: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to check update result: %w", err)
		}
		if affected == 0 {
			return nil, storage.ErrItemNotFound
		}
	}

	return getItem(ctx, s.db, id)
}

// DeleteItem removes an item; its contributors cascade.
func (s *SQLiteStore) DeleteItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM registry_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete registry item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrItemNotFound
	}
	return nil
}

// ContributeToItem records a contribution atomically. The item is re-read and
// the remaining balance re-checked inside the same transaction as the write,
// which is the authoritative guard against concurrent overdraw; the service
// layer's pre-check is advisory only.
func (s *SQLiteStore) ContributeToItem(ctx context.Context, id string, c storage.Contribution) (*models.RegistryItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := scanItem(tx.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM registry_items WHERE id = ?", id))
	if err != nil {
		return nil, err
	}

	if item.Purchased {
		return nil, storage.ErrAlreadyPurchased
	}
	if c.Amount > item.Remaining() {
		return nil, storage.ErrExceedsRemaining
	}

	now := time.Now()
	if item.IsGroupGift {
		newTotal := item.AmountContributed + c.Amount
		purchased := newTotal >= item.Price
		_, err = tx.ExecContext(ctx,
			"UPDATE registry_items SET amount_contributed = ?, purchased = ? WHERE id = ?",
			newTotal, purchased, id,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update contributed amount: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO contributors (id, item_id, name, amount, date) VALUES (?, ?, ?, ?, ?)",
			uuid.New().String(), id, c.Name, c.Amount, now.Unix(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert contributor: %w", err)
		}
	} else {
		// Non-group items have no partial-claim concept: the accepted
		// contribution claims the whole item in one write.
		_, err = tx.ExecContext(ctx,
			"UPDATE registry_items SET purchased = 1, purchaser_name = ?, amount_contributed = price WHERE id = ?",
			c.Name, id,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to claim item: %w", err)
		}
	}

	updated, err := getItem(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return updated, nil
}

// nullable maps "" to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
