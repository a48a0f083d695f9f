package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS registry_items (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL,
    price REAL NOT NULL,
    image TEXT NOT NULL DEFAULT '',
    vendor_url TEXT,
    quantity INTEGER NOT NULL DEFAULT 1,
    is_group_gift INTEGER NOT NULL DEFAULT 0,
    purchased INTEGER NOT NULL DEFAULT 0,
    purchaser_name TEXT,
    amount_contributed REAL NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS contributors (
    id TEXT PRIMARY KEY,
    item_id TEXT NOT NULL,
    name TEXT NOT NULL,
    amount REAL NOT NULL,
    date INTEGER NOT NULL,
    FOREIGN KEY (item_id) REFERENCES registry_items(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_contributors_item_id ON contributors(item_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
