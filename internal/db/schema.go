package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS profiles (
    id            INTEGER PRIMARY KEY,
    full_name     TEXT NOT NULL,
    email         TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'employee' CHECK (role IN ('admin', 'manager', 'employee')),
    branch        TEXT,
    cost_centre   TEXT,
    manager_id    INTEGER REFERENCES profiles(id) ON DELETE SET NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_email_active
    ON profiles(email) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS items (
    id                  INTEGER PRIMARY KEY,
    name                TEXT NOT NULL,
    category            TEXT NOT NULL CHECK (category IN ('Uniform', 'Laptop', 'Phone', 'Accessory')),
    size                TEXT,
    supplier            TEXT,
    stock_balance       INTEGER NOT NULL DEFAULT 0 CHECK (stock_balance >= 0),
    unit_cost           REAL CHECK (unit_cost IS NULL OR unit_cost >= 0),
    low_stock_threshold INTEGER,
    created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS stock_received (
    id            INTEGER PRIMARY KEY,
    item_id       INTEGER NOT NULL REFERENCES items(id),
    qty_received  INTEGER NOT NULL CHECK (qty_received > 0),
    received_date TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS requests (
    id            INTEGER PRIMARY KEY,
    user_id       INTEGER NOT NULL REFERENCES profiles(id),
    status        TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'dispatched', 'rejected')),
    notes         TEXT,
    total_cost    REAL NOT NULL DEFAULT 0,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    approved_at   DATETIME,
    approved_by   INTEGER REFERENCES profiles(id),
    dispatched_at DATETIME,
    dispatched_by INTEGER REFERENCES profiles(id)
);

CREATE INDEX IF NOT EXISTS idx_requests_user ON requests(user_id);
CREATE INDEX IF NOT EXISTS idx_requests_status ON requests(status);

CREATE TABLE IF NOT EXISTS request_items (
    id         INTEGER PRIMARY KEY,
    request_id INTEGER NOT NULL REFERENCES requests(id),
    item_id    INTEGER NOT NULL REFERENCES items(id),
    quantity   INTEGER NOT NULL CHECK (quantity BETWEEN 1 AND 10),
    size       TEXT,
    unit_cost  REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_request_items_request ON request_items(request_id);

CREATE TABLE IF NOT EXISTS request_costs (
    request_id      INTEGER PRIMARY KEY REFERENCES requests(id),
    embroidery_cost REAL NOT NULL DEFAULT 0 CHECK (embroidery_cost >= 0),
    shipping_cost   REAL NOT NULL DEFAULT 0 CHECK (shipping_cost >= 0)
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
