package database

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

// LedgerMigrations returns the schema statements for the ledger and the directory
// tables it references. Each string is one statement.
func LedgerMigrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id             BIGSERIAL PRIMARY KEY,
			username       VARCHAR(100) NOT NULL UNIQUE,
			wallet_address VARCHAR(42) UNIQUE,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_wallet_lower ON users (LOWER(wallet_address))`,

		`CREATE TABLE IF NOT EXISTS items (
			id         BIGSERIAL PRIMARY KEY,
			name       VARCHAR(255) NOT NULL,
			price      NUMERIC(36, 18) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS events (
			id         BIGSERIAL PRIMARY KEY,
			name       VARCHAR(255) NOT NULL,
			category   VARCHAR(100) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS ledger_entries (
			id                   BIGSERIAL PRIMARY KEY,
			amount               NUMERIC(36, 18) NOT NULL CHECK (amount >= 0),
			direction            VARCHAR(6) NOT NULL CHECK (direction IN ('credit', 'debit')),
			tx_hash              VARCHAR(80) UNIQUE,
			description          VARCHAR(500) NOT NULL,
			status               VARCHAR(10) NOT NULL CHECK (status IN ('pending', 'confirmed', 'failed')),
			user_id              BIGINT NOT NULL REFERENCES users(id),
			event_id             BIGINT REFERENCES events(id),
			item_id              BIGINT REFERENCES items(id),
			counterparty_address VARCHAR(42),
			trade_type           VARCHAR(32),
			item_name            VARCHAR(255),
			item_category        VARCHAR(100),
			block_number         BIGINT,
			gas_used             BIGINT,
			gas_price            NUMERIC(78, 0),
			mined_at             TIMESTAMPTZ,
			created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_user_created ON ledger_entries (user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_pending ON ledger_entries (created_at) WHERE status = 'pending'`,
	}
}

// Migrate applies LedgerMigrations in order.
func Migrate(db *sql.DB) error {
	for i, stmt := range LedgerMigrations() {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	logrus.WithField("statements", len(LedgerMigrations())).Info("Ledger schema up to date")
	return nil
}
