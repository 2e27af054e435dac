package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/thcfit/shipping-gateway/config"
)

// Postgres holds the relational store behind the audit log and admin users.
type Postgres struct {
	DB *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS shipment_logs (
	log_id                 BIGSERIAL PRIMARY KEY,
	log_type               TEXT NOT NULL,
	action                 TEXT NOT NULL,
	outcome                TEXT NOT NULL,
	error_class            TEXT,
	status_code            INTEGER NOT NULL DEFAULT 0,
	request_id             TEXT,
	request_reference      TEXT,
	booking_ref            TEXT,
	shipper_name           TEXT,
	shipper_company        TEXT,
	shipper_phone          TEXT,
	shipper_country        TEXT,
	shipper_account_number TEXT,
	receiver_name          TEXT,
	receiver_company       TEXT,
	receiver_phone         TEXT,
	receiver_country       TEXT,
	duty_account_number    TEXT,
	respond_trackingnumber TEXT,
	respond_label          TEXT,
	respond_receipt        TEXT,
	respond_invoice        TEXT,
	warnings               TEXT[],
	request_data           JSONB,
	response_data          JSONB,
	error_data             TEXT,
	created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_shipment_logs_created_at ON shipment_logs (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_shipment_logs_tracking ON shipment_logs (respond_trackingnumber);

CREATE TABLE IF NOT EXISTS dbs_users (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	full_name     TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// NewPostgres opens the connection pool and verifies it.
func NewPostgres(ctx context.Context, cfg config.DatabaseConfig) (*Postgres, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{DB: db}, nil
}

// Migrate creates the tables when they do not exist yet.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// HealthCheck verifies the connection is healthy.
func (p *Postgres) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.DB.PingContext(ctx)
}

// Close closes the pool.
func (p *Postgres) Close() error {
	return p.DB.Close()
}
