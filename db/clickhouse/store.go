// Package clickhouse persists harvested price datasets for columnar
// analytics. Each harvest becomes one snapshot row plus one price row per
// record, so successive runs of the same feeds can be compared over time.
package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"awsprice/pkg/pricing"
)

// HarvestSnapshot identifies one stored harvest run.
type HarvestSnapshot struct {
	ID          uuid.UUID `ch:"id"`
	Source      string    `ch:"source"`
	RecordCount uint64    `ch:"record_count"`
	FetchedAt   time.Time `ch:"fetched_at"`
	CreatedAt   time.Time `ch:"created_at"`
}

// Config holds ClickHouse connection configuration
type Config struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Debug    bool
}

// DefaultConfig returns default development configuration
func DefaultConfig() *Config {
	return &Config{
		Host:     "localhost",
		Port:     9000,
		Database: "awsprice",
		Username: "default",
		Password: "",
		Debug:    false,
	}
}

// Store persists harvests in ClickHouse.
type Store struct {
	conn clickhouse.Conn
	cfg  *Config
}

// NewStore opens a ClickHouse connection for the given configuration.
func NewStore(cfg *Config) (*Store, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Debug: cfg.Debug,
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	return &Store{conn: conn, cfg: cfg}, nil
}

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

// EnsureSchema creates the snapshot and price tables if absent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	snapshots := `
		CREATE TABLE IF NOT EXISTS price_snapshots (
			id UUID,
			source String,
			record_count UInt64,
			fetched_at DateTime,
			created_at DateTime DEFAULT now()
		) ENGINE = MergeTree()
		ORDER BY (fetched_at, id)
	`
	if err := s.conn.Exec(ctx, snapshots); err != nil {
		return fmt.Errorf("failed to create price_snapshots: %w", err)
	}

	prices := `
		CREATE TABLE IF NOT EXISTS price_records (
			snapshot_id UUID,
			service LowCardinality(String),
			region LowCardinality(String),
			instance_type String,
			generation LowCardinality(String),
			os_or_engine LowCardinality(String),
			pricing_scheme LowCardinality(String),
			term LowCardinality(String),
			payment_option LowCardinality(String),
			hourly_price Decimal(18, 6),
			upfront_price Nullable(Decimal(18, 6)),
			created_at DateTime DEFAULT now()
		) ENGINE = MergeTree()
		ORDER BY (service, pricing_scheme, generation, region, instance_type, snapshot_id)
	`
	if err := s.conn.Exec(ctx, prices); err != nil {
		return fmt.Errorf("failed to create price_records: %w", err)
	}
	return nil
}

// SaveHarvest stores one harvest: a snapshot row plus a batched insert of
// every price record. Returns the snapshot ID.
func (s *Store) SaveHarvest(ctx context.Context, source string, ds pricing.Dataset) (uuid.UUID, error) {
	snapshot := HarvestSnapshot{
		ID:          uuid.New(),
		Source:      source,
		RecordCount: uint64(len(ds)),
		FetchedAt:   time.Now().UTC(),
	}

	insertSnapshot := `
		INSERT INTO price_snapshots (id, source, record_count, fetched_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	if err := s.conn.Exec(ctx, insertSnapshot,
		snapshot.ID, snapshot.Source, snapshot.RecordCount, snapshot.FetchedAt, time.Now().UTC(),
	); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	if len(ds) == 0 {
		return snapshot.ID, nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO price_records (
			snapshot_id, service, region, instance_type, generation,
			os_or_engine, pricing_scheme, term, payment_option,
			hourly_price, upfront_price, created_at
		)
	`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to prepare batch: %w", err)
	}

	now := time.Now().UTC()
	for _, r := range ds {
		var upfront *decimal.Decimal
		if r.UpfrontPrice != nil {
			u := *r.UpfrontPrice
			upfront = &u
		}
		if err := batch.Append(
			snapshot.ID, string(r.Service), r.Region, r.InstanceType, string(r.Generation),
			r.OperatingSystemOrEngine, string(r.PricingScheme), string(r.Term), string(r.PaymentOption),
			r.HourlyPrice, upfront, now,
		); err != nil {
			return uuid.Nil, fmt.Errorf("failed to append to batch: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to send batch: %w", err)
	}
	return snapshot.ID, nil
}

// GetSnapshot retrieves a snapshot by ID.
func (s *Store) GetSnapshot(ctx context.Context, id uuid.UUID) (*HarvestSnapshot, error) {
	query := `
		SELECT id, source, record_count, fetched_at, created_at
		FROM price_snapshots
		WHERE id = ?
		LIMIT 1
	`
	row := s.conn.QueryRow(ctx, query, id)

	var snapshot HarvestSnapshot
	err := row.Scan(&snapshot.ID, &snapshot.Source, &snapshot.RecordCount, &snapshot.FetchedAt, &snapshot.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return &snapshot, nil
}

// ListSnapshots lists stored snapshots, most recent first.
func (s *Store) ListSnapshots(ctx context.Context, limit int) ([]*HarvestSnapshot, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, source, record_count, fetched_at, created_at
		FROM price_snapshots
		ORDER BY fetched_at DESC
		LIMIT ?
	`
	rows, err := s.conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*HarvestSnapshot
	for rows.Next() {
		var snapshot HarvestSnapshot
		if err := rows.Scan(&snapshot.ID, &snapshot.Source, &snapshot.RecordCount, &snapshot.FetchedAt, &snapshot.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, &snapshot)
	}
	return snapshots, nil
}

// CountRecords returns the number of price rows stored for a snapshot.
func (s *Store) CountRecords(ctx context.Context, snapshotID uuid.UUID) (int, error) {
	query := `SELECT count() FROM price_records WHERE snapshot_id = ?`
	row := s.conn.QueryRow(ctx, query, snapshotID)
	var count uint64
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return int(count), nil
}
