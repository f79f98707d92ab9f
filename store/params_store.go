// Package store persists per-market risk parameters in Postgres.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"deriv-maker-go/config"
)

// ErrNotFound is returned when a market has no stored parameters.
var ErrNotFound = errors.New("risk params not found")

// ParamsRecord is the persisted form of a market's risk parameters.
// Fields are stored exactly as configured, so a loaded record passes
// through the same parsing and validation as file config.
type ParamsRecord struct {
	MarketID  string
	Risk      config.RiskConfig
	UpdatedAt time.Time
}

// ParamsStore reads and writes risk parameters over a pgx pool.
type ParamsStore struct {
	db *pgxpool.Pool
}

// NewParamsStore creates a new ParamsStore instance.
func NewParamsStore(db *pgxpool.Pool) *ParamsStore {
	return &ParamsStore{db: db}
}

// Connect opens a pool against dsn and applies the schema.
func Connect(ctx context.Context, dsn string) (*ParamsStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgx pool: %w", err)
	}
	s := NewParamsStore(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close releases the underlying pool.
func (s *ParamsStore) Close() {
	s.db.Close()
}

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS risk_params (
		market_id                  TEXT PRIMARY KEY,
		leverage                   TEXT NOT NULL,
		order_density              INT NOT NULL,
		max_market_data_delay_ms   BIGINT NOT NULL,
		reservation_param          TEXT NOT NULL,
		spread_param               TEXT NOT NULL,
		active_capital             TEXT NOT NULL,
		head_change_tolerance_bps  TEXT NOT NULL,
		tail_distance_from_mid_bps TEXT NOT NULL,
		min_tail_distance_bps      TEXT NOT NULL,
		updated_at                 TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

// EnsureSchema creates the risk_params table when missing.
func (s *ParamsStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 4*time.Second)
	defer cancel()
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// Save upserts the record and bumps updated_at.
func (s *ParamsStore) Save(ctx context.Context, rec ParamsRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 4*time.Second)
	defer cancel()
	const upsertSQL = `
		INSERT INTO risk_params (
			market_id, leverage, order_density, max_market_data_delay_ms,
			reservation_param, spread_param, active_capital,
			head_change_tolerance_bps, tail_distance_from_mid_bps, min_tail_distance_bps,
			updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now())
		ON CONFLICT (market_id) DO UPDATE SET
			leverage                   = EXCLUDED.leverage,
			order_density              = EXCLUDED.order_density,
			max_market_data_delay_ms   = EXCLUDED.max_market_data_delay_ms,
			reservation_param          = EXCLUDED.reservation_param,
			spread_param               = EXCLUDED.spread_param,
			active_capital             = EXCLUDED.active_capital,
			head_change_tolerance_bps  = EXCLUDED.head_change_tolerance_bps,
			tail_distance_from_mid_bps = EXCLUDED.tail_distance_from_mid_bps,
			min_tail_distance_bps      = EXCLUDED.min_tail_distance_bps,
			updated_at                 = now();
	`
	_, err := s.db.Exec(
		ctx, upsertSQL,
		rec.MarketID,
		rec.Risk.Leverage,
		rec.Risk.OrderDensity,
		rec.Risk.MaxMarketDataDelayMs,
		rec.Risk.ReservationParam,
		rec.Risk.SpreadParam,
		rec.Risk.ActiveCapital,
		rec.Risk.HeadChangeToleranceBps,
		rec.Risk.TailDistanceFromMidBps,
		rec.Risk.MinTailDistanceBps,
	)
	return err
}

// Load returns the stored parameters for a market, ErrNotFound when
// the market has none.
func (s *ParamsStore) Load(ctx context.Context, marketID string) (ParamsRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	const selectSQL = `
		SELECT market_id, leverage, order_density, max_market_data_delay_ms,
			reservation_param, spread_param, active_capital,
			head_change_tolerance_bps, tail_distance_from_mid_bps, min_tail_distance_bps,
			updated_at
		FROM risk_params
		WHERE market_id = $1
	`
	var rec ParamsRecord
	err := s.db.QueryRow(ctx, selectSQL, marketID).Scan(
		&rec.MarketID,
		&rec.Risk.Leverage,
		&rec.Risk.OrderDensity,
		&rec.Risk.MaxMarketDataDelayMs,
		&rec.Risk.ReservationParam,
		&rec.Risk.SpreadParam,
		&rec.Risk.ActiveCapital,
		&rec.Risk.HeadChangeToleranceBps,
		&rec.Risk.TailDistanceFromMidBps,
		&rec.Risk.MinTailDistanceBps,
		&rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ParamsRecord{}, ErrNotFound
	}
	if err != nil {
		return ParamsRecord{}, err
	}
	return rec, nil
}
