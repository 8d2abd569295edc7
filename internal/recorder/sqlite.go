package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"VolScope/internal/model"
)

// SQLiteRecorder persists year summaries to a SQLite database, one row
// per year per run. Undefined metrics are stored as NULL.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so readers can query while a scheduled run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS year_summaries (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			run_at               INTEGER NOT NULL,
			symbol               TEXT NOT NULL,
			year                 INTEGER NOT NULL,
			trading_days         INTEGER NOT NULL,
			realized_vol_pct     REAL,
			parkinson_vol_pct    REAL,
			garman_klass_vol_pct REAL,
			avg_daily_range_pct  REAL,
			max_daily_return_pct REAL,
			min_daily_return_pct REAL,
			avg_atr              REAL,
			annual_return_pct    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_symbol_year ON year_summaries(symbol, year)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_run_at ON year_summaries(run_at)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts all year summaries for one analysis run atomically.
func (r *SQLiteRecorder) RecordRun(symbol string, years []model.YearSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, y := range years {
		_, err := tx.Exec(`INSERT INTO year_summaries
			(run_at, symbol, year, trading_days,
			 realized_vol_pct, parkinson_vol_pct, garman_klass_vol_pct,
			 avg_daily_range_pct, max_daily_return_pct, min_daily_return_pct,
			 avg_atr, annual_return_pct)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
			now, symbol, y.Year, y.TradingDays,
			nullable(y.RealizedVolPct), nullable(y.ParkinsonVolPct), nullable(y.GarmanKlassVolPct),
			y.AvgDailyRangePct, nullable(y.MaxDailyReturnPct), nullable(y.MinDailyReturnPct),
			nullable(y.AvgATR), y.AnnualReturnPct,
		)
		if err != nil {
			return fmt.Errorf("insert year %d: %w", y.Year, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

func nullable(m model.Metric) interface{} {
	if !m.Valid {
		return nil
	}
	return m.Value
}
