package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists analysis and alert history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block the tick loop's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp          INTEGER NOT NULL,
			instrument         TEXT,
			price              REAL,
			signal_action      TEXT,
			confidence         REAL,
			decision_action    TEXT,
			reason             TEXT,
			position_direction TEXT,
			entry_price        REAL,
			pnl_pct            REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ts ON analyses(timestamp)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			instrument TEXT,
			kind       TEXT,
			magnitude  REAL,
			price      REAL,
			confidence REAL,
			delivered  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ts ON alerts(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(rec *AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO analyses
		(timestamp, instrument, price, signal_action, confidence,
		 decision_action, reason, position_direction, entry_price, pnl_pct)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Instrument, rec.Price, rec.SignalAction, rec.Confidence,
		rec.DecisionAction, rec.Reason, rec.PositionDirection, rec.EntryPrice, rec.PnLPct,
	)
	return err
}

func (r *SQLiteRecorder) RecordAlert(rec *AlertRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delivered := 0
	if rec.Delivered {
		delivered = 1
	}
	_, err := r.db.Exec(`INSERT INTO alerts
		(timestamp, instrument, kind, magnitude, price, confidence, delivered)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Instrument, rec.Kind, rec.Magnitude,
		rec.Price, rec.Confidence, delivered,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
