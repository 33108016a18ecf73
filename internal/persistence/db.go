// Package persistence provides the SQLite-backed, year-indexed game
// archive. Each row is one year's full snapshot: state, the decision
// sheet that produced it, and the derived worksheet values the report
// screens read back.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/fishbanks/internal/game"
)

// ErrNoArchive reports a resume request for a year with no saved data.
var ErrNoArchive = errors.New("no archived data")

// DB wraps a SQLite connection for the snapshot archive.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		year INTEGER PRIMARY KEY,
		session_id TEXT NOT NULL,
		state_json TEXT NOT NULL,
		decisions_json TEXT NOT NULL,
		salvage_value INTEGER NOT NULL,
		ship_index REAL NOT NULL,
		catch_index REAL NOT NULL,
		fish_index REAL NOT NULL,
		saved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS game_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_session ON snapshots(session_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type snapshotRow struct {
	Year          int     `db:"year"`
	SessionID     string  `db:"session_id"`
	StateJSON     string  `db:"state_json"`
	DecisionsJSON string  `db:"decisions_json"`
	SalvageValue  int     `db:"salvage_value"`
	ShipIndex     float64 `db:"ship_index"`
	CatchIndex    float64 `db:"catch_index"`
	FishIndex     float64 `db:"fish_index"`
	SavedAt       string  `db:"saved_at"`
}

// Reset clears the archive for a fresh game and records the new session.
func (db *DB) Reset(sessionID string) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM snapshots"); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO game_meta (key, value) VALUES ('session_id', ?), ('created_at', ?)",
		sessionID, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveYear archives one year's snapshot. A year already archived is
// replaced; that only happens when the same year is replayed after a
// resume.
func (db *DB) SaveYear(snap *game.YearSnapshot) error {
	stateJSON, err := json.Marshal(snap.State)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	decisionsJSON, err := json.Marshal(snap.Decisions)
	if err != nil {
		return fmt.Errorf("marshal decisions: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT OR REPLACE INTO snapshots
		(year, session_id, state_json, decisions_json, salvage_value, ship_index, catch_index, fish_index, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.Year, snap.SessionID, string(stateJSON), string(decisionsJSON),
		snap.SalvageValue, snap.ShipIndex, snap.CatchIndex, snap.FishIndex,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// LoadYear returns the snapshot archived for the given year.
func (db *DB) LoadYear(year int) (*game.YearSnapshot, error) {
	var row snapshotRow
	err := db.conn.Get(&row, "SELECT * FROM snapshots WHERE year = ?", year)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w for year %d", ErrNoArchive, year)
	}
	if err != nil {
		return nil, err
	}
	return row.snapshot()
}

// LoadLatest returns the most recently archived year's snapshot.
func (db *DB) LoadLatest() (*game.YearSnapshot, error) {
	var row snapshotRow
	err := db.conn.Get(&row, "SELECT * FROM snapshots ORDER BY year DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoArchive
	}
	if err != nil {
		return nil, err
	}
	return row.snapshot()
}

// Years lists the archived years in ascending order.
func (db *DB) Years() ([]int, error) {
	var years []int
	if err := db.conn.Select(&years, "SELECT year FROM snapshots ORDER BY year"); err != nil {
		return nil, err
	}
	return years, nil
}

// GetMeta reads a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM game_meta WHERE key = ?", key)
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *snapshotRow) snapshot() (*game.YearSnapshot, error) {
	snap := &game.YearSnapshot{
		SessionID:    r.SessionID,
		Year:         r.Year,
		SalvageValue: r.SalvageValue,
		ShipIndex:    r.ShipIndex,
		CatchIndex:   r.CatchIndex,
		FishIndex:    r.FishIndex,
	}
	if err := json.Unmarshal([]byte(r.StateJSON), &snap.State); err != nil {
		return nil, fmt.Errorf("unmarshal state for year %d: %w", r.Year, err)
	}
	if err := json.Unmarshal([]byte(r.DecisionsJSON), &snap.Decisions); err != nil {
		return nil, fmt.Errorf("unmarshal decisions for year %d: %w", r.Year, err)
	}
	return snap, nil
}
