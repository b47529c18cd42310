// Package store persists privacy-conscious visitor analytics in SQLite.
//
// Only aggregate-friendly events are stored: page visits with a salted,
// truncated IP hash, which sections were opened, and which unimplemented
// call-to-actions were clicked. Navigation state itself is never stored.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type DB struct {
	conn *sql.DB
	salt string
}

// Open opens (or creates) the database at path and migrates it. salt keys the
// IP hash; a new salt makes old hashes unlinkable to new ones.
func Open(path, salt string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite has a single writer.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, salt: salt}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,
			user_agent TEXT,
			path TEXT,
			lang TEXT,
			timestamp DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp)`,
		`CREATE TABLE IF NOT EXISTS section_views (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			view_id TEXT NOT NULL,
			section TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cta_clicks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			view_id TEXT NOT NULL,
			action TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := db.conn.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// HashIP returns a stable, salted, truncated hash of ip.
func (db *DB) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + db.salt))
	return hex.EncodeToString(sum[:])[:16]
}

type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Lang      string    `json:"lang"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordVisit stores a page visit. The raw IP never reaches the database.
func (db *DB) RecordVisit(ctx context.Context, ip, userAgent, path, lang string, at time.Time) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, lang, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, db.HashIP(ip), userAgent, path, lang, at.UTC())
	if err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}
	return nil
}

func (db *DB) RecordSectionView(ctx context.Context, viewID, section string, at time.Time) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO section_views (view_id, section, timestamp) VALUES (?, ?, ?)`,
		viewID, section, at.UTC())
	if err != nil {
		return fmt.Errorf("insert section view: %w", err)
	}
	return nil
}

func (db *DB) RecordAction(ctx context.Context, viewID, action string, at time.Time) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO cta_clicks (view_id, action, timestamp) VALUES (?, ?, ?)`,
		viewID, action, at.UTC())
	if err != nil {
		return fmt.Errorf("insert action: %w", err)
	}
	return nil
}

// Cleanup removes every record older than before and returns how many rows
// went away.
func (db *DB) Cleanup(ctx context.Context, before time.Time) (int64, error) {
	var total int64
	for _, table := range []string{"visitors", "section_views", "cta_clicks"} {
		res, err := db.conn.ExecContext(ctx, `DELETE FROM `+table+` WHERE timestamp < ?`, before.UTC())
		if err != nil {
			return total, fmt.Errorf("cleanup %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	return total, nil
}
