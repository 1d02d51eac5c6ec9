// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify audits the mapping relation between textbook
// classification items and achievement standards and renders a
// structured report.
package verify

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/curriculum-mapper/pkg/types"
)

const (
	indexDir   = "index"
	reportsDir = "reports"
	dbFile     = "mapping.db"
)

// Store manages the mapping relation SQLite database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// NewStore opens or creates the mapping database at
// dataDir/index/mapping.db, creating the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: cfg.DataDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS textbook_items (
			id TEXT PRIMARY KEY,
			subject TEXT NOT NULL,
			path TEXT NOT NULL,
			is_leaf INTEGER NOT NULL,
			chapter TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS achievement_standards (
			code TEXT PRIMARY KEY,
			subject TEXT NOT NULL,
			description TEXT,
			domain TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS mappings (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			item_id TEXT NOT NULL REFERENCES textbook_items(id),
			standard_code TEXT NOT NULL REFERENCES achievement_standards(code),
			confidence REAL NOT NULL,
			reasoning TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mappings_item_id ON mappings(item_id)`,
		`CREATE INDEX IF NOT EXISTS idx_mappings_standard_code ON mappings(standard_code)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Seed replaces the store contents with the given items, standards,
// and mapping pairs in one transaction.
func (s *Store) Seed(ctx context.Context, items []types.TextbookClassificationItem, standards []types.AchievementStandard, pairs []types.MappingPair) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"mappings", "textbook_items", "achievement_standards"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	itemStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO textbook_items (id, subject, path, is_leaf, chapter) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing item insert: %w", err)
	}
	defer itemStmt.Close()
	for _, item := range items {
		leaf := 0
		if item.Leaf {
			leaf = 1
		}
		if _, err := itemStmt.ExecContext(ctx, item.ID, item.Subject, item.Path, leaf, item.Chapter); err != nil {
			return fmt.Errorf("inserting item %s: %w", item.ID, err)
		}
	}

	stdStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO achievement_standards (code, subject, description, domain) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing standard insert: %w", err)
	}
	defer stdStmt.Close()
	for _, std := range standards {
		if _, err := stdStmt.ExecContext(ctx, std.Code, std.Subject, std.Description, std.Domain); err != nil {
			return fmt.Errorf("inserting standard %s: %w", std.Code, err)
		}
	}

	pairStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO mappings (item_id, standard_code, confidence, reasoning) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing mapping insert: %w", err)
	}
	defer pairStmt.Close()
	for _, p := range pairs {
		if _, err := pairStmt.ExecContext(ctx, p.ItemID, p.StandardCode, p.Confidence, p.Reasoning); err != nil {
			return fmt.Errorf("inserting mapping %s -> %s: %w", p.ItemID, p.StandardCode, err)
		}
	}

	return tx.Commit()
}

// Items returns all textbook items as stored for verification.
func (s *Store) Items(ctx context.Context) ([]types.TextbookClassificationItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, subject, path, is_leaf, chapter FROM textbook_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []types.TextbookClassificationItem
	for rows.Next() {
		var (
			item    types.TextbookClassificationItem
			leaf    int
			chapter sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.Subject, &item.Path, &leaf, &chapter); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		item.Leaf = leaf != 0
		if chapter.Valid {
			item.Chapter = chapter.String
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Standards returns all achievement standards.
func (s *Store) Standards(ctx context.Context) ([]types.AchievementStandard, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, subject, description, domain FROM achievement_standards ORDER BY subject, code`)
	if err != nil {
		return nil, fmt.Errorf("querying standards: %w", err)
	}
	defer rows.Close()

	var standards []types.AchievementStandard
	for rows.Next() {
		var (
			std         types.AchievementStandard
			description sql.NullString
			domain      sql.NullString
		)
		if err := rows.Scan(&std.Code, &std.Subject, &description, &domain); err != nil {
			return nil, fmt.Errorf("scanning standard row: %w", err)
		}
		std.Description = description.String
		std.Domain = domain.String
		standards = append(standards, std)
	}
	return standards, rows.Err()
}

// Pairs returns all mapping pairs in insertion order.
func (s *Store) Pairs(ctx context.Context) ([]types.MappingPair, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item_id, standard_code, confidence, reasoning FROM mappings ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying mappings: %w", err)
	}
	defer rows.Close()

	var pairs []types.MappingPair
	for rows.Next() {
		var (
			p         types.MappingPair
			reasoning sql.NullString
		)
		if err := rows.Scan(&p.ItemID, &p.StandardCode, &p.Confidence, &reasoning); err != nil {
			return nil, fmt.Errorf("scanning mapping row: %w", err)
		}
		p.Reasoning = reasoning.String
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// MappedStandardCodes returns the set of standard codes that appear
// in at least one mapping pair.
func (s *Store) MappedStandardCodes(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT standard_code FROM mappings`)
	if err != nil {
		return nil, fmt.Errorf("querying mapped standard codes: %w", err)
	}
	defer rows.Close()

	mapped := make(map[string]bool)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scanning standard code: %w", err)
		}
		mapped[code] = true
	}
	return mapped, rows.Err()
}

// JoinRow is one mapping pair joined with its target item and
// standard attributes. ItemSubject is the subject of the target item,
// which is authoritative for confidence grouping.
type JoinRow struct {
	ItemID       string
	ItemSubject  string
	Chapter      string
	StandardCode string
	Domain       string
	Confidence   float64
	Reasoning    string
}

// MappingJoin returns the join of mappings with classification and
// standard attributes, in mapping insertion order.
func (s *Store) MappingJoin(ctx context.Context) ([]JoinRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.item_id, i.subject, i.chapter, m.standard_code, a.domain, m.confidence, m.reasoning
		 FROM mappings m
		 JOIN textbook_items i ON i.id = m.item_id
		 JOIN achievement_standards a ON a.code = m.standard_code
		 ORDER BY m.rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying mapping join: %w", err)
	}
	defer rows.Close()

	var join []JoinRow
	for rows.Next() {
		var (
			jr        JoinRow
			chapter   sql.NullString
			domain    sql.NullString
			reasoning sql.NullString
		)
		if err := rows.Scan(&jr.ItemID, &jr.ItemSubject, &chapter, &jr.StandardCode, &domain, &jr.Confidence, &reasoning); err != nil {
			return nil, fmt.Errorf("scanning join row: %w", err)
		}
		jr.Chapter = chapter.String
		jr.Domain = domain.String
		jr.Reasoning = reasoning.String
		join = append(join, jr)
	}
	return join, rows.Err()
}
