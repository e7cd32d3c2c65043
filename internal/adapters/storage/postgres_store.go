package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stoik/spoofguard/internal/domain"
)

// PostgresStore implements ports.ScanStore for PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL storage instance
func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Scan writes are small and bursty (one per chat message)
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return NewPostgresStoreFromDB(db), nil
}

// NewPostgresStoreFromDB wraps an already opened database handle
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// InitSchema creates database tables if they don't exist
// In production, use proper migration tools
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	schema := `
	-- ============================================================================
	-- SPOOF_SCANS TABLE
	-- ============================================================================
	-- One row per checked chat message, spoofed or not.
	--
	-- Prototype simplifications:
	-- 1. matches as JSONB array of {matched_safe_domain, description, attack_kind, confidence_note}
	--    Matches are always read with their scan; no query needs them on their own.
	--
	-- 2. text_excerpt is truncated to 200 characters
	--    Chat messages can contain personal data; the excerpt is enough to review a verdict.

	CREATE TABLE IF NOT EXISTS spoof_scans (
		id UUID PRIMARY KEY,
		source VARCHAR(32) NOT NULL,
		text_excerpt TEXT,
		is_spoofed BOOLEAN NOT NULL,
		spoofed_domain VARCHAR(253),
		matched_safe_domain VARCHAR(253),
		attack_kind VARCHAR(32),
		matches JSONB,
		risk_explanation TEXT,
		scanned_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	-- Backs RecentSpoofedScans
	CREATE INDEX IF NOT EXISTS idx_spoof_scans_spoofed ON spoof_scans(is_spoofed, scanned_at DESC);
	-- "Which lures imitate this brand?"
	CREATE INDEX IF NOT EXISTS idx_spoof_scans_matched ON spoof_scans(matched_safe_domain);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// SaveScan inserts a scan record
func (s *PostgresStore) SaveScan(ctx context.Context, record *domain.ScanRecord) error {
	matchesJSON, err := json.Marshal(record.Matches)
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}

	query := `
		INSERT INTO spoof_scans (
			id, source, text_excerpt, is_spoofed, spoofed_domain,
			matched_safe_domain, attack_kind, matches, risk_explanation, scanned_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(ctx, query,
		record.ID, record.Source, record.TextExcerpt, record.IsSpoofed, record.SpoofedDomain,
		record.MatchedSafeDomain, string(record.AttackKind), matchesJSON, record.RiskExplanation,
		record.ScannedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scan %s: %w", record.ID, err)
	}
	return nil
}

const scanColumns = `
	id, source, text_excerpt, is_spoofed, spoofed_domain,
	matched_safe_domain, attack_kind, matches, risk_explanation, scanned_at
`

// GetScan retrieves a scan record by ID
func (s *PostgresStore) GetScan(ctx context.Context, id uuid.UUID) (*domain.ScanRecord, error) {
	query := `SELECT ` + scanColumns + ` FROM spoof_scans WHERE id = $1`

	record, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScanNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// RecentSpoofedScans retrieves the latest spoofed verdicts
func (s *PostgresStore) RecentSpoofedScans(ctx context.Context, limit int) ([]domain.ScanRecord, error) {
	query := `
		SELECT ` + scanColumns + `
		FROM spoof_scans
		WHERE is_spoofed = TRUE
		ORDER BY scanned_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.ScanRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	return records, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.ScanRecord, error) {
	var record domain.ScanRecord
	var excerpt, spoofed, matched, kind, explanation sql.NullString
	var matchesJSON []byte

	err := row.Scan(
		&record.ID, &record.Source, &excerpt, &record.IsSpoofed, &spoofed,
		&matched, &kind, &matchesJSON, &explanation, &record.ScannedAt,
	)
	if err != nil {
		return nil, err
	}

	record.TextExcerpt = excerpt.String
	record.SpoofedDomain = spoofed.String
	record.MatchedSafeDomain = matched.String
	record.AttackKind = domain.AttackKind(kind.String)
	record.RiskExplanation = explanation.String

	record.Matches = []domain.SpoofingMatch{}
	if len(matchesJSON) > 0 {
		if err := json.Unmarshal(matchesJSON, &record.Matches); err != nil {
			return nil, fmt.Errorf("failed to unmarshal matches for scan %s: %w", record.ID, err)
		}
		if record.Matches == nil {
			record.Matches = []domain.SpoofingMatch{}
		}
	}

	return &record, nil
}
