package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/stoik/spoofguard/internal/domain"
)

// ScanStore defines the contract for persisting and querying scan records
type ScanStore interface {
	// SaveScan stores the audit row for one checked message
	SaveScan(ctx context.Context, record *domain.ScanRecord) error

	// GetScan returns a record by ID, or storage.ErrScanNotFound
	GetScan(ctx context.Context, id uuid.UUID) (*domain.ScanRecord, error)

	// RecentSpoofedScans returns the latest spoofed verdicts, newest first
	RecentSpoofedScans(ctx context.Context, limit int) ([]domain.ScanRecord, error)

	// Lifecycle
	Close() error
}
