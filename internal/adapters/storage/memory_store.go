package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/stoik/spoofguard/internal/domain"
)

// MemoryStore implements ports.ScanStore in process memory
//
// Used when no DATABASE_URL is configured. Records are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	scans map[uuid.UUID]domain.ScanRecord
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scans: make(map[uuid.UUID]domain.ScanRecord)}
}

// SaveScan stores a copy of the record
func (s *MemoryStore) SaveScan(ctx context.Context, record *domain.ScanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := *record
	r.Matches = make([]domain.SpoofingMatch, len(record.Matches))
	copy(r.Matches, record.Matches)
	s.scans[record.ID] = r
	return nil
}

// GetScan returns a copy of the record with the given ID
func (s *MemoryStore) GetScan(ctx context.Context, id uuid.UUID) (*domain.ScanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.scans[id]
	if !ok {
		return nil, ErrScanNotFound
	}
	return &r, nil
}

// RecentSpoofedScans returns spoofed records, newest first
func (s *MemoryStore) RecentSpoofedScans(ctx context.Context, limit int) ([]domain.ScanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.ScanRecord, 0)
	for _, r := range s.scans {
		if r.IsSpoofed {
			records = append(records, r)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ScannedAt.After(records[j].ScannedAt)
	})
	if limit >= 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
