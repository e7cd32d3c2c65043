package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stoik/spoofguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	record := spoofedRecord()

	require.NoError(t, store.SaveScan(ctx, record))

	got, err := store.GetScan(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record, got)

	// Stored copies are not aliased to the caller's slice
	record.Matches[0].Description = "changed"
	got, err = store.GetScan(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Google", got.Matches[0].Description)

	_, err = store.GetScan(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrScanNotFound)
}

func TestMemoryStore_SafeScanKeepsEmptyMatches(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	record := domain.NewScanRecord("line", "晚餐吃什麼", domain.SpoofingVerdict{Matches: []domain.SpoofingMatch{}}, time.Now())

	require.NoError(t, store.SaveScan(ctx, record))

	got, err := store.GetScan(ctx, record.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Matches)
	assert.Empty(t, got.Matches)
}

func TestMemoryStore_RecentSpoofedScans(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		r := spoofedRecord()
		r.ScannedAt = base.Add(time.Duration(i) * time.Minute)
		ids = append(ids, r.ID)
		require.NoError(t, store.SaveScan(ctx, r))
	}
	safe := &domain.ScanRecord{ID: uuid.New(), Source: "cli", ScannedAt: base.Add(time.Hour)}
	require.NoError(t, store.SaveScan(ctx, safe))

	records, err := store.RecentSpoofedScans(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, ids[2], records[0].ID)
	assert.Equal(t, ids[1], records[1].ID)

	all, err := store.RecentSpoofedScans(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	assert.NoError(t, store.Close())
}
