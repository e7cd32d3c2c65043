package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stoik/spoofguard/internal/domain"
	"github.com/stoik/spoofguard/internal/ports"
	"go.uber.org/zap"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

// CheckResult is a verdict plus the ID of its audit record
type CheckResult struct {
	ScanID  uuid.UUID              `json:"scan_id"`
	Verdict domain.SpoofingVerdict `json:"verdict"`
}

// SpoofCheckService runs the spoofing engine on chat messages and records every verdict
type SpoofCheckService struct {
	store   ports.ScanStore
	checker ports.Checker
	logger  *zap.Logger
	now     func() time.Time
}

// NewSpoofCheckService creates a new service with dependency injection
func NewSpoofCheckService(store ports.ScanStore, checker ports.Checker, logger *zap.Logger) *SpoofCheckService {
	return &SpoofCheckService{
		store:   store,
		checker: checker,
		logger:  logger,
		now:     time.Now,
	}
}

// Check analyzes text and stores the resulting scan record
// Error handling strategy:
//   - The verdict is always returned; the chatbot reply must not depend on storage
//   - Storage failures are logged and the scan ID is still reported
func (s *SpoofCheckService) Check(ctx context.Context, source, text string) *CheckResult {
	// Pure domain logic, no I/O
	start := s.now()
	verdict := s.checker.Analyze(text)
	spoofCheckDuration.Observe(s.now().Sub(start).Seconds())

	record := domain.NewScanRecord(source, text, verdict, s.now().UTC())

	if verdict.IsSpoofed {
		spoofChecksTotal.WithLabelValues("spoofed", string(verdict.AttackKind)).Inc()
		s.logger.Warn("Spoofed domain detected",
			zap.String("scan_id", record.ID.String()),
			zap.String("source", source),
			zap.String("spoofed_domain", verdict.SpoofedDomain),
			zap.String("matched_safe_domain", verdict.MatchedSafeDomain),
			zap.String("attack_kind", string(verdict.AttackKind)),
			zap.Int("matches", len(verdict.Matches)),
		)
	} else {
		spoofChecksTotal.WithLabelValues("safe", "").Inc()
	}

	if err := s.store.SaveScan(ctx, record); err != nil {
		scanStoreErrorsTotal.Inc()
		s.logger.Error("Failed to store scan record",
			zap.String("scan_id", record.ID.String()),
			zap.Error(err),
		)
	}

	return &CheckResult{ScanID: record.ID, Verdict: verdict}
}

// GetScan retrieves a stored scan record
func (s *SpoofCheckService) GetScan(ctx context.Context, id uuid.UUID) (*domain.ScanRecord, error) {
	return s.store.GetScan(ctx, id)
}

// RecentSpoofedScans lists the latest spoofed verdicts
// limit is clamped to [1, MaxRecentLimit]; non-positive values select DefaultRecentLimit.
func (s *SpoofCheckService) RecentSpoofedScans(ctx context.Context, limit int) ([]domain.ScanRecord, error) {
	switch {
	case limit <= 0:
		limit = DefaultRecentLimit
	case limit > MaxRecentLimit:
		limit = MaxRecentLimit
	}
	return s.store.RecentSpoofedScans(ctx, limit)
}
