package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stoik/spoofguard/internal/adapters/storage"
	"github.com/stoik/spoofguard/internal/application"
	"github.com/stoik/spoofguard/internal/domain"
)

// CheckService is the application surface the handlers depend on
type CheckService interface {
	Check(ctx context.Context, source, text string) *application.CheckResult
	GetScan(ctx context.Context, id uuid.UUID) (*domain.ScanRecord, error)
	RecentSpoofedScans(ctx context.Context, limit int) ([]domain.ScanRecord, error)
}

// CheckRequest is the body of POST /api/v1/spoofing/check
type CheckRequest struct {
	Text   string `json:"text" binding:"required"`
	Source string `json:"source"`
}

// maxTextBytes bounds a single checked message
const maxTextBytes = 64 << 10

// Handler handles HTTP requests for spoofing checks
type Handler struct {
	service     CheckService
	safeDomains int
}

// NewHandler creates a new spoofing handler
// safeDomains is reported by the health endpoint.
func NewHandler(service CheckService, safeDomains int) *Handler {
	return &Handler{service: service, safeDomains: safeDomains}
}

// Check runs the spoofing engine on one message
// POST /api/v1/spoofing/check
func (h *Handler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body: text is required")
		return
	}
	if len(req.Text) > maxTextBytes {
		ErrorResponse(c, http.StatusRequestEntityTooLarge, "text too large")
		return
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = "api"
	}

	SuccessResponse(c, h.service.Check(c.Request.Context(), source, req.Text))
}

// GetScan returns one stored scan record
// GET /api/v1/spoofing/scans/:id
func (h *Handler) GetScan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid scan ID")
		return
	}

	record, err := h.service.GetScan(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrScanNotFound) {
			ErrorResponse(c, http.StatusNotFound, "scan not found")
			return
		}
		_ = c.Error(err)
		ErrorResponse(c, http.StatusInternalServerError, "failed to get scan")
		return
	}

	SuccessResponse(c, record)
}

// RecentSpoofedScans lists the latest spoofed verdicts
// GET /api/v1/spoofing/scans?limit=20
func (h *Handler) RecentSpoofedScans(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}

	records, err := h.service.RecentSpoofedScans(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(err)
		ErrorResponse(c, http.StatusInternalServerError, "failed to list scans")
		return
	}

	SuccessResponse(c, records)
}

// Health reports liveness and the loaded registry size
// GET /healthz
func (h *Handler) Health(c *gin.Context) {
	SuccessResponse(c, gin.H{
		"status":       "ok",
		"safe_domains": h.safeDomains,
	})
}
