// Attendance HTTP handlers.
//
// This file exposes REST endpoints for attendance:
//   - POST /attendance/check-in   (open today's record)
//   - POST /attendance/check-out  (close today's record)
//   - GET  /attendance            (own history, paginated, ETag support)
//   - GET  /admin/attendance      (all records)
//   - GET  /admin/attendance/today (daily roll-up)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zenwork/go-attendance-backend/internal/domain"
	"github.com/zenwork/go-attendance-backend/internal/http/middleware"
	"github.com/zenwork/go-attendance-backend/internal/repo"
	"github.com/zenwork/go-attendance-backend/internal/services"
	"github.com/zenwork/go-attendance-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// AttendanceService defines attendance operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AttendanceService interface {
	// CheckIn opens today's record for userID.
	CheckIn(ctx context.Context, userID string) (*domain.AttendanceRecord, error)
	// CheckOut closes today's record for userID.
	CheckOut(ctx context.Context, userID string) (*domain.AttendanceRecord, error)
	// ListPage returns a page of the user's history and the total count.
	ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.AttendanceRecord, int64, error)
	// ListAll returns every record for admin views.
	ListAll(ctx context.Context) ([]domain.AttendanceRecord, error)
	// SummarizeToday aggregates today's counts for the admin dashboard.
	SummarizeToday(ctx context.Context) (*repo.TodaySummary, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for attendance, leave, the roster, and the
// assistant. It depends on abstract service interfaces to keep transport
// concerns separate from business logic.
type Handlers struct {
	attSvc   AttendanceService
	leaveSvc LeaveService
	empSvc   EmployeeService
	aiSvc    AssistantService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(attSvc AttendanceService, leaveSvc LeaveService, empSvc EmployeeService, aiSvc AssistantService) *Handlers {
	return &Handlers{attSvc: attSvc, leaveSvc: leaveSvc, empSvc: empSvc, aiSvc: aiSvc}
}

// userID extracts the request identity from the Gin context (set upstream).
// If absent, it falls back to the X-User-ID header, and finally to the seeded
// default account. It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return repo.DefaultAdminID
}

// idempotencyKey returns the key stashed by an upstream validator, falling
// back to the raw header when no dedicated middleware is mounted.
func idempotencyKey(c *gin.Context) string {
	if k, ok := middleware.GetIdempotencyKey(c); ok {
		return k
	}
	return strings.TrimSpace(c.GetHeader(middleware.HeaderIdempotencyKey))
}

//
// DTOs
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListAttendanceResponse wraps a page of records and pagination information.
type ListAttendanceResponse struct {
	Records    []domain.AttendanceRecord `json:"records"`
	Pagination Pagination                `json:"pagination"`
}

// clampPagination parses and bounds page and page_size query params.
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

func paginationOf(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

//
// Handlers
//

// CheckIn opens today's attendance record for the current user. A duplicate
// same-day check-in yields 409 with a distinct code; the record is returned
// with status IN or LATE depending on the wall clock. Supports safe retries
// via the Idempotency-Key header (same key returns the stored record).
func (h *Handlers) CheckIn(c *gin.Context) {
	ctx := c.Request.Context()
	currentUser := userID(c)

	// Idempotency (replay path).
	idemKey := idempotencyKey(c)
	var db *gorm.DB
	if svc, okSvc := h.attSvc.(*services.AttendanceService); okSvc {
		db = svc.DB
	}
	if idemKey != "" && db != nil {
		if stored, err := repo.GetIdempotency(ctx, db, currentUser, c.FullPath(), idemKey, time.Now().UTC()); err == nil && stored != nil {
			if prev, err2 := repo.GetAttendanceRecord(ctx, db, stored.ResultID); err2 == nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, http.StatusOK, prev)
				return
			}
		}
	}

	rec, err := h.attSvc.CheckIn(ctx, currentUser)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyCheckedIn):
			fail(c, http.StatusConflict, ErrCodeAlreadyCheckedIn, err.Error())
		case errors.Is(err, services.ErrEmployeeNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	// Idempotency (store path, best effort).
	if idemKey != "" && db != nil {
		ttl := 24 * time.Hour
		_, _ = repo.CreateIdempotency(ctx, db, currentUser, c.FullPath(), idemKey, rec.ID, http.StatusCreated, ttl)
	}

	ok(c, http.StatusCreated, rec)
}

// CheckOut closes today's record for the current user. Zero rows affected is
// reported as a distinct condition, never as silent success.
func (h *Handlers) CheckOut(c *gin.Context) {
	rec, err := h.attSvc.CheckOut(c.Request.Context(), userID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotCheckedIn):
			fail(c, http.StatusNotFound, ErrCodeNotCheckedIn, err.Error())
		case errors.Is(err, services.ErrAlreadyCheckedOut):
			fail(c, http.StatusConflict, ErrCodeAlreadyCheckedOut, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, rec)
}

// ListAttendance returns a page of the current user's history. Supports weak
// ETag via If-None-Match and may return 304.
func (h *Handlers) ListAttendance(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, ok := h.attSvc.(*services.AttendanceService); ok {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.AttendanceStats(ctx, db, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"attendance:%s:%d:%d"`, uid, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.attSvc.ListPage(ctx, uid, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	ok(c, http.StatusOK, ListAttendanceResponse{
		Records:    items,
		Pagination: paginationOf(page, pageSize, total),
	})
}

// ListAllAttendance returns every record for admin views.
func (h *Handlers) ListAllAttendance(c *gin.Context) {
	items, err := h.attSvc.ListAll(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, gin.H{"records": items})
}

// TodaySummary returns the daily roll-up for the admin dashboard.
func (h *Handlers) TodaySummary(c *gin.Context) {
	sum, err := h.attSvc.SummarizeToday(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, sum)
}
