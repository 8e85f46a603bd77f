// Leave HTTP handlers.
//
// This file exposes REST endpoints for leave requests:
//   - POST /leaves                    (submit, idempotency support)
//   - GET  /leaves                    (own requests)
//   - GET  /admin/leaves              (approval queue)
//   - PUT  /admin/leaves/{id}/decision (approve or reject, applied once)
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// submission with the same key exists, the handler replays the stored request
// and sets `Idempotency-Replayed: true`.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zenwork/go-attendance-backend/internal/domain"
	"github.com/zenwork/go-attendance-backend/internal/repo"
	"github.com/zenwork/go-attendance-backend/internal/services"
)

// LeaveService defines leave-request operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type LeaveService interface {
	// Submit creates a PENDING request owned by userID.
	Submit(ctx context.Context, userID string, in services.LeaveInput) (*domain.LeaveRequest, error)
	// Decide transitions a request to APPROVED or REJECTED, at most once.
	Decide(ctx context.Context, requestID, decision string) (*domain.LeaveRequest, error)
	// ListMine returns the caller's requests, newest first.
	ListMine(ctx context.Context, userID string) ([]domain.LeaveRequest, error)
	// ListAll returns every request for the approval queue.
	ListAll(ctx context.Context) ([]domain.LeaveRequest, error)
}

// DecideLeaveRequest is the JSON payload for the admin decision endpoint.
type DecideLeaveRequest struct {
	// Status is the terminal state to apply: APPROVED or REJECTED.
	Status string `json:"status" binding:"required"`
}

// SubmitLeave creates a PENDING leave request for the current user. All four
// fields are required; dates must be YYYY-MM-DD.
func (h *Handlers) SubmitLeave(c *gin.Context) {
	ctx := c.Request.Context()
	currentUser := userID(c)

	var in services.LeaveInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	// Idempotency (replay path).
	idemKey := idempotencyKey(c)
	var db *gorm.DB
	if svc, okSvc := h.leaveSvc.(*services.LeaveService); okSvc {
		db = svc.DB
	}
	if idemKey != "" && db != nil {
		if stored, err := repo.GetIdempotency(ctx, db, currentUser, c.FullPath(), idemKey, time.Now().UTC()); err == nil && stored != nil {
			if prev, err2 := repo.GetLeaveRequest(ctx, db, stored.ResultID); err2 == nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, http.StatusOK, prev)
				return
			}
		}
	}

	req, err := h.leaveSvc.Submit(ctx, currentUser, in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingLeaveFields):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "type, startDate, endDate and reason are required")
		case errors.Is(err, services.ErrInvalidLeaveType):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown leave type")
		case errors.Is(err, services.ErrInvalidLeaveDate):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "dates must be YYYY-MM-DD")
		case errors.Is(err, services.ErrEmployeeNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}

	// Idempotency (store path, best effort).
	if idemKey != "" && db != nil {
		ttl := 24 * time.Hour
		_, _ = repo.CreateIdempotency(ctx, db, currentUser, c.FullPath(), idemKey, req.ID, http.StatusCreated, ttl)
	}

	ok(c, http.StatusCreated, req)
}

// ListLeaves returns the current user's leave requests, newest first.
func (h *Handlers) ListLeaves(c *gin.Context) {
	items, err := h.leaveSvc.ListMine(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, gin.H{"requests": items})
}

// ListAllLeaves returns every leave request for the admin approval queue.
func (h *Handlers) ListAllLeaves(c *gin.Context) {
	items, err := h.leaveSvc.ListAll(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, gin.H{"requests": items})
}

// DecideLeave applies an APPROVED or REJECTED decision to a pending request.
// A request already in a terminal state yields 409; the decision is never
// rewritten.
func (h *Handlers) DecideLeave(c *gin.Context) {
	requestID := c.Param("id")

	var req DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status required (APPROVED or REJECTED)")
		return
	}

	decided, err := h.leaveSvc.Decide(c.Request.Context(), requestID, strings.ToUpper(strings.TrimSpace(req.Status)))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDecision):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status must be APPROVED or REJECTED")
		case errors.Is(err, services.ErrLeaveNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "leave request not found")
		case errors.Is(err, services.ErrLeaveAlreadyDecided):
			fail(c, http.StatusConflict, ErrCodeAlreadyDecided, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, decided)
}
