// Package services: LeaveService
//
// This file implements the LeaveService, which owns leave submission and the
// admin decision flow. Submissions only validate field presence and the type
// enum: end-before-start ranges are accepted on purpose, matching the
// product's long-standing behavior. Decisions are applied exactly once: a
// conditional UPDATE only matches PENDING rows, so replays surface as
// ErrLeaveAlreadyDecided instead of silently rewriting terminal state.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zenwork/go-attendance-backend/internal/domain"
	"github.com/zenwork/go-attendance-backend/internal/repo"
	"github.com/zenwork/go-attendance-backend/internal/utils"
)

// LeaveInput carries the fields of a leave submission.
type LeaveInput struct {
	Type      string `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

// LeaveService provides leave-request operations for employees and admins.
type LeaveService struct {
	DB *gorm.DB

	// DeductOnApproval debits the inclusive day span from the owner's
	// remaining leave when a request is approved.
	DeductOnApproval bool
}

// NewLeaveService constructs a LeaveService.
func NewLeaveService(db *gorm.DB, deductOnApproval bool) *LeaveService {
	return &LeaveService{DB: db, DeductOnApproval: deductOnApproval}
}

// Submit validates the input and creates a PENDING request owned by userID.
// All four fields are required; dates must be YYYY-MM-DD. No cross-field
// validation is performed.
func (s *LeaveService) Submit(ctx context.Context, userID string, in LeaveInput) (*domain.LeaveRequest, error) {
	tr := otel.Tracer("services/LeaveService")
	ctx, span := tr.Start(ctx, "Submit",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("leave.type", in.Type),
		),
	)
	defer span.End()

	in.Type = strings.TrimSpace(in.Type)
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = strings.TrimSpace(in.EndDate)
	in.Reason = strings.TrimSpace(in.Reason)

	if in.Type == "" || in.StartDate == "" || in.EndDate == "" || in.Reason == "" {
		return nil, ErrMissingLeaveFields
	}
	if !domain.ValidLeaveType(in.Type) {
		return nil, ErrInvalidLeaveType
	}
	for _, d := range []string{in.StartDate, in.EndDate} {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return nil, ErrInvalidLeaveDate
		}
	}

	emp, err := repo.GetEmployee(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	req := &domain.LeaveRequest{
		UserID:    userID,
		UserName:  emp.Name,
		Type:      in.Type,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Reason:    in.Reason,
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.CreateLeaveRequest(ctx, s.DB, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Decide transitions the request to APPROVED or REJECTED. The transition is
// applied at most once; a request already in a terminal state yields
// ErrLeaveAlreadyDecided. When the deduction policy is on, approval debits
// the owner's balance inside the same transaction.
func (s *LeaveService) Decide(ctx context.Context, requestID, decision string) (*domain.LeaveRequest, error) {
	tr := otel.Tracer("services/LeaveService")
	ctx, span := tr.Start(ctx, "Decide",
		trace.WithAttributes(
			attribute.String("leave.id", requestID),
			attribute.String("leave.decision", decision),
		),
	)
	defer span.End()

	if !domain.ValidDecision(decision) {
		return nil, ErrInvalidDecision
	}

	req, err := repo.GetLeaveRequest(ctx, s.DB, requestID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}
	if req.Status != domain.LeavePending {
		return nil, ErrLeaveAlreadyDecided
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.DecideLeaveRequest(ctx, tx, requestID, decision); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				// Decided between the read and the update.
				return ErrLeaveAlreadyDecided
			}
			return err
		}
		if decision == domain.LeaveApproved && s.DeductOnApproval {
			days := utils.DaysInclusive(req.StartDate, req.EndDate)
			if days > 0 {
				if err := repo.DebitLeaveBalance(ctx, tx, req.UserID, float64(days)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	req.Status = decision
	return req, nil
}

// ListMine returns the caller's requests, newest first.
func (s *LeaveService) ListMine(ctx context.Context, userID string) ([]domain.LeaveRequest, error) {
	return repo.ListLeaveRequests(ctx, s.DB, userID)
}

// ListAll returns every request in the store for the approval queue.
func (s *LeaveService) ListAll(ctx context.Context) ([]domain.LeaveRequest, error) {
	return repo.ListAllLeaveRequests(ctx, s.DB)
}
