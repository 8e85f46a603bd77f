// Package services: AttendanceService
//
// This file implements the AttendanceService, which owns the check-in and
// check-out lifecycle. It enforces the one-record-per-day invariant, applies
// the wall-clock late rule, and distinguishes the "never checked in" and
// "already checked out" failure modes instead of silently succeeding on
// zero-row updates.
//
// Observability: public methods are OpenTelemetry-instrumented; spans include
// the user identifier and the resolved calendar day.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zenwork/go-attendance-backend/internal/domain"
	"github.com/zenwork/go-attendance-backend/internal/repo"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// AttendanceService coordinates attendance persistence and the check-in
// policy.
type AttendanceService struct {
	DB *gorm.DB

	// Location is the zone for the day boundary and the late rule.
	Location *time.Location
	// LateAfterHour marks a check-in LATE when hour >= LateAfterHour and
	// minute > 0. The top of the hour itself still counts as on time.
	LateAfterHour int

	// Now is an injectable clock for tests; defaults to time.Now.
	Now func() time.Time
}

// NewAttendanceService constructs an AttendanceService with the given policy.
func NewAttendanceService(db *gorm.DB, loc *time.Location, lateAfterHour int) *AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceService{
		DB:            db,
		Location:      loc,
		LateAfterHour: lateAfterHour,
		Now:           time.Now,
	}
}

func (s *AttendanceService) now() time.Time {
	if s.Now != nil {
		return s.Now().In(s.Location)
	}
	return time.Now().In(s.Location)
}

// CheckIn creates today's attendance record for userID. It fails with
// ErrAlreadyCheckedIn when a record for (user, today) exists; the unique
// index on (user_id, date) backs this check against racing requests.
func (s *AttendanceService) CheckIn(ctx context.Context, userID string) (*domain.AttendanceRecord, error) {
	now := s.now()
	today := now.Format(dateLayout)

	tr := otel.Tracer("services/AttendanceService")
	ctx, span := tr.Start(ctx, "CheckIn",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("attendance.date", today),
		),
	)
	defer span.End()

	emp, err := repo.GetEmployee(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	if _, err := repo.GetAttendanceForDay(ctx, s.DB, userID, today); err == nil {
		return nil, ErrAlreadyCheckedIn
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	status := domain.StatusIn
	if now.Hour() >= s.LateAfterHour && now.Minute() > 0 {
		status = domain.StatusLate
	}

	rec := &domain.AttendanceRecord{
		UserID:   userID,
		UserName: emp.Name,
		Date:     today,
		CheckIn:  now.Format(timeLayout),
		Status:   status,
	}
	if err := repo.CreateAttendance(ctx, s.DB, rec); err != nil {
		if errors.Is(err, repo.ErrDuplicateDay) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}
	return rec, nil
}

// CheckOut closes today's record for userID: sets the check-out time and the
// OUT status. A missing record yields ErrNotCheckedIn and an already closed
// one yields ErrAlreadyCheckedOut.
func (s *AttendanceService) CheckOut(ctx context.Context, userID string) (*domain.AttendanceRecord, error) {
	now := s.now()
	today := now.Format(dateLayout)

	tr := otel.Tracer("services/AttendanceService")
	ctx, span := tr.Start(ctx, "CheckOut",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("attendance.date", today),
		),
	)
	defer span.End()

	rec, err := repo.GetAttendanceForDay(ctx, s.DB, userID, today)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotCheckedIn
		}
		return nil, err
	}
	if rec.CheckOut != nil {
		return nil, ErrAlreadyCheckedOut
	}

	out := now.Format(timeLayout)
	if err := repo.CloseAttendance(ctx, s.DB, userID, today, out); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Row closed between the read and the update.
			return nil, ErrAlreadyCheckedOut
		}
		return nil, err
	}
	rec.CheckOut = &out
	rec.Status = domain.StatusOut
	return rec, nil
}

// ListPage returns a page of the user's attendance history and the total
// count, most recent day first.
func (s *AttendanceService) ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.AttendanceRecord, int64, error) {
	tr := otel.Tracer("services/AttendanceService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountAttendance(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.AttendanceRecord{}, 0, nil
	}

	items, err := repo.ListAttendancePage(ctx, s.DB, userID, offset, pageSize)
	return items, total, err
}

// ListAll returns every attendance record in the store for admin views.
func (s *AttendanceService) ListAll(ctx context.Context) ([]domain.AttendanceRecord, error) {
	return repo.ListAllAttendance(ctx, s.DB)
}

// SummarizeToday aggregates today's attendance counts and the approval-queue
// size for the admin dashboard.
func (s *AttendanceService) SummarizeToday(ctx context.Context) (*repo.TodaySummary, error) {
	return repo.SummarizeToday(ctx, s.DB, s.now().Format(dateLayout))
}
