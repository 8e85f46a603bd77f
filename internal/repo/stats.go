// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// for conditional responses (ETag generation) in the HTTP layer and for the
// admin dashboard's daily roll-up. Each function is context-aware and safe to
// call from services or handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/zenwork/go-attendance-backend/internal/domain"
)

// AttendanceStats returns aggregate metadata for a user's attendance: the
// total number of rows and the maximum UpdatedAt timestamp among those rows.
// When the user has no records, the returned count is 0 and maxUpdatedAt is
// nil.
func AttendanceStats(ctx context.Context, db *gorm.DB, userID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.AttendanceRecord{}).Where("user_id = ?", userID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}

// TodaySummary is the admin dashboard roll-up for a single calendar day.
type TodaySummary struct {
	Date       string `json:"date"`
	Employees  int64  `json:"employees"`
	Present    int64  `json:"present"`
	Late       int64  `json:"late"`
	CheckedOut int64  `json:"checkedOut"`
	Pending    int64  `json:"pendingLeaves"`
}

// SummarizeToday aggregates attendance counts for the given date plus the
// size of the approval queue. "Present" counts every row for the day,
// whatever its current status.
func SummarizeToday(ctx context.Context, db *gorm.DB, date string) (*TodaySummary, error) {
	s := &TodaySummary{Date: date}

	if err := db.WithContext(ctx).Model(&domain.Employee{}).Count(&s.Employees).Error; err != nil {
		return nil, err
	}

	day := db.WithContext(ctx).Model(&domain.AttendanceRecord{}).Where("date = ?", date)
	if err := day.Count(&s.Present).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&domain.AttendanceRecord{}).
		Where("date = ? AND status = ?", date, domain.StatusLate).
		Count(&s.Late).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&domain.AttendanceRecord{}).
		Where("date = ? AND check_out IS NOT NULL", date).
		Count(&s.CheckedOut).Error; err != nil {
		return nil, err
	}

	pending, err := CountPendingLeaveRequests(ctx, db)
	if err != nil {
		return nil, err
	}
	s.Pending = pending
	return s, nil
}
