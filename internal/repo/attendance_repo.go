// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// AttendanceRecord model.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zenwork/go-attendance-backend/internal/domain"
)

// ErrDuplicateDay indicates a second attendance row for the same (user, date)
// hit the unique index. Callers normally pre-check, so this only fires when
// two check-ins race.
var ErrDuplicateDay = errors.New("attendance record already exists for this day")

// CreateAttendance inserts a new attendance row. The id is a generated UUID
// and CreatedAt is set to UTC. A unique-index violation on (user_id, date)
// is mapped to ErrDuplicateDay.
func CreateAttendance(ctx context.Context, db *gorm.DB, rec *domain.AttendanceRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
		low := strings.ToLower(err.Error())
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(low, "unique constraint failed") ||
			strings.Contains(low, "constraint failed: unique") {
			return ErrDuplicateDay
		}
		return err
	}
	return nil
}

// GetAttendanceForDay fetches the single record for (userID, date), or
// ErrNotFound.
func GetAttendanceForDay(ctx context.Context, db *gorm.DB, userID, date string) (*domain.AttendanceRecord, error) {
	var rec domain.AttendanceRecord
	err := db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetAttendanceRecord fetches a record by primary key. Replay paths use it to
// re-serve a previously created row.
func GetAttendanceRecord(ctx context.Context, db *gorm.DB, id string) (*domain.AttendanceRecord, error) {
	var rec domain.AttendanceRecord
	if err := db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListAttendance returns all records for userID, most recent day first.
func ListAttendance(ctx context.Context, db *gorm.DB, userID string) ([]domain.AttendanceRecord, error) {
	var out []domain.AttendanceRecord
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc, check_in desc").
		Find(&out).Error
	return out, err
}

// CountAttendance returns the total number of records for userID.
func CountAttendance(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.AttendanceRecord{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListAttendancePage returns a paginated slice of records for userID, ordered
// like ListAttendance.
func ListAttendancePage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.AttendanceRecord, error) {
	var out []domain.AttendanceRecord
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc, check_in desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListAllAttendance returns every record in the store, most recent day first.
// Admin views consume this.
func ListAllAttendance(ctx context.Context, db *gorm.DB) ([]domain.AttendanceRecord, error) {
	var out []domain.AttendanceRecord
	err := db.WithContext(ctx).
		Order("date desc, check_in asc").
		Find(&out).Error
	return out, err
}

// CloseAttendance sets the check-out time and the OUT status on the open
// record for (userID, date). The WHERE clause requires check_out to still be
// NULL, so a record that was already closed is not matched. Zero rows
// affected returns ErrNotFound; the service layer distinguishes "never
// checked in" from "already checked out" before reporting.
func CloseAttendance(ctx context.Context, db *gorm.DB, userID, date, checkOut string) error {
	res := db.WithContext(ctx).
		Model(&domain.AttendanceRecord{}).
		Where("user_id = ? AND date = ? AND check_out IS NULL", userID, date).
		Updates(map[string]any{
			"check_out": checkOut,
			"status":    domain.StatusOut,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
