// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// LeaveRequest model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zenwork/go-attendance-backend/internal/domain"
)

// CreateLeaveRequest inserts a new PENDING request. The id is a generated
// UUID and CreatedAt is set to UTC.
func CreateLeaveRequest(ctx context.Context, db *gorm.DB, req *domain.LeaveRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	req.Status = domain.LeavePending
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(req).Error
}

// GetLeaveRequest fetches a request by id, or ErrNotFound.
func GetLeaveRequest(ctx context.Context, db *gorm.DB, id string) (*domain.LeaveRequest, error) {
	var req domain.LeaveRequest
	if err := db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// ListLeaveRequests returns all requests belonging to userID, newest first.
func ListLeaveRequests(ctx context.Context, db *gorm.DB, userID string) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// ListAllLeaveRequests returns every request in the store, newest first.
// The admin approval queue consumes this.
func ListAllLeaveRequests(ctx context.Context, db *gorm.DB) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	err := db.WithContext(ctx).Order("created_at desc").Find(&out).Error
	return out, err
}

// CountPendingLeaveRequests returns the number of requests awaiting a
// decision.
func CountPendingLeaveRequests(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.LeaveRequest{}).
		Where("status = ?", domain.LeavePending).
		Count(&total).Error
	return total, err
}

// DecideLeaveRequest transitions a request from PENDING to the given terminal
// status. The WHERE clause only matches PENDING rows, so a request that was
// already decided is left untouched and zero rows are affected; the service
// layer turns that into a distinct already-decided error. Returns ErrNotFound
// when nothing matched.
func DecideLeaveRequest(ctx context.Context, db *gorm.DB, id, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.LeaveRequest{}).
		Where("id = ? AND status = ?", id, domain.LeavePending).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
