// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Employee
// model (the roster).
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When an employee is not found (including zero-rows-affected updates and
//     deletes), functions return gorm.ErrRecordNotFound (exported here as
//     ErrNotFound).
//   - On other DB errors, the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/zenwork/go-attendance-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateEmployee inserts a new roster row. The caller supplies the id
// (services generate one when adding employees).
func CreateEmployee(ctx context.Context, db *gorm.DB, e *domain.Employee) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(e).Error
}

// GetEmployee fetches a single employee by id, or ErrNotFound.
func GetEmployee(ctx context.Context, db *gorm.DB, id string) (*domain.Employee, error) {
	var e domain.Employee
	if err := db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEmployees returns the full roster ordered by join date descending,
// newest hires first.
func ListEmployees(ctx context.Context, db *gorm.DB) ([]domain.Employee, error) {
	var out []domain.Employee
	err := db.WithContext(ctx).Order("join_date desc, name asc").Find(&out).Error
	return out, err
}

// CountEmployees returns the total number of roster rows.
func CountEmployees(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Employee{}).Count(&total).Error
	return total, err
}

// ListEmployeesPage returns a paginated slice of the roster, ordered like
// ListEmployees. The caller computes offset and limit.
func ListEmployeesPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Employee, error) {
	var out []domain.Employee
	err := db.WithContext(ctx).
		Order("join_date desc, name asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdateEmployee overwrites the mutable fields of the row matching e.ID.
// Returns ErrNotFound when no row was affected.
func UpdateEmployee(ctx context.Context, db *gorm.DB, e *domain.Employee) error {
	res := db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"name":            e.Name,
			"email":           e.Email,
			"role":            e.Role,
			"department":      e.Department,
			"join_date":       e.JoinDate,
			"remaining_leave": e.RemainingLeave,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteEmployee removes the row matching id. Returns ErrNotFound when no
// row was affected. The self-deletion guard lives in the service layer and
// runs before this is ever called.
func DeleteEmployee(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Employee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DebitLeaveBalance subtracts days from the employee's remaining leave.
// Returns ErrNotFound when the employee does not exist.
func DebitLeaveBalance(ctx context.Context, db *gorm.DB, id string, days float64) error {
	res := db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", id).
		Update("remaining_leave", gorm.Expr("remaining_leave - ?", days))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
