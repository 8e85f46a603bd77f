// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver), schema migrations, and the first-run seed.
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/zenwork/go-attendance-backend/internal/domain"
)

// DefaultAdminID is the roster id used when no explicit identity header is
// supplied and the one the first-run seed creates.
const DefaultAdminID = "u123"

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for all domain tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Employee{},
		&domain.AttendanceRecord{},
		&domain.LeaveRequest{},
		&domain.Idempotency{},
	)
}

// SeedDefaultAdmin inserts the bootstrap admin account when the roster is
// empty, so a fresh database is immediately usable without an auth system.
// It is a no-op when any employee row exists.
func SeedDefaultAdmin(db *gorm.DB, defaultBalance float64) error {
	var count int64
	if err := db.Model(&domain.Employee{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	admin := &domain.Employee{
		ID:             DefaultAdminID,
		Name:           "Kim Chulsoo",
		Email:          "chulsoo.kim@zenwork.com",
		Role:           domain.RoleAdmin,
		Department:     "Product Engineering",
		JoinDate:       "2022-03-15",
		RemainingLeave: defaultBalance,
		CreatedAt:      time.Now().UTC(),
	}
	return db.Create(admin).Error
}
