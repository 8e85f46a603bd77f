// Package services: EmployeeService
//
// This file implements the EmployeeService, which manages the roster. It
// normalizes names and departments, applies defaults for new hires (join date,
// starting leave balance, EMPLOYEE role), and enforces the self-deletion
// guard before any store call.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zenwork/go-attendance-backend/internal/domain"
	"github.com/zenwork/go-attendance-backend/internal/repo"
)

// EmployeeInput carries the admin-editable fields of a roster entry.
type EmployeeInput struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Role           string   `json:"role"`
	Department     string   `json:"department"`
	JoinDate       string   `json:"joinDate"`
	RemainingLeave *float64 `json:"remainingLeave"`
}

// EmployeeService provides roster operations for admins.
type EmployeeService struct {
	DB *gorm.DB

	// DefaultBalance is granted to new employees when none is supplied.
	DefaultBalance float64

	caser cases.Caser
}

// NewEmployeeService constructs an EmployeeService.
func NewEmployeeService(db *gorm.DB, defaultBalance float64) *EmployeeService {
	return &EmployeeService{
		DB:             db,
		DefaultBalance: defaultBalance,
		caser:          cases.Title(language.Und, cases.NoLower),
	}
}

// Create adds a roster entry. Name and email are required; role defaults to
// EMPLOYEE, join date to today, and the leave balance to the configured
// default.
func (s *EmployeeService) Create(ctx context.Context, in EmployeeInput) (*domain.Employee, error) {
	in.Name = collapseSpaces(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" {
		return nil, ErrMissingEmployeeFields
	}

	role := strings.ToUpper(strings.TrimSpace(in.Role))
	if role != domain.RoleAdmin {
		role = domain.RoleEmployee
	}
	joinDate := strings.TrimSpace(in.JoinDate)
	if joinDate == "" {
		joinDate = time.Now().UTC().Format(dateLayout)
	}
	balance := s.DefaultBalance
	if in.RemainingLeave != nil {
		balance = *in.RemainingLeave
	}

	emp := &domain.Employee{
		ID:             "u-" + uuid.NewString(),
		Name:           in.Name,
		Email:          in.Email,
		Role:           role,
		Department:     s.normalizeDepartment(in.Department),
		JoinDate:       joinDate,
		RemainingLeave: balance,
	}
	if err := repo.CreateEmployee(ctx, s.DB, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// Update overwrites the mutable fields of an existing entry.
func (s *EmployeeService) Update(ctx context.Context, id string, in EmployeeInput) (*domain.Employee, error) {
	in.Name = collapseSpaces(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" {
		return nil, ErrMissingEmployeeFields
	}

	cur, err := repo.GetEmployee(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	cur.Name = in.Name
	cur.Email = in.Email
	if role := strings.ToUpper(strings.TrimSpace(in.Role)); role == domain.RoleAdmin || role == domain.RoleEmployee {
		cur.Role = role
	}
	if dep := s.normalizeDepartment(in.Department); dep != "" {
		cur.Department = dep
	}
	if jd := strings.TrimSpace(in.JoinDate); jd != "" {
		cur.JoinDate = jd
	}
	if in.RemainingLeave != nil {
		cur.RemainingLeave = *in.RemainingLeave
	}

	if err := repo.UpdateEmployee(ctx, s.DB, cur); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return cur, nil
}

// Delete removes an entry. Deleting the acting admin's own row is rejected
// before any gateway call.
func (s *EmployeeService) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return ErrSelfDelete
	}
	if err := repo.DeleteEmployee(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	return nil
}

// Get fetches a single entry.
func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	emp, err := repo.GetEmployee(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return emp, nil
}

// ListPage returns a page of the roster and the total count.
func (s *EmployeeService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Employee, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountEmployees(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Employee{}, 0, nil
	}

	items, err := repo.ListEmployeesPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// normalizeDepartment trims and title-cases a department label so the roster
// stays consistent across admins typing in different styles.
func (s *EmployeeService) normalizeDepartment(dep string) string {
	dep = collapseSpaces(dep)
	if dep == "" {
		return ""
	}
	return s.caser.String(dep)
}

// collapseSpaces trims whitespace and collapses runs of it to one space.
func collapseSpaces(v string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(v), " ")
}

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)
