// Employee (roster) HTTP handlers.
//
// This file exposes the admin roster endpoints:
//   - GET    /admin/employees       (list, paginated)
//   - POST   /admin/employees       (create)
//   - PUT    /admin/employees/{id}  (update)
//   - DELETE /admin/employees/{id}  (delete; self-deletion is rejected)
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zenwork/go-attendance-backend/internal/domain"
	"github.com/zenwork/go-attendance-backend/internal/services"
)

// EmployeeService defines roster operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type EmployeeService interface {
	// Create adds a roster entry with defaults applied.
	Create(ctx context.Context, in services.EmployeeInput) (*domain.Employee, error)
	// Update overwrites the mutable fields of an existing entry.
	Update(ctx context.Context, id string, in services.EmployeeInput) (*domain.Employee, error)
	// Delete removes an entry; deleting the acting admin is rejected.
	Delete(ctx context.Context, actorID, id string) error
	// Get fetches a single entry.
	Get(ctx context.Context, id string) (*domain.Employee, error)
	// ListPage returns a page of the roster and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Employee, int64, error)
}

// ListEmployeesResponse wraps a page of roster entries and pagination
// information.
type ListEmployeesResponse struct {
	Employees  []domain.Employee `json:"employees"`
	Pagination Pagination        `json:"pagination"`
}

// ListEmployees returns a page of the roster.
func (h *Handlers) ListEmployees(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.empSvc.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	ok(c, http.StatusOK, ListEmployeesResponse{
		Employees:  items,
		Pagination: paginationOf(page, pageSize, total),
	})
}

// GetEmployee fetches a single roster entry by id.
func (h *Handlers) GetEmployee(c *gin.Context) {
	emp, err := h.empSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "employee not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, emp)
}

// CreateEmployee adds a roster entry. Name and email are required; role, join
// date, and the leave balance fall back to defaults.
func (h *Handlers) CreateEmployee(c *gin.Context) {
	var in services.EmployeeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	emp, err := h.empSvc.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrMissingEmployeeFields) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and email are required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, emp)
}

// UpdateEmployee overwrites the mutable fields of a roster entry.
func (h *Handlers) UpdateEmployee(c *gin.Context) {
	var in services.EmployeeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	emp, err := h.empSvc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingEmployeeFields):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and email are required")
		case errors.Is(err, services.ErrEmployeeNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "employee not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, emp)
}

// DeleteEmployee removes a roster entry. The acting admin cannot delete their
// own row.
func (h *Handlers) DeleteEmployee(c *gin.Context) {
	if err := h.empSvc.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, services.ErrSelfDelete):
			fail(c, http.StatusForbidden, ErrCodeSelfDelete, err.Error())
		case errors.Is(err, services.ErrEmployeeNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "employee not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}
