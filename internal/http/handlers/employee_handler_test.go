package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/zenwork/go-attendance-backend/internal/domain"
	"github.com/zenwork/go-attendance-backend/internal/services"
)

func TestCreateEmployee_DefaultsAndValidation(t *testing.T) {
	db := newHandlerDB(t)
	r := newAPI(t, db, 8, 30)

	// Missing required fields.
	w := doJSON(t, r, http.MethodPost, "/admin/employees", "admin", services.EmployeeInput{Name: "X"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/admin/employees", "admin", services.EmployeeInput{
		Name:       "Park Minsoo",
		Email:      "minsoo.park@zenwork.com",
		Department: "design",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	var emp domain.Employee
	if err := json.Unmarshal(w.Body.Bytes(), &emp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if emp.Role != domain.RoleEmployee || emp.RemainingLeave != 15 || emp.Department != "Design" {
		t.Fatalf("unexpected employee: %+v", emp)
	}
}

func TestGetEmployee(t *testing.T) {
	db := newHandlerDB(t)
	seedEmployee(t, db, "u1", "A")
	r := newAPI(t, db, 8, 30)

	w := doJSON(t, r, http.MethodGet, "/admin/employees/u1", "admin", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var emp domain.Employee
	_ = json.Unmarshal(w.Body.Bytes(), &emp)
	if emp.ID != "u1" {
		t.Fatalf("unexpected employee: %+v", emp)
	}

	w = doJSON(t, r, http.MethodGet, "/admin/employees/ghost", "admin", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestListEmployees_Paginated(t *testing.T) {
	db := newHandlerDB(t)
	for _, id := range []string{"u1", "u2", "u3"} {
		seedEmployee(t, db, id, "N "+id)
	}
	r := newAPI(t, db, 8, 30)

	w := doJSON(t, r, http.MethodGet, "/admin/employees?page=1&page_size=2", "admin", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp ListEmployeesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Employees) != 2 || resp.Pagination.Total != 3 || !resp.Pagination.HasNext {
		t.Fatalf("unexpected page: %+v", resp.Pagination)
	}
}

func TestUpdateEmployee(t *testing.T) {
	db := newHandlerDB(t)
	seedEmployee(t, db, "u1", "A")
	r := newAPI(t, db, 8, 30)

	w := doJSON(t, r, http.MethodPut, "/admin/employees/u1", "admin", services.EmployeeInput{
		Name:  "A Prime",
		Email: "a2@zenwork.com",
		Role:  "ADMIN",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var emp domain.Employee
	_ = json.Unmarshal(w.Body.Bytes(), &emp)
	if emp.Name != "A Prime" || emp.Role != domain.RoleAdmin {
		t.Fatalf("unexpected employee: %+v", emp)
	}

	w = doJSON(t, r, http.MethodPut, "/admin/employees/ghost", "admin", services.EmployeeInput{
		Name: "X", Email: "x@x.com",
	}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestDeleteEmployee_SelfGuard(t *testing.T) {
	db := newHandlerDB(t)
	seedEmployee(t, db, "admin1", "Boss")
	seedEmployee(t, db, "u1", "A")
	r := newAPI(t, db, 8, 30)

	// Acting admin deleting their own row.
	w := doJSON(t, r, http.MethodDelete, "/admin/employees/admin1", "admin1", nil, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("self-delete status = %d", w.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &er)
	if er.Code != ErrCodeSelfDelete {
		t.Fatalf("expected %s, got %s", ErrCodeSelfDelete, er.Code)
	}

	// Deleting someone else works.
	w = doJSON(t, r, http.MethodDelete, "/admin/employees/u1", "admin1", nil, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/admin/employees/u1", "admin1", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", w.Code)
	}
}
