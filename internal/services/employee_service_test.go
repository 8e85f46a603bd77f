package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/zenwork/go-attendance-backend/internal/domain"
	"github.com/zenwork/go-attendance-backend/internal/repo"
)

func TestEmployeeCreate_Defaults(t *testing.T) {
	db := newServiceDB(t)
	svc := NewEmployeeService(db, 15)

	emp, err := svc.Create(context.Background(), EmployeeInput{
		Name:  "  Park   Minsoo ",
		Email: " minsoo.park@zenwork.com ",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasPrefix(emp.ID, "u-") {
		t.Fatalf("expected generated id, got %q", emp.ID)
	}
	if emp.Name != "Park Minsoo" {
		t.Fatalf("expected collapsed name, got %q", emp.Name)
	}
	if emp.Email != "minsoo.park@zenwork.com" {
		t.Fatalf("expected trimmed email, got %q", emp.Email)
	}
	if emp.Role != domain.RoleEmployee {
		t.Fatalf("expected EMPLOYEE role default, got %s", emp.Role)
	}
	if emp.JoinDate != time.Now().UTC().Format("2006-01-02") {
		t.Fatalf("expected today's join date, got %s", emp.JoinDate)
	}
	if emp.RemainingLeave != 15 {
		t.Fatalf("expected default balance, got %v", emp.RemainingLeave)
	}
}

func TestEmployeeCreate_ExplicitFields(t *testing.T) {
	db := newServiceDB(t)
	svc := NewEmployeeService(db, 15)

	balance := 20.5
	emp, err := svc.Create(context.Background(), EmployeeInput{
		Name:           "Kim Jisoo",
		Email:          "jisoo.kim@zenwork.com",
		Role:           "admin", // any casing
		Department:     "product  engineering",
		JoinDate:       "2023-05-01",
		RemainingLeave: &balance,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if emp.Role != domain.RoleAdmin {
		t.Fatalf("expected ADMIN, got %s", emp.Role)
	}
	if emp.Department != "Product Engineering" {
		t.Fatalf("expected title-cased department, got %q", emp.Department)
	}
	if emp.JoinDate != "2023-05-01" || emp.RemainingLeave != 20.5 {
		t.Fatalf("unexpected employee: %+v", emp)
	}
}

func TestEmployeeCreate_MissingFields(t *testing.T) {
	db := newServiceDB(t)
	svc := NewEmployeeService(db, 15)

	if _, err := svc.Create(context.Background(), EmployeeInput{Email: "x@x.com"}); err != ErrMissingEmployeeFields {
		t.Fatalf("expected ErrMissingEmployeeFields, got %v", err)
	}
	if _, err := svc.Create(context.Background(), EmployeeInput{Name: "X"}); err != ErrMissingEmployeeFields {
		t.Fatalf("expected ErrMissingEmployeeFields, got %v", err)
	}
}

func TestEmployeeUpdate(t *testing.T) {
	db := newServiceDB(t)
	svc := NewEmployeeService(db, 15)

	emp, err := svc.Create(context.Background(), EmployeeInput{Name: "A", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	balance := 10.0
	got, err := svc.Update(context.Background(), emp.ID, EmployeeInput{
		Name:           "A Prime",
		Email:          "a2@x.com",
		Role:           "ADMIN",
		Department:     "design",
		RemainingLeave: &balance,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Name != "A Prime" || got.Role != domain.RoleAdmin || got.Department != "Design" || got.RemainingLeave != 10 {
		t.Fatalf("unexpected update result: %+v", got)
	}

	reloaded, _ := repo.GetEmployee(context.Background(), db, emp.ID)
	if reloaded.Email != "a2@x.com" {
		t.Fatalf("update not persisted: %+v", reloaded)
	}
}

func TestEmployeeUpdate_NotFound(t *testing.T) {
	db := newServiceDB(t)
	svc := NewEmployeeService(db, 15)

	if _, err := svc.Update(context.Background(), "ghost", EmployeeInput{Name: "X", Email: "x@x.com"}); err != ErrEmployeeNotFound {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeDelete_SelfGuard(t *testing.T) {
	db := newServiceDB(t)
	seedEmployee(t, db, "admin1", "Boss")
	svc := NewEmployeeService(db, 15)

	// The guard runs before any store call, so even an id that exists is safe.
	if err := svc.Delete(context.Background(), "admin1", "admin1"); err != ErrSelfDelete {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}
	if _, err := repo.GetEmployee(context.Background(), db, "admin1"); err != nil {
		t.Fatalf("row should survive a rejected self-delete: %v", err)
	}
}

func TestEmployeeDelete(t *testing.T) {
	db := newServiceDB(t)
	seedEmployee(t, db, "u1", "A")
	svc := NewEmployeeService(db, 15)

	if err := svc.Delete(context.Background(), "admin1", "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "admin1", "u1"); err != ErrEmployeeNotFound {
		t.Fatalf("expected ErrEmployeeNotFound on second delete, got %v", err)
	}
}

func TestEmployeeListPage(t *testing.T) {
	db := newServiceDB(t)
	svc := NewEmployeeService(db, 15)

	items, total, err := svc.ListPage(context.Background(), 1, 20)
	if err != nil || total != 0 || len(items) != 0 {
		t.Fatalf("empty roster: items=%d total=%d err=%v", len(items), total, err)
	}

	for _, id := range []string{"u1", "u2", "u3"} {
		seedEmployee(t, db, id, "N "+id)
	}

	items, total, err = svc.ListPage(context.Background(), 2, 2)
	if err != nil || total != 3 || len(items) != 1 {
		t.Fatalf("page 2: items=%d total=%d err=%v", len(items), total, err)
	}
}
