package services

import (
	"context"
	"testing"

	"github.com/zenwork/go-attendance-backend/internal/domain"
	"github.com/zenwork/go-attendance-backend/internal/repo"
)

func TestSubmit_Validation(t *testing.T) {
	db := newServiceDB(t)
	seedEmployee(t, db, "u1", "A")
	svc := NewLeaveService(db, false)

	cases := []struct {
		name string
		in   LeaveInput
		want error
	}{
		{"missing type", LeaveInput{StartDate: "2025-07-01", EndDate: "2025-07-01", Reason: "r"}, ErrMissingLeaveFields},
		{"missing reason", LeaveInput{Type: domain.LeaveAnnual, StartDate: "2025-07-01", EndDate: "2025-07-01"}, ErrMissingLeaveFields},
		{"blank fields", LeaveInput{Type: "  ", StartDate: " ", EndDate: " ", Reason: " "}, ErrMissingLeaveFields},
		{"unknown type", LeaveInput{Type: "Sabbatical", StartDate: "2025-07-01", EndDate: "2025-07-01", Reason: "r"}, ErrInvalidLeaveType},
		{"bad start date", LeaveInput{Type: domain.LeaveAnnual, StartDate: "07/01/2025", EndDate: "2025-07-01", Reason: "r"}, ErrInvalidLeaveDate},
		{"bad end date", LeaveInput{Type: domain.LeaveAnnual, StartDate: "2025-07-01", EndDate: "not-a-date", Reason: "r"}, ErrInvalidLeaveDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Submit(context.Background(), "u1", tc.in); err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSubmit_InvertedRangeAccepted(t *testing.T) {
	db := newServiceDB(t)
	seedEmployee(t, db, "u1", "A")
	svc := NewLeaveService(db, false)

	// End before start passes validation; the range is stored as given.
	req, err := svc.Submit(context.Background(), "u1", LeaveInput{
		Type:      domain.LeaveAnnual,
		StartDate: "2025-07-10",
		EndDate:   "2025-07-01",
		Reason:    "trip",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if req.StartDate != "2025-07-10" || req.EndDate != "2025-07-01" {
		t.Fatalf("range was rewritten: %+v", req)
	}
}

func TestSubmit_Success(t *testing.T) {
	db := newServiceDB(t)
	seedEmployee(t, db, "u1", "Lee Younghee")
	svc := NewLeaveService(db, false)

	req, err := svc.Submit(context.Background(), "u1", LeaveInput{
		Type:      domain.LeaveSick,
		StartDate: "2025-07-01",
		EndDate:   "2025-07-02",
		Reason:    "  flu  ",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if req.Status != domain.LeavePending {
		t.Fatalf("expected PENDING, got %s", req.Status)
	}
	if req.UserName != "Lee Younghee" {
		t.Fatalf("expected cached owner name, got %q", req.UserName)
	}
	if req.Reason != "flu" {
		t.Fatalf("expected trimmed reason, got %q", req.Reason)
	}
}

func TestSubmit_UnknownEmployee(t *testing.T) {
	db := newServiceDB(t)
	svc := NewLeaveService(db, false)

	_, err := svc.Submit(context.Background(), "ghost", LeaveInput{
		Type: domain.LeaveAnnual, StartDate: "2025-07-01", EndDate: "2025-07-01", Reason: "r",
	})
	if err != ErrEmployeeNotFound {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestDecide_InvalidAndUnknown(t *testing.T) {
	db := newServiceDB(t)
	svc := NewLeaveService(db, false)

	if _, err := svc.Decide(context.Background(), "whatever", "MAYBE"); err != ErrInvalidDecision {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
	if _, err := svc.Decide(context.Background(), "ghost", domain.LeaveApproved); err != ErrLeaveNotFound {
		t.Fatalf("expected ErrLeaveNotFound, got %v", err)
	}
}

func TestDecide_AppliedOnce(t *testing.T) {
	db := newServiceDB(t)
	seedEmployee(t, db, "u1", "A")
	svc := NewLeaveService(db, false)

	req, err := svc.Submit(context.Background(), "u1", LeaveInput{
		Type: domain.LeaveAnnual, StartDate: "2025-07-01", EndDate: "2025-07-03", Reason: "r",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	decided, err := svc.Decide(context.Background(), req.ID, domain.LeaveApproved)
	if err != nil {
		t.Fatalf("first decision: %v", err)
	}
	if decided.Status != domain.LeaveApproved {
		t.Fatalf("expected APPROVED, got %s", decided.Status)
	}

	// The terminal state sticks, whatever comes next.
	if _, err := svc.Decide(context.Background(), req.ID, domain.LeaveRejected); err != ErrLeaveAlreadyDecided {
		t.Fatalf("expected ErrLeaveAlreadyDecided, got %v", err)
	}
	got, _ := repo.GetLeaveRequest(context.Background(), db, req.ID)
	if got.Status != domain.LeaveApproved {
		t.Fatalf("terminal state rewritten: %s", got.Status)
	}
}

func TestDecide_DeductOnApproval(t *testing.T) {
	db := newServiceDB(t)
	seedEmployee(t, db, "u1", "A") // 15 days
	svc := NewLeaveService(db, true)

	req, err := svc.Submit(context.Background(), "u1", LeaveInput{
		Type: domain.LeaveAnnual, StartDate: "2025-07-01", EndDate: "2025-07-03", Reason: "r",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Decide(context.Background(), req.ID, domain.LeaveApproved); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	emp, _ := repo.GetEmployee(context.Background(), db, "u1")
	if emp.RemainingLeave != 12 { // 3 inclusive days
		t.Fatalf("expected 12 days left, got %v", emp.RemainingLeave)
	}
}

func TestDecide_RejectionNeverDeducts(t *testing.T) {
	db := newServiceDB(t)
	seedEmployee(t, db, "u1", "A")
	svc := NewLeaveService(db, true)

	req, err := svc.Submit(context.Background(), "u1", LeaveInput{
		Type: domain.LeaveAnnual, StartDate: "2025-07-01", EndDate: "2025-07-03", Reason: "r",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Decide(context.Background(), req.ID, domain.LeaveRejected); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	emp, _ := repo.GetEmployee(context.Background(), db, "u1")
	if emp.RemainingLeave != 15 {
		t.Fatalf("balance changed on rejection: %v", emp.RemainingLeave)
	}
}

func TestListMineAndAll(t *testing.T) {
	db := newServiceDB(t)
	seedEmployee(t, db, "u1", "A")
	seedEmployee(t, db, "u2", "B")
	svc := NewLeaveService(db, false)

	for _, uid := range []string{"u1", "u1", "u2"} {
		if _, err := svc.Submit(context.Background(), uid, LeaveInput{
			Type: domain.LeaveAnnual, StartDate: "2025-07-01", EndDate: "2025-07-01", Reason: "r",
		}); err != nil {
			t.Fatalf("submit for %s: %v", uid, err)
		}
	}

	mine, err := svc.ListMine(context.Background(), "u1")
	if err != nil || len(mine) != 2 {
		t.Fatalf("ListMine: len=%d err=%v", len(mine), err)
	}
	all, err := svc.ListAll(context.Background())
	if err != nil || len(all) != 3 {
		t.Fatalf("ListAll: len=%d err=%v", len(all), err)
	}
}
