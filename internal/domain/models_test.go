package domain

import (
	"encoding/json"
	"testing"
)

func TestValidLeaveType(t *testing.T) {
	for _, ok := range []string{LeaveAnnual, LeaveSick, LeavePersonal, LeaveOther} {
		if !ValidLeaveType(ok) {
			t.Errorf("ValidLeaveType(%q) = false", ok)
		}
	}
	for _, bad := range []string{"", "annual", "ANNUAL", "Sabbatical"} {
		if ValidLeaveType(bad) {
			t.Errorf("ValidLeaveType(%q) = true", bad)
		}
	}
}

func TestValidDecision(t *testing.T) {
	if !ValidDecision(LeaveApproved) || !ValidDecision(LeaveRejected) {
		t.Fatal("terminal states must be valid decisions")
	}
	for _, bad := range []string{LeavePending, "approved", "", "MAYBE"} {
		if ValidDecision(bad) {
			t.Errorf("ValidDecision(%q) = true", bad)
		}
	}
}

func TestAttendanceRecord_JSONShape(t *testing.T) {
	out := "18:00:00"
	rec := AttendanceRecord{
		ID:       "a1",
		UserID:   "u1",
		UserName: "A",
		Date:     "2025-06-02",
		CheckIn:  "08:30:00",
		CheckOut: &out,
		Status:   StatusOut,
	}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// The API contract is camelCase.
	for _, key := range []string{"userId", "userName", "checkIn", "checkOut"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing %q in %s", key, b)
		}
	}
	if _, ok := m["user_id"]; ok {
		t.Error("snake_case leaked into the JSON shape")
	}
}

func TestAttendanceRecord_CheckOutOmittedWhileOpen(t *testing.T) {
	rec := AttendanceRecord{ID: "a1", UserID: "u1", Date: "2025-06-02", CheckIn: "08:30:00", Status: StatusIn}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	if _, ok := m["checkOut"]; ok {
		t.Error("open records must omit checkOut")
	}
}
