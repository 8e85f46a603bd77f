// Package domain defines the persistence models for employees, attendance
// records, and leave requests. These types are mapped with GORM and form the
// core data layer of the attendance application.
//
// Column names are snake_case (the storage-side contract, see the gorm tags)
// while JSON fields are camelCase (the API-side contract, see the json tags).
// The tag pair on each field is the single, exhaustive mapping table between
// the two shapes; keep both sides in sync when adding fields.
package domain

import (
	"time"
)

// Attendance statuses.
const (
	StatusIn   = "IN"
	StatusOut  = "OUT"
	StatusLate = "LATE"
	StatusOff  = "OFF"
)

// Leave request statuses. A request is created PENDING and transitions to one
// of the terminal states exactly once.
const (
	LeavePending  = "PENDING"
	LeaveApproved = "APPROVED"
	LeaveRejected = "REJECTED"
)

// Leave types.
const (
	LeaveAnnual   = "Annual"
	LeaveSick     = "Sick"
	LeavePersonal = "Personal"
	LeaveOther    = "Other"
)

// Employee roles.
const (
	RoleEmployee = "EMPLOYEE"
	RoleAdmin    = "ADMIN"
)

// ValidLeaveType reports whether t is one of the known leave types.
func ValidLeaveType(t string) bool {
	switch t {
	case LeaveAnnual, LeaveSick, LeavePersonal, LeaveOther:
		return true
	}
	return false
}

// ValidDecision reports whether s is a terminal leave status an admin may
// assign.
func ValidDecision(s string) bool {
	return s == LeaveApproved || s == LeaveRejected
}

// Employee is a roster entry. Rows are created and maintained by admin
// operations; RemainingLeave is debited on approval only when the deduction
// policy is enabled.
type Employee struct {
	ID             string    `json:"id"             gorm:"column:id;type:varchar(64);primaryKey"`
	Name           string    `json:"name"           gorm:"column:name;type:varchar(255);not null"`
	Email          string    `json:"email"          gorm:"column:email;type:varchar(255);not null"`
	Role           string    `json:"role"           gorm:"column:role;type:varchar(16);not null;default:'EMPLOYEE';check:role IN ('EMPLOYEE','ADMIN')"`
	Department     string    `json:"department"     gorm:"column:department;type:varchar(255)"`
	JoinDate       string    `json:"joinDate"       gorm:"column:join_date;type:varchar(10);not null"`
	RemainingLeave float64   `json:"remainingLeave" gorm:"column:remaining_leave;not null;default:0"`
	CreatedAt      time.Time `json:"createdAt"      gorm:"column:created_at"`
	UpdatedAt      time.Time `json:"updatedAt"      gorm:"column:updated_at"`
}

// TableName returns the database table name for Employee.
func (Employee) TableName() string { return "employees" }

// AttendanceRecord is a single day's attendance for one user. At most one row
// exists per (user, date); the unique index backs the service-level check so a
// race between two check-ins cannot create duplicates.
type AttendanceRecord struct {
	ID        string    `json:"id"                 gorm:"column:id;type:char(36);primaryKey"`
	UserID    string    `json:"userId"             gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:ux_attendance_user_date,priority:1"`
	UserName  string    `json:"userName"           gorm:"column:user_name;type:varchar(255)"`
	Date      string    `json:"date"               gorm:"column:date;type:varchar(10);not null;uniqueIndex:ux_attendance_user_date,priority:2"`
	CheckIn   string    `json:"checkIn"            gorm:"column:check_in;type:varchar(8);not null"`
	CheckOut  *string   `json:"checkOut,omitempty" gorm:"column:check_out;type:varchar(8)"`
	Status    string    `json:"status"             gorm:"column:status;type:varchar(8);not null;check:status IN ('IN','OUT','LATE','OFF')"`
	CreatedAt time.Time `json:"createdAt"          gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt"          gorm:"column:updated_at"`
}

// TableName returns the database table name for AttendanceRecord.
func (AttendanceRecord) TableName() string { return "attendance" }

// LeaveRequest is an employee's request for absence. The date range is
// inclusive; ordering of start/end is intentionally not validated anywhere
// (a preserved behavior of the product, not an oversight of this layer).
type LeaveRequest struct {
	ID        string    `json:"id"        gorm:"column:id;type:char(36);primaryKey"`
	UserID    string    `json:"userId"    gorm:"column:user_id;type:varchar(64);not null;index:idx_leave_user"`
	UserName  string    `json:"userName"  gorm:"column:user_name;type:varchar(255)"`
	Type      string    `json:"type"      gorm:"column:type;type:varchar(16);not null;check:type IN ('Annual','Sick','Personal','Other')"`
	StartDate string    `json:"startDate" gorm:"column:start_date;type:varchar(10);not null"`
	EndDate   string    `json:"endDate"   gorm:"column:end_date;type:varchar(10);not null"`
	Status    string    `json:"status"    gorm:"column:status;type:varchar(16);not null;default:'PENDING';check:status IN ('PENDING','APPROVED','REJECTED')"`
	Reason    string    `json:"reason"    gorm:"column:reason;type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

// TableName returns the database table name for LeaveRequest.
func (LeaveRequest) TableName() string { return "leave_requests" }

// Chat message roles for the assistant endpoint.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn of an assistant conversation. Messages are ephemeral:
// they live in the client's message list for the duration of a session and are
// never persisted.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}
