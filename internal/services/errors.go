// Package services defines the business logic for attendance, leave, the
// roster, and the AI assistant. This file centralizes common service-level
// error values so that they can be consistently returned by service methods
// and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import "errors"

// Attendance-related errors.
var (
	// ErrAlreadyCheckedIn is returned when a check-in is attempted and a
	// record for (user, today) already exists.
	ErrAlreadyCheckedIn = errors.New("already checked in today")

	// ErrNotCheckedIn is returned when a check-out targets a day with no
	// attendance record. Zero rows affected is never reported as success.
	ErrNotCheckedIn = errors.New("no check-in found for today")

	// ErrAlreadyCheckedOut is returned when today's record already carries a
	// check-out time.
	ErrAlreadyCheckedOut = errors.New("already checked out today")
)

// Leave-related errors.
var (
	// ErrMissingLeaveFields is returned when a submission lacks one of the
	// required fields (type, start date, end date, reason).
	ErrMissingLeaveFields = errors.New("type, startDate, endDate and reason are required")

	// ErrInvalidLeaveType is returned when the submitted type is not one of
	// Annual, Sick, Personal, Other.
	ErrInvalidLeaveType = errors.New("unknown leave type")

	// ErrInvalidLeaveDate is returned when a date field does not parse as
	// YYYY-MM-DD.
	ErrInvalidLeaveDate = errors.New("dates must be formatted YYYY-MM-DD")

	// ErrLeaveNotFound indicates that the requested leave request does not
	// exist.
	ErrLeaveNotFound = errors.New("leave request not found")

	// ErrLeaveAlreadyDecided is returned when a decision targets a request
	// that already left the PENDING state. Decisions are applied exactly once.
	ErrLeaveAlreadyDecided = errors.New("leave request already decided")

	// ErrInvalidDecision is returned when the decision is neither APPROVED
	// nor REJECTED.
	ErrInvalidDecision = errors.New("decision must be APPROVED or REJECTED")
)

// Assistant-related errors.
var (
	// ErrEmptyPrompt is returned when an assistant request contains an empty
	// message.
	ErrEmptyPrompt = errors.New("message is empty")

	// ErrPromptTooLong is returned when an assistant message exceeds the
	// configured length limit.
	ErrPromptTooLong = errors.New("message too long")
)

// Roster-related errors.
var (
	// ErrEmployeeNotFound indicates that the requested employee does not
	// exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrMissingEmployeeFields is returned when an add/update lacks a name or
	// email.
	ErrMissingEmployeeFields = errors.New("name and email are required")

	// ErrSelfDelete is returned when an admin attempts to delete their own
	// roster entry. The guard runs before any store call.
	ErrSelfDelete = errors.New("cannot delete your own account")
)
