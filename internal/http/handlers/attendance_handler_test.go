package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zenwork/go-attendance-backend/internal/domain"
	"github.com/zenwork/go-attendance-backend/internal/repo"
	"github.com/zenwork/go-attendance-backend/internal/services"
)

func init() { gin.SetMode(gin.TestMode) }

// ---------- test DB + wiring ----------

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Employee{}, &domain.AttendanceRecord{}, &domain.LeaveRequest{}, &domain.Idempotency{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, id, name string) {
	t.Helper()
	e := &domain.Employee{
		ID:             id,
		Name:           name,
		Email:          id + "@zenwork.com",
		Role:           domain.RoleEmployee,
		JoinDate:       "2024-01-01",
		RemainingLeave: 15,
	}
	if err := repo.CreateEmployee(context.Background(), db, e); err != nil {
		t.Fatalf("seed employee: %v", err)
	}
}

// newAPI wires real services over db onto a bare Gin engine with the routes
// the tests exercise. The attendance clock is pinned to a fixed instant.
func newAPI(t *testing.T, db *gorm.DB, hour, minute int) *gin.Engine {
	t.Helper()

	attSvc := services.NewAttendanceService(db, time.UTC, 9)
	attSvc.Now = func() time.Time { return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC) }
	leaveSvc := services.NewLeaveService(db, false)
	empSvc := services.NewEmployeeService(db, 15)
	aiSvc := services.NewAssistantService(db, nil)
	h := New(attSvc, leaveSvc, empSvc, aiSvc)

	r := gin.New()
	r.POST("/attendance/check-in", h.CheckIn)
	r.POST("/attendance/check-out", h.CheckOut)
	r.GET("/attendance", h.ListAttendance)
	r.POST("/leaves", h.SubmitLeave)
	r.GET("/leaves", h.ListLeaves)
	r.POST("/assistant/chat", h.Chat)
	r.GET("/admin/attendance", h.ListAllAttendance)
	r.GET("/admin/attendance/today", h.TodaySummary)
	r.GET("/admin/leaves", h.ListAllLeaves)
	r.PUT("/admin/leaves/:id/decision", h.DecideLeave)
	r.GET("/admin/employees", h.ListEmployees)
	r.POST("/admin/employees", h.CreateEmployee)
	r.GET("/admin/employees/:id", h.GetEmployee)
	r.PUT("/admin/employees/:id", h.UpdateEmployee)
	r.DELETE("/admin/employees/:id", h.DeleteEmployee)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, user string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ---------- tests ----------

func TestCheckIn_Created(t *testing.T) {
	db := newHandlerDB(t)
	seedEmployee(t, db, "u1", "A")
	r := newAPI(t, db, 8, 30)

	w := doJSON(t, r, http.MethodPost, "/attendance/check-in", "u1", nil, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	var rec domain.AttendanceRecord
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Status != domain.StatusIn || rec.Date != "2025-06-02" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestCheckIn_LateAndDuplicate(t *testing.T) {
	db := newHandlerDB(t)
	seedEmployee(t, db, "u1", "A")
	r := newAPI(t, db, 9, 15)

	w := doJSON(t, r, http.MethodPost, "/attendance/check-in", "u1", nil, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var rec domain.AttendanceRecord
	_ = json.Unmarshal(w.Body.Bytes(), &rec)
	if rec.Status != domain.StatusLate {
		t.Fatalf("expected LATE, got %s", rec.Status)
	}

	w = doJSON(t, r, http.MethodPost, "/attendance/check-in", "u1", nil, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d", w.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &er)
	if er.Code != ErrCodeAlreadyCheckedIn {
		t.Fatalf("expected %s, got %s", ErrCodeAlreadyCheckedIn, er.Code)
	}
}

func TestCheckIn_UnknownUser(t *testing.T) {
	db := newHandlerDB(t)
	r := newAPI(t, db, 8, 30)

	w := doJSON(t, r, http.MethodPost, "/attendance/check-in", "ghost", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCheckIn_IdempotencyReplayAndStore(t *testing.T) {
	db := newHandlerDB(t)
	seedEmployee(t, db, "u1", "A")
	r := newAPI(t, db, 8, 30)

	hdr := map[string]string{"Idempotency-Key": "key-1"}
	w := doJSON(t, r, http.MethodPost, "/attendance/check-in", "u1", nil, hdr)
	if w.Code != http.StatusCreated {
		t.Fatalf("first status = %d body=%s", w.Code, w.Body.String())
	}
	var first domain.AttendanceRecord
	_ = json.Unmarshal(w.Body.Bytes(), &first)

	// A retry with the same key replays the stored record instead of a 409.
	w = doJSON(t, r, http.MethodPost, "/attendance/check-in", "u1", nil, hdr)
	if w.Code != http.StatusOK {
		t.Fatalf("replay status = %d body=%s", w.Code, w.Body.String())
	}
	if w.Header().Get("Idempotency-Replayed") != "true" {
		t.Fatal("expected Idempotency-Replayed header")
	}
	var replayed domain.AttendanceRecord
	_ = json.Unmarshal(w.Body.Bytes(), &replayed)
	if replayed.ID != first.ID {
		t.Fatalf("replay returned a different record: %s vs %s", replayed.ID, first.ID)
	}
}

func TestCheckOut_FlowAndErrors(t *testing.T) {
	db := newHandlerDB(t)
	seedEmployee(t, db, "u1", "A")
	r := newAPI(t, db, 8, 30)

	// Check-out before check-in.
	w := doJSON(t, r, http.MethodPost, "/attendance/check-out", "u1", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &er)
	if er.Code != ErrCodeNotCheckedIn {
		t.Fatalf("expected %s, got %s", ErrCodeNotCheckedIn, er.Code)
	}

	if w := doJSON(t, r, http.MethodPost, "/attendance/check-in", "u1", nil, nil); w.Code != http.StatusCreated {
		t.Fatalf("check-in status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/attendance/check-out", "u1", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("check-out status = %d body=%s", w.Code, w.Body.String())
	}
	var rec domain.AttendanceRecord
	_ = json.Unmarshal(w.Body.Bytes(), &rec)
	if rec.CheckOut == nil || rec.Status != domain.StatusOut {
		t.Fatalf("unexpected record: %+v", rec)
	}

	// Second check-out.
	w = doJSON(t, r, http.MethodPost, "/attendance/check-out", "u1", nil, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("second check-out status = %d", w.Code)
	}
}

func TestListAttendance_PaginationAndETag(t *testing.T) {
	db := newHandlerDB(t)
	seedEmployee(t, db, "u1", "A")
	r := newAPI(t, db, 8, 30)

	for i := 1; i <= 3; i++ {
		rec := &domain.AttendanceRecord{
			UserID: "u1", Date: fmt.Sprintf("2025-06-0%d", i), CheckIn: "08:30:00", Status: domain.StatusIn,
		}
		if err := repo.CreateAttendance(context.Background(), db, rec); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/attendance?page=1&page_size=2", "u1", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatal("expected ETag header")
	}

	var resp ListAttendanceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Records) != 2 || resp.Pagination.Total != 3 || !resp.Pagination.HasNext {
		t.Fatalf("unexpected page: %+v", resp.Pagination)
	}

	// Conditional request round-trip.
	w = doJSON(t, r, http.MethodGet, "/attendance", "u1", nil, map[string]string{"If-None-Match": etag})
	if w.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", w.Code)
	}
}

func TestAdminAttendance_ListAllAndToday(t *testing.T) {
	db := newHandlerDB(t)
	seedEmployee(t, db, "u1", "A")
	seedEmployee(t, db, "u2", "B")
	r := newAPI(t, db, 9, 15)

	for _, uid := range []string{"u1", "u2"} {
		if w := doJSON(t, r, http.MethodPost, "/attendance/check-in", uid, nil, nil); w.Code != http.StatusCreated {
			t.Fatalf("check-in %s: %d", uid, w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/admin/attendance", "admin", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list all status = %d", w.Code)
	}
	var all struct {
		Records []domain.AttendanceRecord `json:"records"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &all)
	if len(all.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all.Records))
	}

	w = doJSON(t, r, http.MethodGet, "/admin/attendance/today", "admin", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("today status = %d", w.Code)
	}
	var sum repo.TodaySummary
	_ = json.Unmarshal(w.Body.Bytes(), &sum)
	if sum.Present != 2 || sum.Late != 2 || sum.Employees != 2 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestUserIDFallback(t *testing.T) {
	db := newHandlerDB(t)
	r := newAPI(t, db, 8, 30)

	// No identity header: the default account is assumed and does not exist.
	w := doJSON(t, r, http.MethodPost, "/attendance/check-in", "", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}

	if err := repo.SeedDefaultAdmin(db, 15); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	w = doJSON(t, r, http.MethodPost, "/attendance/check-in", "", nil, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var rec domain.AttendanceRecord
	_ = json.Unmarshal(w.Body.Bytes(), &rec)
	if rec.UserID != repo.DefaultAdminID {
		t.Fatalf("expected fallback identity, got %s", rec.UserID)
	}
}
