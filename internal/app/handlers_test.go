package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafeeazmi/employee-portal/internal/clock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, now time.Time) (*gin.Engine, *App) {
	t.Helper()
	svc := NewBookingService(NewMemoryStore(), NewMemoryRoomRegistry(DemoRooms()), clock.NewFixed(now))
	a := &App{
		Bookings:  svc,
		Employees: NewMemoryEmployeeDirectory(DemoEmployees()),
		Location:  time.UTC,
	}

	r := gin.New()
	r.GET("/health", a.HealthHandler)
	api := r.Group("/api")
	api.GET("/rooms", a.ListRoomsHandler)
	api.GET("/rooms/:id", a.GetRoomHandler)
	api.GET("/rooms/:id/bookings", a.ListRoomBookingsHandler)
	api.GET("/rooms/:id/availability", a.RoomAvailabilityHandler)
	api.GET("/bookings", a.ListBookingsHandler)
	api.POST("/bookings", a.CreateBookingHandler)
	api.GET("/employees", a.ListEmployeesHandler)
	api.GET("/employees/:id", a.GetEmployeeHandler)
	api.GET("/stats", a.StatsHandler)
	api.GET("/calendar/auth", a.GoogleAuthHandler)
	return r, a
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, rec.Body.String())
	}
}

func bookingBody(roomID, start, end string, attendees int) string {
	b, _ := json.Marshal(map[string]any{
		"roomId":        roomID,
		"title":         "Design review",
		"startTime":     start,
		"endTime":       end,
		"attendeeCount": attendees,
		"bookedBy":      "Michelle Brown",
	})
	return string(b)
}

func TestCreateBookingHandler(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))

	rec := do(r, http.MethodPost, "/api/bookings", bookingBody("room-1", "2025-03-10 09:00", "2025-03-10 10:00", 4))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created bookingJSON
	decode(t, rec, &created)
	if created.ID == "" || created.StartTime != "2025-03-10 09:00" || created.RoomID != "room-1" {
		t.Fatalf("unexpected booking %+v", created)
	}

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMsg    string
		wantField  string
	}{
		{
			name:       "overlap",
			body:       bookingBody("room-1", "2025-03-10 09:30", "2025-03-10 10:30", 4),
			wantStatus: http.StatusConflict,
			wantMsg:    "This time slot conflicts with an existing booking (09:00-10:00). Please choose a different time.",
		},
		{
			name:       "adjacent",
			body:       bookingBody("room-1", "2025-03-10 10:00", "2025-03-10 11:00", 4),
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unknown room",
			body:       bookingBody("room-99", "2025-03-10 09:00", "2025-03-10 10:00", 4),
			wantStatus: http.StatusNotFound,
			wantMsg:    "Room not found",
		},
		{
			name:       "over capacity",
			body:       bookingBody("room-2", "2025-03-10 09:00", "2025-03-10 10:00", 5),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Room capacity is 4, but 5 attendees requested",
		},
		{
			name:       "end before start",
			body:       bookingBody("room-2", "2025-03-10 10:00", "2025-03-10 09:00", 2),
			wantStatus: http.StatusBadRequest,
			wantField:  "endTime",
		},
		{
			name:       "bad time format",
			body:       bookingBody("room-2", "2025-03-10T10:00", "2025-03-10 11:00", 2),
			wantStatus: http.StatusBadRequest,
			wantField:  "startTime",
		},
		{
			name:       "no attendees",
			body:       bookingBody("room-2", "2025-03-10 10:00", "2025-03-10 11:00", 0),
			wantStatus: http.StatusBadRequest,
			wantField:  "attendeeCount",
		},
		{
			name:       "missing fields",
			body:       `{"roomId":"room-2"}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "title",
		},
		{
			name:       "not json",
			body:       `nope`,
			wantStatus: http.StatusBadRequest,
			wantField:  "body",
		},
	}

	// Subtests share the router and run in order.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, http.MethodPost, "/api/bookings", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantStatus == http.StatusCreated {
				return
			}
			var resp errorResponse
			decode(t, rec, &resp)
			if tt.wantMsg != "" && resp.Message != tt.wantMsg {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, resp.Message)
			}
			if tt.wantField != "" {
				found := false
				for _, fe := range resp.Errors {
					if fe.Field == tt.wantField {
						found = true
					}
				}
				if !found {
					t.Fatalf("expected error for field %s, got %+v", tt.wantField, resp.Errors)
				}
			}
		})
	}

	rec = do(r, http.MethodGet, "/api/bookings", "")
	var all []bookingJSON
	decode(t, rec, &all)
	if len(all) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(all))
	}
}

func TestRoomHandlers(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t, time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC))
	if rec := do(r, http.MethodPost, "/api/bookings", bookingBody("room-1", "2025-03-10 09:00", "2025-03-10 10:00", 4)); rec.Code != http.StatusCreated {
		t.Fatalf("seed: %d %s", rec.Code, rec.Body.String())
	}

	t.Run("list with status", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/api/rooms", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var rooms []roomJSON
		decode(t, rec, &rooms)
		if len(rooms) != 6 {
			t.Fatalf("expected 6 rooms, got %d", len(rooms))
		}
		atlas := rooms[0]
		if atlas.IsAvailable || atlas.CurrentBooking == nil || atlas.NextAvailable == nil || *atlas.NextAvailable != "10:00" {
			t.Fatalf("expected room-1 occupied until 10:00, got %+v", atlas)
		}
		if rooms[1].CurrentBooking != nil || rooms[1].NextAvailable != nil || !rooms[1].IsAvailable {
			t.Fatalf("expected room-2 free without booking, got %+v", rooms[1])
		}
	})

	t.Run("free rooms keep optional fields out of the payload", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/api/rooms/room-2", "")
		body := rec.Body.String()
		if strings.Contains(body, "currentBooking") || strings.Contains(body, "nextAvailable") {
			t.Fatalf("expected absent status fields, got %s", body)
		}
		if !strings.Contains(body, `"imageUrl":null`) {
			t.Fatalf("expected null imageUrl, got %s", body)
		}
	})

	t.Run("filters", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/api/rooms?status=available&minCapacity=8", "")
		var rooms []roomJSON
		decode(t, rec, &rooms)
		if len(rooms) != 2 || rooms[0].ID != "room-3" || rooms[1].ID != "room-5" {
			t.Fatalf("expected room-3 and room-5, got %+v", rooms)
		}

		if rec := do(r, http.MethodGet, "/api/rooms?status=busy", ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad status, got %d", rec.Code)
		}
		if rec := do(r, http.MethodGet, "/api/rooms?minCapacity=lots", ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad minCapacity, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		for _, path := range []string{"/api/rooms/room-9", "/api/rooms/room-9/bookings", "/api/rooms/room-9/availability"} {
			if rec := do(r, http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
				t.Fatalf("%s: expected 404, got %d", path, rec.Code)
			}
		}
	})

	t.Run("room bookings", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/api/rooms/room-1/bookings", "")
		var bookings []bookingJSON
		decode(t, rec, &bookings)
		if len(bookings) != 1 || bookings[0].EndTime != "2025-03-10 10:00" {
			t.Fatalf("unexpected bookings %+v", bookings)
		}
	})

	t.Run("availability", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/api/rooms/room-1/availability?date=2025-03-10", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var avail availabilityJSON
		decode(t, rec, &avail)
		want := []windowJSON{{"08:00", "09:00"}, {"10:00", "18:00"}}
		if len(avail.Windows) != 2 || avail.Windows[0] != want[0] || avail.Windows[1] != want[1] {
			t.Fatalf("expected %v, got %v", want, avail.Windows)
		}
		if avail.Date != "2025-03-10" || avail.OfficeHours.StartTime != "08:00" {
			t.Fatalf("unexpected availability %+v", avail)
		}

		if rec := do(r, http.MethodGet, "/api/rooms/room-1/availability?date=10/03/2025", ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad date, got %d", rec.Code)
		}
	})
}

func TestEmployeeHandlers(t *testing.T) {
	t.Parallel()
	r, _ := newTestRouter(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	tests := []struct {
		name      string
		path      string
		wantCount int
	}{
		{name: "all", path: "/api/employees", wantCount: 10},
		{name: "by status", path: "/api/employees?status=on_leave", wantCount: 2},
		{name: "by department", path: "/api/employees?department=marketing", wantCount: 2},
		{name: "by query", path: "/api/employees?q=manager", wantCount: 4},
		{name: "combined", path: "/api/employees?department=Sales&status=on_duty", wantCount: 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := do(r, http.MethodGet, tt.path, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			var got []employeeJSON
			decode(t, rec, &got)
			if len(got) != tt.wantCount {
				t.Fatalf("expected %d employees, got %d", tt.wantCount, len(got))
			}
		})
	}

	t.Run("single", func(t *testing.T) {
		t.Parallel()
		rec := do(r, http.MethodGet, "/api/employees/emp-3", "")
		var e employeeJSON
		decode(t, rec, &e)
		if e.Status != "on_leave" || e.AlternateContact == nil || *e.AlternateContact != "David Kim" || e.AvatarURL != nil {
			t.Fatalf("unexpected employee %+v", e)
		}
		if rec := do(r, http.MethodGet, "/api/employees/emp-404", ""); rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if rec := do(r, http.MethodGet, "/api/employees?status=sleeping", ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestStatsAndHealthHandlers(t *testing.T) {
	t.Parallel()
	r, _ := newTestRouter(t, time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC))
	do(r, http.MethodPost, "/api/bookings", bookingBody("room-1", "2025-03-10 09:00", "2025-03-10 10:00", 4))

	rec := do(r, http.MethodGet, "/api/stats", "")
	var st statsJSON
	decode(t, rec, &st)
	if st.TotalRooms != 6 || st.AvailableRooms != 5 || st.OnDuty != 5 || st.OnLeave != 2 || st.CurrentTime != "09:30" {
		t.Fatalf("unexpected stats %+v", st)
	}

	rec = do(r, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}

	rec = do(r, http.MethodGet, "/api/calendar/auth", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without calendar config, got %d", rec.Code)
	}
}
