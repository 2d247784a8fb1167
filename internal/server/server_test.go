package server

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rafeeazmi/employee-portal/internal/app"
	"github.com/rafeeazmi/employee-portal/internal/clock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestApp() *app.App {
	svc := app.NewBookingService(app.NewMemoryStore(), app.NewMemoryRoomRegistry(app.DemoRooms()),
		clock.NewFixed(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)))
	return &app.App{
		Bookings:  svc,
		Employees: app.NewMemoryEmployeeDirectory(app.DemoEmployees()),
		Location:  time.UTC,
	}
}

func get(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestNewRouter(t *testing.T) {
	t.Parallel()
	r := NewRouter(RouterConfig{}, newTestApp())

	for _, path := range []string{"/health", "/api/rooms", "/api/rooms/room-1", "/api/rooms/room-1/bookings",
		"/api/rooms/room-1/availability", "/api/bookings", "/api/employees", "/api/employees/emp-1", "/api/stats"} {
		if rec := get(r, path, nil); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}

	body := `{"roomId":"room-2","title":"1:1","startTime":"2025-03-10 11:00","endTime":"2025-03-10 11:30","attendeeCount":2,"bookedBy":"Anna White"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestNewRouter_Auth(t *testing.T) {
	t.Parallel()
	r := NewRouter(RouterConfig{Tokens: []string{"letmein"}}, newTestApp())

	if rec := get(r, "/health", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected health to stay public, got %d", rec.Code)
	}
	if rec := get(r, "/api/rooms", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := get(r, "/api/rooms", map[string]string{"Authorization": "Bearer letmein"}); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}
}

func TestNewRouter_CORS(t *testing.T) {
	t.Parallel()
	r := NewRouter(RouterConfig{AllowedOrigins: []string{"https://portal.example.com"}}, newTestApp())

	rec := get(r, "/api/rooms", map[string]string{"Origin": "https://portal.example.com"})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://portal.example.com" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}
	rec = get(r, "/api/rooms", map[string]string{"Origin": "https://evil.example.com"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unknown origin, got %d", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	t.Parallel()

	r := NewRouter(RouterConfig{RequestsPerMin: 2}, newTestApp())
	alice := map[string]string{"X-Forwarded-For": "10.0.0.1, 192.168.0.1"}
	bob := map[string]string{"X-Real-IP": "10.0.0.2"}

	for i := 0; i < 2; i++ {
		if rec := get(r, "/health", alice); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
	if rec := get(r, "/health", alice); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", rec.Code)
	}
	if rec := get(r, "/health", bob); rec.Code != http.StatusOK {
		t.Fatalf("expected other client to be unaffected, got %d", rec.Code)
	}
}

func TestRecoveryAndRequestLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	r := gin.New()
	r.Use(Recovery(logger), RequestLogger(logger))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })
	r.GET("/ok", func(c *gin.Context) {
		if _, ok := c.Get(app.ContextLoggerKey); !ok {
			t.Errorf("expected request logger in context")
		}
		c.Status(http.StatusOK)
	})

	rec := get(r, "/boom", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if logs.FilterMessage("unhandled panic").Len() != 1 {
		t.Fatalf("expected panic to be logged")
	}

	get(r, "/ok", map[string]string{requestIDHeader: "req-42"})
	entries := logs.FilterMessage("request").FilterField(zap.String("request_id", "req-42")).All()
	if len(entries) != 1 {
		t.Fatalf("expected one request log with the caller's id, got %d", len(entries))
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, addr, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}), zap.NewNop())
	}()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never came up: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatalf("server did not shut down")
	}
}
