package app

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rafeeazmi/employee-portal/internal/domain"
)

// App bundles what the HTTP handlers need.
type App struct {
	Bookings  *BookingService
	Employees EmployeeDirectory
	Calendar  *GoogleCalendarConfig
	Location  *time.Location
	Logger    *zap.Logger
}

// ContextLoggerKey is where request middleware stores the request-scoped logger.
const ContextLoggerKey = "logger"

func (a *App) logger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(ContextLoggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	if a.Logger != nil {
		return a.Logger
	}
	return zap.NewNop()
}

func (a *App) location() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

// respondError maps domain errors onto status codes. Anything unrecognised
// is logged and answered with fallback as a 500.
func (a *App) respondError(c *gin.Context, err error, fallback string) {
	var (
		conflict *domain.ConflictError
		capErr   *domain.CapacityError
	)
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Message: "Room not found"})
	case errors.Is(err, domain.ErrEmployeeNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Message: "Employee not found"})
	case errors.As(err, &capErr):
		c.JSON(http.StatusBadRequest, errorResponse{
			Message: capErr.Error(),
			Errors:  []fieldError{{Field: "attendeeCount", Message: capErr.Error()}},
		})
	case errors.Is(err, domain.ErrInvalidInterval):
		c.JSON(http.StatusBadRequest, errorResponse{
			Message: "Invalid booking data",
			Errors:  []fieldError{{Field: "endTime", Message: "must be after startTime"}},
		})
	case errors.Is(err, domain.ErrInvalidAttendeeCount):
		c.JSON(http.StatusBadRequest, errorResponse{
			Message: "Invalid booking data",
			Errors:  []fieldError{{Field: "attendeeCount", Message: "must be at least 1"}},
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, errorResponse{Message: conflictMessage(conflict)})
	default:
		a.logger(c).Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Message: fallback})
	}
}

func conflictMessage(e *domain.ConflictError) string {
	if e.Existing.ID == "" {
		return "This time slot conflicts with an existing booking. Please choose a different time."
	}
	return "This time slot conflicts with an existing booking (" + e.Existing.Interval.String() + "). Please choose a different time."
}

func badQuery(c *gin.Context, field, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{
		Message: "Invalid query parameters",
		Errors:  []fieldError{{Field: field, Message: msg}},
	})
}

// GET /health
func (a *App) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/rooms?status=&minCapacity=&q=
func (a *App) ListRoomsHandler(c *gin.Context) {
	f := RoomFilter{Status: c.DefaultQuery("status", RoomStatusAll), Query: c.Query("q")}
	switch f.Status {
	case RoomStatusAll, RoomStatusAvailable, RoomStatusOccupied:
	default:
		badQuery(c, "status", "must be one of all, available, occupied")
		return
	}
	if raw := c.Query("minCapacity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badQuery(c, "minCapacity", "must be a non-negative integer")
			return
		}
		f.MinCapacity = n
	}

	rooms, err := a.Bookings.RoomStatuses(c.Request.Context(), f)
	if err != nil {
		a.respondError(c, err, "Failed to fetch rooms")
		return
	}
	out := make([]roomJSON, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomJSON(r))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/rooms/:id
func (a *App) GetRoomHandler(c *gin.Context) {
	room, err := a.Bookings.RoomStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err, "Failed to fetch room")
		return
	}
	c.JSON(http.StatusOK, toRoomJSON(room))
}

// GET /api/rooms/:id/bookings
func (a *App) ListRoomBookingsHandler(c *gin.Context) {
	bookings, err := a.Bookings.RoomBookings(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err, "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, toBookingsJSON(bookings))
}

// GET /api/rooms/:id/availability?date=YYYY-MM-DD
// date defaults to today.
func (a *App) RoomAvailabilityHandler(c *gin.Context) {
	day := a.Bookings.Now().In(a.location())
	if raw := c.Query("date"); raw != "" {
		d, err := domain.ParseDate(raw, a.location())
		if err != nil {
			badQuery(c, "date", "must be in YYYY-MM-DD format")
			return
		}
		day = d
	}

	avail, err := a.Bookings.FreeWindows(c.Request.Context(), c.Param("id"), day)
	if err != nil {
		a.respondError(c, err, "Failed to compute availability")
		return
	}
	c.JSON(http.StatusOK, toAvailabilityJSON(avail))
}

// GET /api/bookings
func (a *App) ListBookingsHandler(c *gin.Context) {
	bookings, err := a.Bookings.ListBookings(c.Request.Context())
	if err != nil {
		a.respondError(c, err, "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, toBookingsJSON(bookings))
}

// POST /api/bookings
func (a *App) CreateBookingHandler(c *gin.Context) {
	var req createBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid booking data", Errors: fieldErrors(err)})
		return
	}

	iv, err := domain.ParseInterval(req.StartTime, req.EndTime, a.location())
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidInterval) {
			c.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid booking data", Errors: []fieldError{{Field: "startTime", Message: err.Error()}}})
			return
		}
		a.respondError(c, err, "Failed to create booking")
		return
	}

	booking, err := a.Bookings.CreateBooking(c.Request.Context(), CreateBookingInput{
		RoomID:        req.RoomID,
		Title:         req.Title,
		Interval:      iv,
		AttendeeCount: req.AttendeeCount,
		BookedBy:      req.BookedBy,
	})
	if err != nil {
		a.respondError(c, err, "Failed to create booking")
		return
	}
	c.JSON(http.StatusCreated, toBookingJSON(booking))
}

// GET /api/employees?status=&department=&q=
func (a *App) ListEmployeesHandler(c *gin.Context) {
	f := EmployeeFilter{
		Status:     domain.EmployeeStatus(c.Query("status")),
		Department: c.Query("department"),
		Query:      c.Query("q"),
	}
	if f.Status != "" && !f.Status.Valid() {
		badQuery(c, "status", "must be one of on_duty, on_leave, remote, out_of_office")
		return
	}

	employees, err := a.Employees.ListEmployees(c.Request.Context(), f)
	if err != nil {
		a.respondError(c, err, "Failed to fetch employees")
		return
	}
	out := make([]employeeJSON, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeJSON(e))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/employees/:id
func (a *App) GetEmployeeHandler(c *gin.Context) {
	e, err := a.Employees.GetEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err, "Failed to fetch employee")
		return
	}
	c.JSON(http.StatusOK, toEmployeeJSON(e))
}

// GET /api/stats
func (a *App) StatsHandler(c *gin.Context) {
	st, err := a.Bookings.Stats(c.Request.Context(), a.Employees)
	if err != nil {
		a.respondError(c, err, "Failed to fetch stats")
		return
	}
	c.JSON(http.StatusOK, toStatsJSON(st, a.Bookings.Now().In(a.location())))
}
