package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/rafeeazmi/employee-portal/internal/domain"
)

// GoogleCalendarConfig holds the OAuth2 client used both for the consent
// flow and for mirroring bookings.
type GoogleCalendarConfig struct {
	OAuth        *oauth2.Config
	RefreshToken string
}

// NewGoogleCalendarConfig returns nil unless client ID, secret and redirect
// URL are all set.
func NewGoogleCalendarConfig(clientID, clientSecret, redirectURL, refreshToken string) *GoogleCalendarConfig {
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil
	}
	return &GoogleCalendarConfig{
		OAuth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{calendar.CalendarEventsScope},
			Endpoint:     google.Endpoint,
		},
		RefreshToken: refreshToken,
	}
}

var errCalendarNotAuthorized = errors.New("google calendar has no refresh token")

// CalendarPublisher inserts an event into a room's Google calendar for each
// new booking. Rooms without a CalendarID are skipped.
type CalendarPublisher struct {
	newService func(ctx context.Context) (*calendar.Service, error)
}

// NewCalendarPublisher authenticates with the configured refresh token.
func NewCalendarPublisher(cfg *GoogleCalendarConfig) *CalendarPublisher {
	return &CalendarPublisher{
		newService: func(ctx context.Context) (*calendar.Service, error) {
			if cfg == nil || cfg.RefreshToken == "" {
				return nil, errCalendarNotAuthorized
			}
			client := cfg.OAuth.Client(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
			return calendar.NewService(ctx, option.WithHTTPClient(client))
		},
	}
}

// NewCalendarPublisherWithOptions builds the calendar client from opts as given.
func NewCalendarPublisherWithOptions(opts ...option.ClientOption) *CalendarPublisher {
	return &CalendarPublisher{
		newService: func(ctx context.Context) (*calendar.Service, error) {
			return calendar.NewService(ctx, opts...)
		},
	}
}

func (p *CalendarPublisher) PublishBooking(ctx context.Context, room domain.Room, b domain.Booking) error {
	if room.CalendarID == "" {
		return nil
	}
	srv, err := p.newService(ctx)
	if err != nil {
		return fmt.Errorf("create calendar service: %w", err)
	}

	event := &calendar.Event{
		Summary:     b.Title,
		Description: fmt.Sprintf("Booked by %s for %d attendees", b.BookedBy, b.AttendeeCount),
		Location:    fmt.Sprintf("%s, %s", room.Name, room.Location),
		Start:       &calendar.EventDateTime{DateTime: b.Interval.Start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: b.Interval.End.Format(time.RFC3339)},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{"bookingId": b.ID, "roomId": room.ID},
		},
	}
	if _, err := srv.Events.Insert(room.CalendarID, event).Context(ctx).Do(); err != nil {
		return fmt.Errorf("insert calendar event: %w", err)
	}
	return nil
}

// GET /api/calendar/auth
func (a *App) GoogleAuthHandler(c *gin.Context) {
	if a.Calendar == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Message: "Google Calendar not configured"})
		return
	}

	state := uuid.New().String()
	url := a.Calendar.OAuth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	c.JSON(http.StatusOK, gin.H{
		"authUrl": url,
		"state":   state,
	})
}

// GET /oauth2callback
// The refresh token is returned so an operator can set GOOGLE_REFRESH_TOKEN.
func (a *App) GoogleOAuth2CallbackHandler(c *gin.Context) {
	if a.Calendar == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Message: "Google Calendar not configured"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, errorResponse{
			Message: "Authorization code required",
			Errors:  []fieldError{{Field: "code", Message: "is required"}},
		})
		return
	}

	token, err := a.Calendar.OAuth.Exchange(c.Request.Context(), code)
	if err != nil {
		a.logger(c).Warn("oauth code exchange failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Message: "Failed to exchange code for token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Authorization successful",
		"state":        c.Query("state"),
		"refreshToken": token.RefreshToken,
		"expiry":       token.Expiry,
	})
}
