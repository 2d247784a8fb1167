package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rafeeazmi/employee-portal/internal/domain"
)

func DemoRooms() []domain.Room {
	return []domain.Room{
		{ID: "room-1", Name: "Atlas Conference Room", Location: "Floor 3, Building A", Capacity: 12, Amenities: []string{"projector", "video_conf", "whiteboard"}},
		{ID: "room-2", Name: "Phoenix Meeting Pod", Location: "Floor 2, Building A", Capacity: 4, Amenities: []string{"video_conf", "wifi"}},
		{ID: "room-3", Name: "Summit Boardroom", Location: "Floor 5, Building B", Capacity: 20, Amenities: []string{"projector", "video_conf", "whiteboard", "wifi"}},
		{ID: "room-4", Name: "Spark Huddle Space", Location: "Floor 1, Building A", Capacity: 6, Amenities: []string{"whiteboard", "wifi"}},
		{ID: "room-5", Name: "Innovation Lab", Location: "Floor 4, Building B", Capacity: 8, Amenities: []string{"projector", "video_conf", "wifi"}},
		{ID: "room-6", Name: "Focus Room Alpha", Location: "Floor 2, Building B", Capacity: 2, Amenities: []string{"wifi"}},
	}
}

func DemoEmployees() []domain.Employee {
	return []domain.Employee{
		{ID: "emp-1", Name: "Sarah Johnson", Email: "sarah.johnson@company.com", Phone: "+1 (555) 123-4567", Department: "Engineering", Position: "Senior Software Engineer", Status: domain.EmployeeOnDuty},
		{ID: "emp-2", Name: "Michael Chen", Email: "michael.chen@company.com", Phone: "+1 (555) 234-5678", Department: "Engineering", Position: "Engineering Manager", Status: domain.EmployeeRemote},
		{ID: "emp-3", Name: "Emily Rodriguez", Email: "emily.rodriguez@company.com", Phone: "+1 (555) 345-6789", Department: "Marketing", Position: "Marketing Director", Status: domain.EmployeeOnLeave, LeaveStart: "2024-12-20", LeaveEnd: "2024-12-27", AlternateContact: "David Kim"},
		{ID: "emp-4", Name: "David Kim", Email: "david.kim@company.com", Phone: "+1 (555) 456-7890", Department: "Marketing", Position: "Content Strategist", Status: domain.EmployeeOnDuty},
		{ID: "emp-5", Name: "Jessica Lee", Email: "jessica.lee@company.com", Phone: "+1 (555) 567-8901", Department: "HR", Position: "HR Manager", Status: domain.EmployeeOnDuty},
		{ID: "emp-6", Name: "Robert Taylor", Email: "robert.taylor@company.com", Phone: "+1 (555) 678-9012", Department: "Sales", Position: "Sales Representative", Status: domain.EmployeeOutOfOffice, AlternateContact: "Anna White"},
		{ID: "emp-7", Name: "Anna White", Email: "anna.white@company.com", Phone: "+1 (555) 789-0123", Department: "Sales", Position: "Account Manager", Status: domain.EmployeeOnDuty},
		{ID: "emp-8", Name: "James Wilson", Email: "james.wilson@company.com", Phone: "+1 (555) 890-1234", Department: "Finance", Position: "Financial Analyst", Status: domain.EmployeeRemote},
		{ID: "emp-9", Name: "Michelle Brown", Email: "michelle.brown@company.com", Phone: "+1 (555) 901-2345", Department: "Design", Position: "UX Designer", Status: domain.EmployeeOnDuty},
		{ID: "emp-10", Name: "Christopher Martinez", Email: "chris.martinez@company.com", Phone: "+1 (555) 012-3456", Department: "Operations", Position: "Operations Manager", Status: domain.EmployeeOnLeave, LeaveStart: "2024-12-23", LeaveEnd: "2024-12-30", AlternateContact: "Jessica Lee"},
	}
}

// SeedDemoBookings books two rooms for the current hour and one for later
// today so a fresh instance shows live occupancy. Bookings go through
// CreateBooking and obey the same rules as user requests.
func SeedDemoBookings(ctx context.Context, svc *BookingService, now time.Time) error {
	hour := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())

	demo := []CreateBookingInput{
		{RoomID: "room-1", Title: "Quarterly Planning", Interval: domain.Interval{Start: hour, End: hour.Add(90 * time.Minute)}, AttendeeCount: 8, BookedBy: "Sarah Johnson"},
		{RoomID: "room-3", Title: "Board Meeting", Interval: domain.Interval{Start: hour, End: hour.Add(time.Hour)}, AttendeeCount: 15, BookedBy: "Michael Chen"},
		{RoomID: "room-5", Title: "Product Demo", Interval: domain.Interval{Start: hour.Add(2 * time.Hour), End: hour.Add(3 * time.Hour)}, AttendeeCount: 6, BookedBy: "Emily Rodriguez"},
	}
	for _, in := range demo {
		_, err := svc.CreateBooking(ctx, in)
		// A durable store may already hold the demo window from an earlier run.
		if errors.Is(err, domain.ErrSchedulingConflict) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed %s: %w", in.RoomID, err)
		}
	}
	return nil
}
