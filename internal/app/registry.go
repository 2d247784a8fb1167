package app

import (
	"context"
	"strings"

	"github.com/rafeeazmi/employee-portal/internal/domain"
)

// RoomRegistry is the read side of the room catalogue.
type RoomRegistry interface {
	ListRooms(ctx context.Context) ([]domain.Room, error)
	GetRoom(ctx context.Context, id string) (domain.Room, error)
}

// EmployeeDirectory is the read side of the staff directory.
type EmployeeDirectory interface {
	ListEmployees(ctx context.Context, f EmployeeFilter) ([]domain.Employee, error)
	GetEmployee(ctx context.Context, id string) (domain.Employee, error)
}

const (
	RoomStatusAll       = "all"
	RoomStatusAvailable = "available"
	RoomStatusOccupied  = "occupied"
)

// RoomFilter narrows room listings. Zero value matches everything.
type RoomFilter struct {
	Status      string
	MinCapacity int
	Query       string
}

func (f RoomFilter) matchRoom(r domain.Room) bool {
	if f.MinCapacity > 0 && r.Capacity < f.MinCapacity {
		return false
	}
	return containsFold(f.Query, r.Name, r.Location)
}

func (f RoomFilter) matchStatus(available bool) bool {
	switch f.Status {
	case RoomStatusAvailable:
		return available
	case RoomStatusOccupied:
		return !available
	}
	return true
}

type EmployeeFilter struct {
	Status     domain.EmployeeStatus
	Department string
	Query      string
}

func (f EmployeeFilter) match(e domain.Employee) bool {
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.Department != "" && !strings.EqualFold(f.Department, e.Department) {
		return false
	}
	return containsFold(f.Query, e.Name, e.Email, e.Position, e.Department)
}

// containsFold reports whether q is empty or a case-insensitive substring of any field.
func containsFold(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// MemoryRoomRegistry is a fixed, ordered room catalogue.
type MemoryRoomRegistry struct {
	rooms []domain.Room
	byID  map[string]int
}

func NewMemoryRoomRegistry(rooms []domain.Room) *MemoryRoomRegistry {
	r := &MemoryRoomRegistry{byID: make(map[string]int, len(rooms))}
	for _, room := range rooms {
		if i, ok := r.byID[room.ID]; ok {
			r.rooms[i] = room
			continue
		}
		r.byID[room.ID] = len(r.rooms)
		r.rooms = append(r.rooms, room)
	}
	return r
}

func (r *MemoryRoomRegistry) ListRooms(_ context.Context) ([]domain.Room, error) {
	out := make([]domain.Room, len(r.rooms))
	copy(out, r.rooms)
	return out, nil
}

func (r *MemoryRoomRegistry) GetRoom(_ context.Context, id string) (domain.Room, error) {
	i, ok := r.byID[id]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return r.rooms[i], nil
}

type MemoryEmployeeDirectory struct {
	employees []domain.Employee
	byID      map[string]int
}

func NewMemoryEmployeeDirectory(employees []domain.Employee) *MemoryEmployeeDirectory {
	d := &MemoryEmployeeDirectory{byID: make(map[string]int, len(employees))}
	for _, e := range employees {
		if i, ok := d.byID[e.ID]; ok {
			d.employees[i] = e
			continue
		}
		d.byID[e.ID] = len(d.employees)
		d.employees = append(d.employees, e)
	}
	return d
}

func (d *MemoryEmployeeDirectory) ListEmployees(_ context.Context, f EmployeeFilter) ([]domain.Employee, error) {
	out := []domain.Employee{}
	for _, e := range d.employees {
		if f.match(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (d *MemoryEmployeeDirectory) GetEmployee(_ context.Context, id string) (domain.Employee, error) {
	i, ok := d.byID[id]
	if !ok {
		return domain.Employee{}, domain.ErrEmployeeNotFound
	}
	return d.employees[i], nil
}
