// Package repository implements the record store behind the booking engine.
// Two drivers share one contract: PostgreSQL through pgx (no ORM) and SQLite
// through the pure-Go modernc driver.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Shivanand-hulikatti/event-lodging/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateBooking is returned when a user who already holds a booking
// would get a second one.
var ErrDuplicateBooking = errors.New("user already has a booking")

// Queries is the set of record store operations the services consume. The
// same operations are available on the store itself and on a transaction.
type Queries interface {
	FindEnrollmentByUser(ctx context.Context, userID int) (model.Enrollment, error)
	// FindTicketByEnrollment returns the ticket with its TicketType loaded.
	FindTicketByEnrollment(ctx context.Context, enrollmentID int) (model.Ticket, error)
	// FindRoomWithOccupancy reads capacity and occupant count. Inside
	// RunInTx it also locks the room until the transaction ends, so it must
	// be called before InsertBooking/UpdateBookingRoom target that room.
	FindRoomWithOccupancy(ctx context.Context, roomID int) (model.RoomOccupancy, error)
	FindBookingByUser(ctx context.Context, userID int) (model.BookingWithRoom, error)
	FindBookingByUserAndID(ctx context.Context, userID, bookingID int) (model.Booking, error)
	InsertBooking(ctx context.Context, userID, roomID int) (model.Booking, error)
	UpdateBookingRoom(ctx context.Context, bookingID, roomID int) (model.Booking, error)

	ListHotels(ctx context.Context) ([]model.Hotel, error)
	FindHotelWithRooms(ctx context.Context, hotelID int) (model.HotelWithRooms, error)
	ListTicketTypes(ctx context.Context) ([]model.TicketType, error)
}

// Store is a transactional record store.
type Store interface {
	Queries
	// RunInTx runs fn inside one transaction. The transaction commits when fn
	// returns nil and rolls back otherwise; fn's error is returned unchanged.
	RunInTx(ctx context.Context, fn func(q Queries) error) error
	Close()
}

// Fixtures writes the reference records other workflows normally own
// (users, enrollments, tickets, hotels). Used by the seed command and tests.
type Fixtures interface {
	CreateUser(ctx context.Context, email string) (int, error)
	CreateEnrollment(ctx context.Context, e model.Enrollment) (model.Enrollment, error)
	CreateTicketType(ctx context.Context, tt model.TicketType) (model.TicketType, error)
	CreateTicket(ctx context.Context, t model.Ticket) (model.Ticket, error)
	CreateHotel(ctx context.Context, h model.Hotel) (model.Hotel, error)
	CreateRoom(ctx context.Context, r model.Room) (model.Room, error)
}

// SeedStore is a store that can also write fixtures.
type SeedStore interface {
	Store
	Fixtures
}

// nullableAddress scans a LEFT JOINed address row.
type nullableAddress struct {
	id            *int
	cep           *string
	street        *string
	city          *string
	state         *string
	number        *string
	neighborhood  *string
	addressDetail *string
}

func (a *nullableAddress) dest() []any {
	return []any{&a.id, &a.cep, &a.street, &a.city, &a.state, &a.number, &a.neighborhood, &a.addressDetail}
}

func (a *nullableAddress) toModel(enrollmentID int) model.Address {
	if a.id == nil {
		return model.Address{}
	}
	return model.Address{
		ID:            *a.id,
		CEP:           deref(a.cep),
		Street:        deref(a.street),
		City:          deref(a.city),
		State:         deref(a.state),
		Number:        deref(a.number),
		Neighborhood:  deref(a.neighborhood),
		AddressDetail: deref(a.addressDetail),
		EnrollmentID:  enrollmentID,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// timestamp is the current time at the millisecond precision both drivers
// round-trip exactly.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
