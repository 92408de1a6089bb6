// Package model defines the core domain types for the lodging booking system.
package model

import "time"

// TicketStatus is the payment status of a ticket.
type TicketStatus string

const (
	TicketReserved TicketStatus = "RESERVED"
	TicketPaid     TicketStatus = "PAID"
)

// Address is the postal address attached to an enrollment.
type Address struct {
	ID            int    `json:"id"`
	CEP           string `json:"cep"`
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	Number        string `json:"number"`
	Neighborhood  string `json:"neighborhood"`
	AddressDetail string `json:"addressDetail,omitempty"`
	EnrollmentID  int    `json:"enrollmentId"`
}

// Enrollment is a user's registration for the event.
type Enrollment struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CPF       string    `json:"cpf"`
	Birthday  time.Time `json:"birthday"`
	Phone     string    `json:"phone"`
	UserID    int       `json:"userId"`
	Address   Address   `json:"Address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TicketType is a purchasable attendance category.
type TicketType struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Price         int       `json:"price"`
	IsRemote      bool      `json:"isRemote"`
	IncludesHotel bool      `json:"includesHotel"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Ticket is the purchase record of one enrollment.
type Ticket struct {
	ID           int          `json:"id"`
	TicketTypeID int          `json:"ticketTypeId"`
	EnrollmentID int          `json:"enrollmentId"`
	Status       TicketStatus `json:"status"`
	TicketType   TicketType   `json:"TicketType"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// EnrollmentTicket is the resolved eligibility chain of a user.
type EnrollmentTicket struct {
	Enrollment Enrollment
	Ticket     Ticket
}

// Hotel is a property that owns rooms.
type Hotel struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HotelWithRooms is a hotel together with its rooms ordered by id.
type HotelWithRooms struct {
	Hotel
	Rooms []RoomAvailability `json:"Rooms"`
}

// Room is a capacity-bounded unit of a hotel.
type Room struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	HotelID   int       `json:"hotelId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoomAvailability is a room annotated with its current occupancy.
type RoomAvailability struct {
	Room
	BookedCount int `json:"bookedCount"`
}

// RoomOccupancy is a room's capacity and occupant count as of one read.
type RoomOccupancy struct {
	RoomID    int
	Capacity  int
	Occupants int
}

// IsFull returns true when no slots remain.
func (o RoomOccupancy) IsFull() bool {
	return o.Occupants >= o.Capacity
}

// Remaining returns the number of free slots.
func (o RoomOccupancy) Remaining() int {
	if o.Occupants >= o.Capacity {
		return 0
	}
	return o.Capacity - o.Occupants
}

// Booking links one user to one room.
type Booking struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	RoomID    int       `json:"roomId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingWithRoom is the read view returned to the booking owner.
type BookingWithRoom struct {
	ID   int  `json:"id"`
	Room Room `json:"Room"`
}

// BookingResult is returned by create and update.
type BookingResult struct {
	BookingID int `json:"bookingId"`
}

// BookingRequest is the payload for creating or moving a booking.
type BookingRequest struct {
	RoomID int `json:"roomId"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
