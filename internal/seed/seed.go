// Package seed writes reference data through the store's fixture writers.
// It backs the seed command and the test helpers.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/event-lodging/internal/model"
	"github.com/Shivanand-hulikatti/event-lodging/internal/repository"
)

// Dataset holds the ids of the demo records.
type Dataset struct {
	LodgingTicketTypeID int
	RemoteTicketTypeID  int
	HotelID             int
	RoomIDs             []int
	UserID              int
}

// Attendee describes an enrolled user and the ticket they hold.
type Attendee struct {
	Email        string
	TicketTypeID int
	Status       model.TicketStatus
}

// EnrollAttendee creates the user, the enrollment and, when TicketTypeID is
// set, the ticket. It returns the new user id.
func EnrollAttendee(ctx context.Context, fx repository.Fixtures, a Attendee) (int, error) {
	userID, err := fx.CreateUser(ctx, a.Email)
	if err != nil {
		return 0, err
	}

	enrollment, err := fx.CreateEnrollment(ctx, model.Enrollment{
		Name:     a.Email,
		CPF:      fmt.Sprintf("%011d", userID),
		Birthday: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		Phone:    "(21) 98999-9999",
		UserID:   userID,
		Address: model.Address{
			CEP:          "22041-001",
			Street:       "Avenida Atlantica",
			City:         "Rio de Janeiro",
			State:        "RJ",
			Number:       "1702",
			Neighborhood: "Copacabana",
		},
	})
	if err != nil {
		return 0, err
	}

	if a.TicketTypeID == 0 {
		return userID, nil
	}
	status := a.Status
	if status == "" {
		status = model.TicketPaid
	}
	if _, err := fx.CreateTicket(ctx, model.Ticket{
		TicketTypeID: a.TicketTypeID,
		EnrollmentID: enrollment.ID,
		Status:       status,
	}); err != nil {
		return 0, err
	}
	return userID, nil
}

// HotelWithCapacities creates a hotel with one room per capacity.
func HotelWithCapacities(ctx context.Context, fx repository.Fixtures, name string, capacities ...int) (model.Hotel, []model.Room, error) {
	hotel, err := fx.CreateHotel(ctx, model.Hotel{
		Name:  name,
		Image: "https://images.example.com/hotels/default.jpg",
	})
	if err != nil {
		return model.Hotel{}, nil, err
	}

	rooms := make([]model.Room, 0, len(capacities))
	for i, capacity := range capacities {
		room, err := fx.CreateRoom(ctx, model.Room{
			Name:     fmt.Sprintf("%d", 101+i),
			Capacity: capacity,
			HotelID:  hotel.ID,
		})
		if err != nil {
			return model.Hotel{}, nil, err
		}
		rooms = append(rooms, room)
	}
	return hotel, rooms, nil
}

// Demo inserts a small dataset: a lodging ticket type, a remote one, a hotel
// with rooms of capacity 1 to 3 and a user with a paid lodging ticket.
func Demo(ctx context.Context, fx repository.Fixtures, email string) (Dataset, error) {
	var ds Dataset

	lodging, err := fx.CreateTicketType(ctx, model.TicketType{
		Name:          "In person + hotel",
		Price:         600,
		IncludesHotel: true,
	})
	if err != nil {
		return ds, err
	}
	ds.LodgingTicketTypeID = lodging.ID

	remote, err := fx.CreateTicketType(ctx, model.TicketType{
		Name:     "Online",
		Price:    100,
		IsRemote: true,
	})
	if err != nil {
		return ds, err
	}
	ds.RemoteTicketTypeID = remote.ID

	hotel, rooms, err := HotelWithCapacities(ctx, fx, "Driven Resort", 1, 2, 3)
	if err != nil {
		return ds, err
	}
	ds.HotelID = hotel.ID
	for _, r := range rooms {
		ds.RoomIDs = append(ds.RoomIDs, r.ID)
	}

	ds.UserID, err = EnrollAttendee(ctx, fx, Attendee{
		Email:        email,
		TicketTypeID: lodging.ID,
		Status:       model.TicketPaid,
	})
	if err != nil {
		return ds, err
	}
	return ds, nil
}
