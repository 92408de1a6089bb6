package service

import (
	"context"
	"fmt"

	"github.com/Shivanand-hulikatti/event-lodging/internal/apperr"
	"github.com/Shivanand-hulikatti/event-lodging/internal/model"
	"github.com/Shivanand-hulikatti/event-lodging/internal/repository"
)

// HotelService serves the hotel catalogue and ticket type reference data.
type HotelService struct {
	store repository.Queries
}

// NewHotelService constructs a HotelService.
func NewHotelService(store repository.Queries) *HotelService {
	return &HotelService{store: store}
}

// ListHotels returns every hotel to a user holding a paid lodging ticket.
func (s *HotelService) ListHotels(ctx context.Context, userID int) ([]model.Hotel, error) {
	if err := s.requireLodgingTicket(ctx, userID); err != nil {
		return nil, err
	}

	hotels, err := s.store.ListHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	if hotels == nil {
		hotels = []model.Hotel{}
	}
	return hotels, nil
}

// GetHotel returns a hotel with its rooms and their current occupancy.
func (s *HotelService) GetHotel(ctx context.Context, userID, hotelID int) (model.HotelWithRooms, error) {
	if err := s.requireLodgingTicket(ctx, userID); err != nil {
		return model.HotelWithRooms{}, err
	}

	hotel, err := s.store.FindHotelWithRooms(ctx, hotelID)
	if err != nil {
		return model.HotelWithRooms{}, storeError("find hotel", err)
	}
	return hotel, nil
}

// ListTicketTypes returns all ticket types.
func (s *HotelService) ListTicketTypes(ctx context.Context) ([]model.TicketType, error) {
	types, err := s.store.ListTicketTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ticket types: %w", err)
	}
	if types == nil {
		types = []model.TicketType{}
	}
	return types, nil
}

// requireLodgingTicket is NotFound unless the user has an enrollment whose
// ticket includes lodging, and PaymentRequired while that ticket is unpaid.
func (s *HotelService) requireLodgingTicket(ctx context.Context, userID int) error {
	enrollment, err := s.store.FindEnrollmentByUser(ctx, userID)
	if err != nil {
		return storeError("find enrollment", err)
	}

	ticket, err := s.store.FindTicketByEnrollment(ctx, enrollment.ID)
	if err != nil {
		return storeError("find ticket", err)
	}

	if !ticket.TicketType.IncludesHotel {
		return apperr.ErrNotFound.WithOp("find lodging ticket")
	}
	if ticket.Status != model.TicketPaid {
		return apperr.ErrPaymentRequired
	}
	return nil
}
