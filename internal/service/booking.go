package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/event-lodging/internal/apperr"
	"github.com/Shivanand-hulikatti/event-lodging/internal/model"
	"github.com/Shivanand-hulikatti/event-lodging/internal/repository"
)

// BookingService allocates and reallocates hotel rooms.
type BookingService struct {
	store repository.Store
}

// NewBookingService constructs a BookingService on the given store.
func NewBookingService(store repository.Store) *BookingService {
	return &BookingService{store: store}
}

// CreateBooking reserves a slot in roomID for userID.
//
// Eligibility, the capacity check and the insert share one transaction, and
// the capacity read locks the room, so two requests for the last slot can
// never both succeed: the later one sees the earlier booking and gets
// RoomFull.
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID int) (model.BookingResult, error) {
	var (
		booking model.Booking
		left    int
	)
	err := s.store.RunInTx(ctx, func(q repository.Queries) error {
		if _, err := CheckEligibility(ctx, q, userID); err != nil {
			return err
		}

		occ, err := LoadRoomWithOccupancy(ctx, q, roomID)
		if err != nil {
			return err
		}
		if occ.IsFull() {
			return apperr.ErrRoomFull
		}

		_, err = q.FindBookingByUser(ctx, userID)
		switch {
		case err == nil:
			return apperr.ErrAlreadyBooked
		case !errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("find existing booking: %w", err)
		}

		booking, err = q.InsertBooking(ctx, userID, roomID)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateBooking) {
				return apperr.ErrAlreadyBooked
			}
			return fmt.Errorf("insert booking: %w", err)
		}
		left = occ.Remaining() - 1
		return nil
	})
	if err != nil {
		logRejected("create booking", userID, roomID, err)
		return model.BookingResult{}, err
	}

	zap.L().Info("booking created",
		zap.Int("booking_id", booking.ID),
		zap.Int("user_id", userID),
		zap.Int("room_id", roomID),
		zap.Int("slots_left", left),
	)
	return model.BookingResult{BookingID: booking.ID}, nil
}

// UpdateBooking moves the user's booking bookingID to roomID. The destination
// room is checked on its own occupancy, so moving into a full room fails even
// when the booking is already in it.
func (s *BookingService) UpdateBooking(ctx context.Context, userID, roomID, bookingID int) (model.BookingResult, error) {
	var booking model.Booking
	err := s.store.RunInTx(ctx, func(q repository.Queries) error {
		if _, err := CheckEligibility(ctx, q, userID); err != nil {
			return err
		}

		occ, err := LoadRoomWithOccupancy(ctx, q, roomID)
		if err != nil {
			return err
		}
		if occ.IsFull() {
			return apperr.ErrRoomFull
		}

		if _, err := q.FindBookingByUserAndID(ctx, userID, bookingID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.ErrNotBookingOwner
			}
			return fmt.Errorf("find booking: %w", err)
		}

		booking, err = q.UpdateBookingRoom(ctx, bookingID, roomID)
		if err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		return nil
	})
	if err != nil {
		logRejected("update booking", userID, roomID, err)
		return model.BookingResult{}, err
	}

	zap.L().Info("booking moved",
		zap.Int("booking_id", booking.ID),
		zap.Int("user_id", userID),
		zap.Int("room_id", roomID),
	)
	return model.BookingResult{BookingID: booking.ID}, nil
}

// GetBooking returns the user's booking with its room. Eligibility is not
// re-checked.
func (s *BookingService) GetBooking(ctx context.Context, userID int) (model.BookingWithRoom, error) {
	booking, err := s.store.FindBookingByUser(ctx, userID)
	if err != nil {
		return model.BookingWithRoom{}, storeError("find booking", err)
	}
	return booking, nil
}

func logRejected(op string, userID, roomID int, err error) {
	fields := []zap.Field{
		zap.Int("user_id", userID),
		zap.Int("room_id", roomID),
		zap.Error(err),
	}
	if kind := apperr.KindOf(err); kind != "" {
		zap.L().Debug(op+" rejected", append(fields, zap.String("kind", string(kind)))...)
		return
	}
	zap.L().Error(op+" failed", fields...)
}
