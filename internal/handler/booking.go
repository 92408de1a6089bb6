package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/event-lodging/internal/apperr"
	"github.com/Shivanand-hulikatti/event-lodging/internal/model"
	"github.com/Shivanand-hulikatti/event-lodging/internal/service"
)

// BookingHandler holds the HTTP handlers for the booking API.
type BookingHandler struct {
	svc *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// GetBooking handles GET /booking
// Returns the caller's booking with its room.
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, apperr.ErrUnauthorized)
		return
	}

	booking, err := h.svc.GetBooking(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// CreateBooking handles POST /booking
// Reserves a slot in the room named by the body's roomId.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, apperr.ErrUnauthorized)
		return
	}

	// RoomID is an int, so a non-numeric roomId fails here as InvalidInput.
	var req model.BookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, apperr.InvalidInput("invalid request body: "+err.Error(), err))
		return
	}

	res, err := h.svc.CreateBooking(r.Context(), userID, req.RoomID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// UpdateBooking handles PUT /booking/{bookingId}
// Moves the caller's booking to the room named by the body's roomId.
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, apperr.ErrUnauthorized)
		return
	}

	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		writeServiceError(w, r, apperr.ErrInvalidBookingID)
		return
	}

	var req model.BookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, apperr.InvalidInput("invalid request body: "+err.Error(), err))
		return
	}

	res, err := h.svc.UpdateBooking(r.Context(), userID, req.RoomID, bookingID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
