package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/event-lodging/internal/apperr"
	"github.com/Shivanand-hulikatti/event-lodging/internal/service"
)

// HotelHandler serves the hotel catalogue.
type HotelHandler struct {
	svc *service.HotelService
}

// NewHotelHandler constructs a HotelHandler.
func NewHotelHandler(svc *service.HotelService) *HotelHandler {
	return &HotelHandler{svc: svc}
}

// ListHotels handles GET /hotels
func (h *HotelHandler) ListHotels(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, apperr.ErrUnauthorized)
		return
	}

	hotels, err := h.svc.ListHotels(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, hotels)
}

// GetHotel handles GET /hotels/{hotelId}
// Returns the hotel with its rooms and their occupancy.
func (h *HotelHandler) GetHotel(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, apperr.ErrUnauthorized)
		return
	}

	hotelID, err := pathID(r, "hotelId")
	if err != nil {
		writeServiceError(w, r, apperr.InvalidInput("hotelId must be a positive integer", err))
		return
	}

	hotel, err := h.svc.GetHotel(r.Context(), userID, hotelID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, hotel)
}

// ListTicketTypes handles GET /tickets/types
func (h *HotelHandler) ListTicketTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.ListTicketTypes(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types)
}
