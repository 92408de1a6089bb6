package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the API router.
func NewRouter(bookings *BookingHandler, hotels *HotelHandler, auth *Authenticator) http.Handler {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(RequestID)               // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger)                  // structured access log
	r.Use(CORS)

	// Health
	r.Get("/health", HealthCheck)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Route("/booking", func(r chi.Router) {
			r.Get("/", bookings.GetBooking)
			r.Post("/", bookings.CreateBooking)
			r.Put("/{bookingId}", bookings.UpdateBooking)
		})

		r.Route("/hotels", func(r chi.Router) {
			r.Get("/", hotels.ListHotels)
			r.Get("/{hotelId}", hotels.GetHotel)
		})

		r.Get("/tickets/types", hotels.ListTicketTypes)
	})

	return r
}
