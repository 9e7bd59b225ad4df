// internal/adapters/http_server/handlers.go
package httpserver

import (
	"github.com/go-chi/chi/v5"

	"staybook/internal/app"
)

type Handlers struct {
	Hotels     *app.HotelService
	Bookings   *app.BookingService
	Ratings    *app.RatingService
	Categories *app.CategoryService
	Auth       *app.AuthService

	// LegacyStatus answers 200 for every enveloped response, for clients that
	// only branch on the body.
	LegacyStatus bool
}

// MountHandlers registers the REST surface under /api/v1.
func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Route("/api/v1", func(r chi.Router) {
		// public
		r.Get("/p-hotels", h.listHotelsPage)
		r.Get("/hotels", h.listHotels)
		r.Get("/hotel/{id}", h.getHotel)
		r.Get("/category", h.listCategories)
		r.Post("/register", h.register)
		r.Post("/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)

			r.Get("/user", h.me)
			r.Post("/logout", h.logout)

			r.Get("/booking", h.myBookings)
			r.Get("/booking/{id}", h.getBooking)
			r.Get("/hotel-booking/{hotel}", h.hotelBookings)
			r.Post("/razorpay", h.createOrder)
			r.Post("/verification", h.verify)

			r.Get("/ratings", h.myRatings)
			r.Get("/ratings/{hotel}", h.hotelRatings)
			r.Post("/rating/{hotel}", h.createRating)

			r.Group(func(r chi.Router) {
				r.Use(h.adminOnly)

				r.Post("/hotel", h.createHotel)
				r.Put("/hotel/{id}", h.updateHotel)
				r.Delete("/hotel/{id}", h.deleteHotel)
				r.Patch("/add-image/{id}", h.addImages)
				r.Patch("/remove-image/{id}", h.removeImage)

				r.Get("/bookings", h.allBookings)
				r.Put("/booking", h.updateBooking)

				r.Get("/all-ratings", h.allRatings)

				r.Post("/category", h.createCategory)
				r.Put("/category/{id}", h.updateCategory)
				r.Delete("/category/{id}", h.deleteCategory)
			})
		})
	})
}
