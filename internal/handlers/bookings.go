package handlers

import (
	"flightdesk/internal/views"

	"github.com/gin-gonic/gin"
)

// ListBookings - GET /bookings
func (h *Handlers) ListBookings(c *gin.Context) {
	v := views.NewBookingsView(h.deps)
	defer v.Close()

	err := v.Load(c.Request.Context())
	h.respond(c, err, v)
}

// CancelBooking - DELETE /bookings/:pnr
// The list in the response is refreshed after the cancellation.
func (h *Handlers) CancelBooking(c *gin.Context) {
	v := views.NewBookingsView(h.deps)
	defer v.Close()

	err := v.Cancel(c.Request.Context(), c.Param("pnr"))
	h.respond(c, err, v)
}
