package handlers

import (
	"net/http"
	"strconv"

	"flightdesk/internal/booking"
	"flightdesk/internal/views"

	"github.com/gin-gonic/gin"
)

type searchRequest struct {
	FromPlace     string `json:"fromPlace"`
	ToPlace       string `json:"toPlace"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
	NumberOfSeats *int   `json:"numberOfSeats"`
	TripType      string `json:"tripType"`
}

type seatCountRequest struct {
	NumberOfSeats int `json:"numberOfSeats"`
}

type submitBookingRequest struct {
	UserName string `json:"userName"`
}

func (h *Handlers) searchView() *views.SearchView {
	if h.search == nil {
		h.search = views.NewSearchView(h.deps)
	}
	return h.search
}

// GetSearch - GET /search-flights
func (h *Handlers) GetSearch(c *gin.Context) {
	h.respond(c, nil, h.searchView())
}

// SearchFlights - POST /search-flights
func (h *Handlers) SearchFlights(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v := h.searchView()
	v.FromPlace, v.ToPlace = req.FromPlace, req.ToPlace
	v.DepartureDate, v.ReturnDate = req.DepartureDate, req.ReturnDate
	v.TripType = req.TripType
	if req.NumberOfSeats != nil {
		v.NumberOfSeats = *req.NumberOfSeats
	}

	err := v.Submit(c.Request.Context())
	h.respond(c, err, v)
}

// bookView returns the booking view of flightID, replacing a view opened
// for another flight.
func (h *Handlers) bookView(flightID int64) *views.BookView {
	if h.book != nil && h.book.Form().FlightID() == flightID {
		return h.book
	}
	if h.book != nil {
		h.book.Close()
	}
	h.book = views.NewBookView(h.deps, flightID, h.grid)
	return h.book
}

func flightIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("flightId"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return 0, false
	}
	return id, true
}

// OpenBooking - GET /book-flights/:flightId
func (h *Handlers) OpenBooking(c *gin.Context) {
	flightID, ok := flightIDParam(c)
	if !ok {
		return
	}
	v := h.bookView(flightID)
	h.respond(c, nil, v.State())
}

// SetSeatCount - PUT /book-flights/:flightId/seats
func (h *Handlers) SetSeatCount(c *gin.Context) {
	flightID, ok := flightIDParam(c)
	if !ok {
		return
	}
	var req seatCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v := h.bookView(flightID)
	err := v.SetSeatCount(req.NumberOfSeats)
	h.respond(c, err, v.State())
}

// ToggleSeat - POST /book-flights/:flightId/seats/:code
func (h *Handlers) ToggleSeat(c *gin.Context) {
	flightID, ok := flightIDParam(c)
	if !ok {
		return
	}

	v := h.bookView(flightID)
	err := v.ToggleSeat(c.Param("code"))
	h.respond(c, err, v.State())
}

// UpdatePassenger - PUT /book-flights/:flightId/passengers/:index
func (h *Handlers) UpdatePassenger(c *gin.Context) {
	flightID, ok := flightIDParam(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid passenger index"})
		return
	}
	var req booking.PassengerDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v := h.bookView(flightID)
	err = v.UpdatePassenger(index, req)
	h.respond(c, err, v.State())
}

// SubmitBooking - POST /book-flights/:flightId/submit
func (h *Handlers) SubmitBooking(c *gin.Context) {
	flightID, ok := flightIDParam(c)
	if !ok {
		return
	}
	var req submitBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	v := h.bookView(flightID)
	if req.UserName != "" {
		v.SetUserName(req.UserName)
	}
	err := v.Submit(c.Request.Context())
	h.respond(c, err, v.State())
}
