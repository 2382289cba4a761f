package handlers

import (
	"net/http"

	"flightdesk/internal/views"

	"github.com/gin-gonic/gin"
)

type addFlightRequest struct {
	AirlineID         int64   `json:"airlineId"`
	FlightNumber      string  `json:"flightNumber"`
	FromPlace         string  `json:"fromPlace"`
	ToPlace           string  `json:"toPlace"`
	DepartureDateTime string  `json:"departureDateTime"`
	ArrivalDateTime   string  `json:"arrivalDateTime"`
	TotalSeats        int     `json:"totalSeats"`
	EconomySeats      int     `json:"economySeats"`
	BusinessSeats     int     `json:"businessSeats"`
	PriceOneWay       float64 `json:"priceOneWay"`
	PriceRoundTrip    float64 `json:"priceRoundTrip"`
}

// GetAddFlight - GET /admin/flights
func (h *Handlers) GetAddFlight(c *gin.Context) {
	v := views.NewAddFlightView(h.deps)
	defer v.Close()
	h.respond(c, nil, v)
}

// AddFlight - POST /admin/flights
func (h *Handlers) AddFlight(c *gin.Context) {
	var req addFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v := views.NewAddFlightView(h.deps)
	defer v.Close()
	if req.AirlineID > 0 {
		v.AirlineID = req.AirlineID
	}
	v.FlightNumber, v.FromPlace, v.ToPlace = req.FlightNumber, req.FromPlace, req.ToPlace
	v.DepartureDateTime, v.ArrivalDateTime = req.DepartureDateTime, req.ArrivalDateTime
	v.TotalSeats, v.EconomySeats, v.BusinessSeats = req.TotalSeats, req.EconomySeats, req.BusinessSeats
	v.PriceOneWay, v.PriceRoundTrip = req.PriceOneWay, req.PriceRoundTrip

	err := v.Submit(c.Request.Context())
	h.respond(c, err, v)
}
