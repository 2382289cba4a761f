package models

import (
	"fmt"
	"strings"
)

// FlexibleBool accepts booleans sent as strings or numbers
type FlexibleBool bool

// UnmarshalJSON parses true/false from bool, string and number encodings
func (fb *FlexibleBool) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)

	switch strings.ToLower(str) {
	case "true", "1", "yes", "on":
		*fb = true
	case "false", "0", "no", "off", "null", "":
		*fb = false
	default:
		return fmt.Errorf("invalid boolean value: %s", str)
	}
	return nil
}

// Bool returns the plain bool value
func (fb FlexibleBool) Bool() bool {
	return bool(fb)
}

// LoginRequest - POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest - POST /auth/register
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// AuthResponse is returned by both login and registration
type AuthResponse struct {
	Token               string       `json:"token"`
	Email               string       `json:"email,omitempty"`
	Role                string       `json:"role,omitempty"`
	ForcePasswordChange FlexibleBool `json:"forcePasswordChange,omitempty"`
}

// ChangePasswordRequest - POST to the configured change-password path
type ChangePasswordRequest struct {
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// FlightSearchRequest - POST /api/v1.0/flight/search
type FlightSearchRequest struct {
	FromPlace     string `json:"fromPlace"`
	ToPlace       string `json:"toPlace"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
	NumberOfSeats int    `json:"numberOfSeats"`
	TripType      string `json:"tripType"`
}

// Airline is embedded in flight results
type Airline struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	LogoURL  string `json:"logoUrl,omitempty"`
	IsActive bool   `json:"isActive,omitempty"`
}

// Flight is one search result row
type Flight struct {
	ID                int64    `json:"id"`
	FlightNumber      string   `json:"flightNumber"`
	FromPlace         string   `json:"fromPlace"`
	ToPlace           string   `json:"toPlace"`
	DepartureDateTime string   `json:"departureDateTime"`
	ArrivalDateTime   string   `json:"arrivalDateTime"`
	PriceOneWay       float64  `json:"priceOneWay"`
	PriceRoundTrip    float64  `json:"priceRoundTrip,omitempty"`
	TotalSeats        int      `json:"totalSeats"`
	AvailableSeats    int      `json:"availableSeats"`
	Airline           *Airline `json:"airline,omitempty"`
}

// FlightSearchResult is the data of a search response
// AddFlightRequest is the admin inventory payload
type AddFlightRequest struct {
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
	PriceRoundTrip    float64 `json:"priceRoundTrip,omitempty"`
}

type FlightSearchResult struct {
	OutboundFlights []Flight `json:"outboundFlights"`
	ReturnFlights   []Flight `json:"returnFlights,omitempty"`
	TripType        string   `json:"tripType,omitempty"`
}

// PassengerResponse is a passenger as returned by the booking service
type PassengerResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	Age        int    `json:"age"`
	SeatNumber string `json:"seatNumber"`
	MealType   string `json:"mealType"`
}

// BookingResponse - data of POST /api/v1.0/flight/booking/{flightId}
type BookingResponse struct {
	ID              int64               `json:"id"`
	PNR             string              `json:"pnr"`
	FlightID        int64               `json:"flightId"`
	UserName        string              `json:"userName"`
	UserEmail       string              `json:"userEmail"`
	NumberOfSeats   int                 `json:"numberOfSeats"`
	BookingDateTime string              `json:"bookingDateTime,omitempty"`
	JourneyDateTime string              `json:"journeyDateTime,omitempty"`
	Status          string              `json:"status"`
	TotalPrice      float64             `json:"totalPrice"`
	Passengers      []PassengerResponse `json:"passengers,omitempty"`
}

// BookingHistoryItem - element of GET /api/v1.0/flight/booking/history/{email}
type BookingHistoryItem struct {
	ID              int64   `json:"id"`
	PNR             string  `json:"pnr"`
	FlightID        int64   `json:"flightId"`
	BookingDateTime string  `json:"bookingDateTime,omitempty"`
	JourneyDateTime string  `json:"journeyDateTime,omitempty"`
	Status          string  `json:"status"`
	NumberOfSeats   int     `json:"numberOfSeats"`
	TotalPrice      float64 `json:"totalPrice"`
}

// APIResponse is the envelope the flight and booking services wrap data in
type APIResponse[T any] struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Data      T      `json:"data"`
	Timestamp string `json:"timestamp,omitempty"`
}
