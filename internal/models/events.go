package models

import "time"

// Activity event subjects
const (
	EventSessionLogin     = "session.login"
	EventSessionRegister  = "session.registered"
	EventSessionLogout    = "session.logout"
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventFlightAdded      = "flight.added"
)

// ActivitySubjects lists every subject the consumer subscribes to
var ActivitySubjects = []string{
	EventSessionLogin,
	EventSessionRegister,
	EventSessionLogout,
	EventBookingCreated,
	EventBookingCancelled,
	EventFlightAdded,
}

// SessionEvent represents a login, registration or logout
type SessionEvent struct {
	Email     string    `json:"email"`
	Role      Role      `json:"role,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// BookingCreatedEvent represents a booking submitted through the book view
type BookingCreatedEvent struct {
	PNR           string    `json:"pnr"`
	FlightID      int64     `json:"flight_id"`
	UserEmail     string    `json:"user_email"`
	NumberOfSeats int       `json:"number_of_seats"`
	Seats         []string  `json:"seats"`
	Timestamp     time.Time `json:"timestamp"`
}

// BookingCancelledEvent represents a cancellation from the bookings view
type BookingCancelledEvent struct {
	PNR       string    `json:"pnr"`
	UserEmail string    `json:"user_email"`
	Timestamp time.Time `json:"timestamp"`
}

// FlightAddedEvent represents an inventory addition by an administrator
type FlightAddedEvent struct {
	FlightID     int64     `json:"flight_id"`
	FlightNumber string    `json:"flight_number"`
	FromPlace    string    `json:"from_place"`
	ToPlace      string    `json:"to_place"`
	TotalSeats   int       `json:"total_seats"`
	AddedBy      string    `json:"added_by"`
	Timestamp    time.Time `json:"timestamp"`
}
