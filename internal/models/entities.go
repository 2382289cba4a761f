package models

// Role is the authoritative role supplied by the gateway at login time
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type MealType string

const (
	MealVeg    MealType = "VEG"
	MealNonVeg MealType = "NON_VEG"
)

// Trip types accepted by the flight search
const (
	TripOneWay    = "ONE_WAY"
	TripRoundTrip = "ROUND_TRIP"
)

// Passenger is one traveller on a booking draft
type Passenger struct {
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Gender     Gender   `json:"gender"`
	SeatNumber string   `json:"seatNumber"`
	MealType   MealType `json:"mealType"`
}

// BookingDraft is the body of POST /api/v1.0/flight/booking/{flightId}
type BookingDraft struct {
	FlightID      int64       `json:"flightId"`
	UserName      string      `json:"userName,omitempty"`
	UserEmail     string      `json:"userEmail"`
	NumberOfSeats int         `json:"numberOfSeats"`
	Passengers    []Passenger `json:"passengers"`
}
