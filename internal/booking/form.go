package booking

import (
	"fmt"
	"slices"

	apperrors "flightdesk/internal/errors"
	"flightdesk/internal/models"
)

// PassengerDetails are the fields of a passenger the user edits directly.
// The seat number is owned by the selection and is not part of it.
type PassengerDetails struct {
	Name     string          `json:"name"`
	Age      int             `json:"age"`
	Gender   models.Gender   `json:"gender"`
	MealType models.MealType `json:"mealType"`
}

// FormState keeps seat count, passengers and selected seats consistent.
// After every mutation len(passengers) == seatCount, len(selected) <= seatCount
// and passengers[i].SeatNumber mirrors selected[i].
//
// It is not safe for concurrent use; the shell serialises view handlers.
type FormState struct {
	flightID   int64
	grid       *SeatGrid
	userName   string
	userEmail  string
	seatCount  int
	passengers []models.Passenger
	selected   []string
}

func NewFormState(flightID int64, grid *SeatGrid) *FormState {
	if grid == nil {
		grid = NewSeatGrid()
	}
	return &FormState{
		flightID:   flightID,
		grid:       grid,
		seatCount:  1,
		passengers: []models.Passenger{defaultPassenger()},
	}
}

func defaultPassenger() models.Passenger {
	return models.Passenger{
		Gender:   models.GenderMale,
		MealType: models.MealVeg,
	}
}

func (f *FormState) FlightID() int64 {
	return f.flightID
}

func (f *FormState) Grid() *SeatGrid {
	return f.grid
}

// SetSeatCount resizes the passenger list from the tail and truncates the
// selection to its first n entries.
func (f *FormState) SetSeatCount(n int) error {
	if n < 1 {
		return apperrors.NewValidationError("Number of seats must be at least 1")
	}

	f.seatCount = n
	if len(f.passengers) > n {
		f.passengers = f.passengers[:n]
	}
	for len(f.passengers) < n {
		f.passengers = append(f.passengers, defaultPassenger())
	}
	if len(f.selected) > n {
		f.selected = f.selected[:n]
	}
	f.syncSeats()
	return nil
}

// ToggleSeat deselects a selected seat, or selects it. At capacity the
// oldest selection is evicted first. Codes are trusted: the grid is the
// only source of seat codes.
func (f *FormState) ToggleSeat(code string) {
	if i := slices.Index(f.selected, code); i >= 0 {
		f.selected = slices.Delete(f.selected, i, i+1)
		f.syncSeats()
		return
	}

	if len(f.selected) >= f.seatCount {
		f.selected = slices.Delete(f.selected, 0, len(f.selected)-f.seatCount+1)
	}
	f.selected = append(f.selected, code)
	f.syncSeats()
}

func (f *FormState) UpdatePassenger(i int, d PassengerDetails) error {
	if i < 0 || i >= len(f.passengers) {
		return apperrors.NewValidationError(fmt.Sprintf("Passenger %d does not exist", i+1))
	}

	var problems []string
	switch d.Gender {
	case "", models.GenderMale, models.GenderFemale, models.GenderOther:
	default:
		problems = append(problems, fmt.Sprintf("Unknown gender %q", d.Gender))
	}
	switch d.MealType {
	case "", models.MealVeg, models.MealNonVeg:
	default:
		problems = append(problems, fmt.Sprintf("Unknown meal type %q", d.MealType))
	}
	if d.Age < 0 {
		problems = append(problems, "Age cannot be negative")
	}
	if len(problems) > 0 {
		return apperrors.NewValidationError(problems...)
	}

	p := &f.passengers[i]
	p.Name = d.Name
	p.Age = d.Age
	if d.Gender != "" {
		p.Gender = d.Gender
	}
	if d.MealType != "" {
		p.MealType = d.MealType
	}
	return nil
}

func (f *FormState) SetUserName(name string) {
	f.userName = name
}

func (f *FormState) SeatCount() int {
	return f.seatCount
}

func (f *FormState) SelectedSeats() []string {
	return slices.Clone(f.selected)
}

func (f *FormState) Passengers() []models.Passenger {
	return slices.Clone(f.passengers)
}

func (f *FormState) IsSelected(code string) bool {
	return slices.Contains(f.selected, code)
}

// Draft returns a copy of the current booking draft.
func (f *FormState) Draft() models.BookingDraft {
	return models.BookingDraft{
		FlightID:      f.flightID,
		UserName:      f.userName,
		UserEmail:     f.userEmail,
		NumberOfSeats: f.seatCount,
		Passengers:    slices.Clone(f.passengers),
	}
}

// Validate reports every passenger missing a name, a positive age or a seat.
func (f *FormState) Validate() error {
	var problems []string
	for i, p := range f.passengers {
		if p.Name == "" {
			problems = append(problems, fmt.Sprintf("Passenger %d: name is required", i+1))
		}
		if p.Age <= 0 {
			problems = append(problems, fmt.Sprintf("Passenger %d: age must be greater than 0", i+1))
		}
		if p.SeatNumber == "" {
			problems = append(problems, fmt.Sprintf("Passenger %d: select a seat", i+1))
		}
	}
	if len(problems) > 0 {
		return apperrors.NewValidationError(problems...)
	}
	return nil
}

// Submit stamps the session email and returns the draft for transmission.
func (f *FormState) Submit(sessionEmail string) (models.BookingDraft, error) {
	if sessionEmail == "" {
		return models.BookingDraft{}, apperrors.ErrUnauthenticated
	}
	f.userEmail = sessionEmail
	return f.Draft(), nil
}

func (f *FormState) syncSeats() {
	for i := range f.passengers {
		if i < len(f.selected) {
			f.passengers[i].SeatNumber = f.selected[i]
		} else {
			f.passengers[i].SeatNumber = ""
		}
	}
}
