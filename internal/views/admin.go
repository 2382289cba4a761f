package views

import (
	"context"
	"strings"
	"time"

	apperrors "flightdesk/internal/errors"
	"flightdesk/internal/models"
	"flightdesk/internal/validation"
)

const (
	msgSeatSplit       = "Economy + Business seats must equal Total seats"
	msgArrivalOrder    = "Arrival time must be after departure time"
	msgDateTimeInvalid = "Departure and arrival must be date-times (YYYY-MM-DDTHH:MM)"
	msgSeatsPositive   = "Total seats must be positive"
	msgPricePositive   = "Price must be greater than 0"

	defaultAirlineID = 1
)

var dateTimeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05"}

// AddFlightView is the administrator's inventory form.
type AddFlightView struct {
	view

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

	Flight  *models.Flight `json:"flight,omitempty"`
	Success string         `json:"success,omitempty"`
}

func NewAddFlightView(deps Deps) *AddFlightView {
	v := &AddFlightView{view: newView("add_flight", deps)}
	v.clearForm()
	return v
}

func (v *AddFlightView) clearForm() {
	v.AirlineID = defaultAirlineID
	v.FlightNumber, v.FromPlace, v.ToPlace = "", "", ""
	v.DepartureDateTime, v.ArrivalDateTime = "", ""
	v.TotalSeats, v.EconomySeats, v.BusinessSeats = 0, 0, 0
	v.PriceOneWay, v.PriceRoundTrip = 0, 0
}

// Submit sends the flight to the inventory. Only an admin session may
// submit; the form is cleared after a success.
func (v *AddFlightView) Submit(ctx context.Context) error {
	v.reset()
	v.Success = ""

	if !v.deps.Sessions.IsAuthenticated() {
		return v.fail(ctx, apperrors.ErrUnauthenticated, "")
	}
	if !v.deps.Sessions.IsAdmin() {
		return v.fail(ctx, apperrors.ErrForbidden, "")
	}

	req, err := v.request()
	if err != nil {
		return v.fail(ctx, err, "")
	}

	var resp *models.APIResponse[models.Flight]
	err = v.call(ctx, func(ctx context.Context) error {
		var err error
		resp, err = v.deps.Gateway.AddFlightInventory(ctx, req)
		return err
	})
	if err != nil {
		return v.fail(ctx, err, MsgAddFlightFailed)
	}

	flight := resp.Data
	v.Flight = &flight
	v.succeed()
	v.Success = MsgFlightAdded
	v.clearForm()

	email, _ := v.deps.Sessions.Email()
	v.publish(ctx, models.EventFlightAdded, models.FlightAddedEvent{
		FlightID:     flight.ID,
		FlightNumber: req.FlightNumber,
		FromPlace:    req.FromPlace,
		ToPlace:      req.ToPlace,
		TotalSeats:   req.TotalSeats,
		AddedBy:      email,
		Timestamp:    time.Now().UTC(),
	})
	return nil
}

func (v *AddFlightView) request() (models.AddFlightRequest, error) {
	v.FlightNumber = strings.TrimSpace(v.FlightNumber)
	v.FromPlace = strings.TrimSpace(v.FromPlace)
	v.ToPlace = strings.TrimSpace(v.ToPlace)
	if v.AirlineID <= 0 {
		v.AirlineID = defaultAirlineID
	}

	if !validation.Required(v.FlightNumber, v.FromPlace, v.ToPlace, v.DepartureDateTime, v.ArrivalDateTime) {
		return models.AddFlightRequest{}, apperrors.NewValidationError(validation.MsgAllFieldsRequired)
	}

	if v.EconomySeats+v.BusinessSeats != v.TotalSeats {
		return models.AddFlightRequest{}, apperrors.NewValidationError(msgSeatSplit)
	}

	departure, okDep := parseDateTime(v.DepartureDateTime)
	arrival, okArr := parseDateTime(v.ArrivalDateTime)
	if !okDep || !okArr {
		return models.AddFlightRequest{}, apperrors.NewValidationError(msgDateTimeInvalid)
	}
	if !arrival.After(departure) {
		return models.AddFlightRequest{}, apperrors.NewValidationError(msgArrivalOrder)
	}

	var problems []string
	if v.TotalSeats < 1 {
		problems = append(problems, msgSeatsPositive)
	}
	if v.PriceOneWay <= 0 {
		problems = append(problems, msgPricePositive)
	}
	if len(problems) > 0 {
		return models.AddFlightRequest{}, apperrors.NewValidationError(problems...)
	}

	return models.AddFlightRequest{
		AirlineID:         v.AirlineID,
		FlightNumber:      v.FlightNumber,
		FromPlace:         v.FromPlace,
		ToPlace:           v.ToPlace,
		DepartureDateTime: withSeconds(v.DepartureDateTime),
		ArrivalDateTime:   withSeconds(v.ArrivalDateTime),
		TotalSeats:        v.TotalSeats,
		EconomySeats:      v.EconomySeats,
		BusinessSeats:     v.BusinessSeats,
		PriceOneWay:       v.PriceOneWay,
		PriceRoundTrip:    v.PriceRoundTrip,
	}, nil
}

func parseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
