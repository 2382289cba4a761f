package views

import (
	"context"
	"regexp"
	"strings"

	apperrors "flightdesk/internal/errors"
	"flightdesk/internal/models"
	"flightdesk/internal/validation"
)

// minutePrecision matches a date-time entered without seconds.
var minutePrecision = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}$`)

const (
	msgSeatsAtLeastOne  = "Number of seats must be at least 1"
	msgSamePlaces       = "Origin and destination must be different"
	msgTripType         = "Trip type must be ONE_WAY or ROUND_TRIP"
	msgReturnDateNeeded = "Return date is required for a round trip"
)

type SearchView struct {
	view

	FromPlace     string `json:"fromPlace"`
	ToPlace       string `json:"toPlace"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
	NumberOfSeats int    `json:"numberOfSeats"`
	TripType      string `json:"tripType"`

	Flights       []models.Flight `json:"flights"`
	ReturnFlights []models.Flight `json:"returnFlights,omitempty"`
}

func NewSearchView(deps Deps) *SearchView {
	return &SearchView{
		view:          newView("search", deps),
		NumberOfSeats: 1,
		TripType:      models.TripOneWay,
		Flights:       []models.Flight{},
	}
}

func (v *SearchView) Submit(ctx context.Context) error {
	v.reset()
	req, err := v.request()
	if err != nil {
		return v.fail(ctx, err, "")
	}

	var result *models.FlightSearchResult
	err = v.call(ctx, func(ctx context.Context) error {
		var err error
		result, err = v.deps.Gateway.SearchFlights(ctx, req)
		return err
	})
	if err != nil {
		return v.fail(ctx, err, MsgNoFlights)
	}

	v.Flights = result.OutboundFlights
	if v.Flights == nil {
		v.Flights = []models.Flight{}
	}
	v.ReturnFlights = result.ReturnFlights
	v.succeed()
	return nil
}

func (v *SearchView) request() (models.FlightSearchRequest, error) {
	v.FromPlace = strings.TrimSpace(v.FromPlace)
	v.ToPlace = strings.TrimSpace(v.ToPlace)
	v.TripType = strings.ToUpper(strings.TrimSpace(v.TripType))
	if v.TripType == "" {
		v.TripType = models.TripOneWay
	}

	if !validation.Required(v.FromPlace, v.ToPlace, v.DepartureDate) {
		return models.FlightSearchRequest{}, apperrors.NewValidationError(validation.MsgAllFieldsRequired)
	}

	var problems []string
	if v.NumberOfSeats < 1 {
		problems = append(problems, msgSeatsAtLeastOne)
	}
	if strings.EqualFold(v.FromPlace, v.ToPlace) {
		problems = append(problems, msgSamePlaces)
	}
	switch v.TripType {
	case models.TripOneWay:
	case models.TripRoundTrip:
		if strings.TrimSpace(v.ReturnDate) == "" {
			problems = append(problems, msgReturnDateNeeded)
		}
	default:
		problems = append(problems, msgTripType)
	}
	if len(problems) > 0 {
		return models.FlightSearchRequest{}, apperrors.NewValidationError(problems...)
	}

	req := models.FlightSearchRequest{
		FromPlace:     v.FromPlace,
		ToPlace:       v.ToPlace,
		DepartureDate: withSeconds(v.DepartureDate),
		NumberOfSeats: v.NumberOfSeats,
		TripType:      v.TripType,
	}
	if v.TripType == models.TripRoundTrip {
		req.ReturnDate = withSeconds(v.ReturnDate)
	}
	return req, nil
}

// withSeconds completes a YYYY-MM-DDTHH:MM value with ":00".
func withSeconds(s string) string {
	s = strings.TrimSpace(s)
	if minutePrecision.MatchString(s) {
		return s + ":00"
	}
	return s
}
