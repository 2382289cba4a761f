package consumers

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"flightdesk/internal/logger"
	"flightdesk/internal/models"

	"github.com/nats-io/stan.go"
)

type Handlers struct {
	log *slog.Logger
}

func NewHandlers() *Handlers {
	return &Handlers{log: logger.Get()}
}

// Handle decodes one activity event and logs it. Unknown subjects and
// malformed payloads are reported as errors.
func (h *Handlers) Handle(subject string, data []byte) error {
	switch subject {
	case models.EventSessionLogin, models.EventSessionRegister, models.EventSessionLogout:
		var event models.SessionEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return fmt.Errorf("failed to unmarshal session event: %w", err)
		}
		h.log.Info("Session activity", "subject", subject, "email", event.Email, "role", event.Role, "at", event.Timestamp)

	case models.EventBookingCreated:
		var event models.BookingCreatedEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return fmt.Errorf("failed to unmarshal booking created event: %w", err)
		}
		h.log.Info("Booking created", "pnr", event.PNR, "flight_id", event.FlightID,
			"email", event.UserEmail, "seats", event.Seats, "at", event.Timestamp)

	case models.EventBookingCancelled:
		var event models.BookingCancelledEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return fmt.Errorf("failed to unmarshal booking cancelled event: %w", err)
		}
		h.log.Info("Booking cancelled", "pnr", event.PNR, "email", event.UserEmail, "at", event.Timestamp)

	case models.EventFlightAdded:
		var event models.FlightAddedEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return fmt.Errorf("failed to unmarshal flight added event: %w", err)
		}
		h.log.Info("Flight added", "flight_id", event.FlightID, "flight_number", event.FlightNumber,
			"route", event.FromPlace+"-"+event.ToPlace, "by", event.AddedBy, "at", event.Timestamp)

	default:
		return fmt.Errorf("unknown activity subject %q", subject)
	}
	return nil
}

// HandleMsg acknowledges the message once it is handled. A message that
// cannot be decoded is acknowledged too: redelivery would not fix it.
func (h *Handlers) HandleMsg(m *stan.Msg) {
	if err := h.Handle(m.Subject, m.Data); err != nil {
		h.log.Error("Failed to handle activity event", "subject", m.Subject, "error", err)
	}
	if err := m.Ack(); err != nil {
		h.log.Warn("Failed to ack message", "subject", m.Subject, "error", err)
	}
}
