package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"flightdesk/internal/config"
	"flightdesk/internal/gateway"
	"flightdesk/internal/logger"
	"flightdesk/internal/models"
	"flightdesk/internal/session"
	"flightdesk/internal/storage"
)

type validateOptions struct {
	email    string
	password string
	from     string
	to       string
	date     string
}

// runValidate logs in against the configured gateway and checks every
// read-only response against its contract schema. The session used is
// in memory: the shell's stored session is left untouched.
func runValidate(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	url := fs.String("url", cfg.Gateway.BaseURL, "gateway base URL")
	var opts validateOptions
	fs.StringVar(&opts.email, "email", "", "account email")
	fs.StringVar(&opts.password, "password", "", "account password")
	fs.StringVar(&opts.from, "from", "DEL", "search origin")
	fs.StringVar(&opts.to, "to", "BOM", "search destination")
	fs.StringVar(&opts.date, "date", time.Now().AddDate(0, 0, 7).Format("2006-01-02T15:04:05"), "search departure date-time")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.email == "" || opts.password == "" {
		return fmt.Errorf("-email and -password are required")
	}

	gwCfg := cfg.Gateway
	gwCfg.BaseURL = *url
	gwCfg.StrictContract = true

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	return validateGateway(ctx, gwCfg, opts)
}

func validateGateway(ctx context.Context, cfg gateway.Config, opts validateOptions) error {
	log := logger.WithFields("gateway", cfg.BaseURL)
	log.Info("Starting gateway contract validation")

	sessions := session.NewStore(storage.NewMemoryStore())
	client := gateway.NewClient(cfg, sessions, nil)

	auth, err := client.Login(ctx, models.LoginRequest{Email: opts.email, Password: opts.password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := sessions.Save(*auth, opts.email); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	log.Info("Login response valid", "role", auth.Role)

	result, err := client.SearchFlights(ctx, models.FlightSearchRequest{
		FromPlace:     opts.from,
		ToPlace:       opts.to,
		DepartureDate: opts.date,
		NumberOfSeats: 1,
		TripType:      models.TripOneWay,
	})
	if err != nil {
		return fmt.Errorf("flight search: %w", err)
	}
	log.Info("Flight search response valid", "outbound", len(result.OutboundFlights))

	history, err := client.BookingHistory(ctx, opts.email)
	if err != nil {
		return fmt.Errorf("booking history: %w", err)
	}
	log.Info("Booking history response valid", "bookings", len(history))

	return nil
}
