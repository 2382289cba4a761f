package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "flightdesk/internal/errors"
	"flightdesk/internal/logger"
	"flightdesk/internal/metrics"
	"flightdesk/internal/models"
	"flightdesk/internal/validation"
)

// Gateway routes
const (
	PathLogin         = "/auth/login"
	PathRegister      = "/auth/register"
	PathFlightSearch  = "/api/v1.0/flight/search"
	PathBooking       = "/api/v1.0/flight/booking/"
	PathHistory       = "/api/v1.0/flight/booking/history/"
	PathCancelBooking = "/api/v1.0/flight/booking/cancel/"
	PathAddFlight     = "/api/v1.0/flight/airline/inventory/add"
)

const maxResponseBytes = 4 << 20

type Config struct {
	BaseURL string
	Timeout time.Duration
	// ChangePasswordPath is configurable: the gateway route is not fixed upstream.
	ChangePasswordPath string
	// StrictContract validates response bodies against the contract schemas.
	StrictContract bool
	// Transport is the innermost round tripper; nil means http.DefaultTransport.
	Transport http.RoundTripper
}

// Client is the only path to the gateway. Its transport chain runs the
// Authenticator exactly once per request.
type Client struct {
	baseURL            string
	changePasswordPath string
	strict             bool
	httpClient         *http.Client
}

func NewClient(cfg Config, tokens TokenSource, m *metrics.Metrics) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.ChangePasswordPath == "" {
		cfg.ChangePasswordPath = "/auth/change-password"
	}
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	var transport http.RoundTripper = m.InstrumentRoundTripper(base)
	transport = NewAuthenticator(tokens, transport)
	transport = &requestIDTransport{next: transport}

	return &Client{
		baseURL:            strings.TrimSuffix(cfg.BaseURL, "/"),
		changePasswordPath: "/" + strings.TrimPrefix(cfg.ChangePasswordPath, "/"),
		strict:             cfg.StrictContract,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, "login", http.MethodPost, PathLogin, req, validation.ContractAuth, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, "register", http.MethodPost, PathRegister, req, validation.ContractAuth, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return c.do(ctx, "change password", http.MethodPost, c.changePasswordPath, req, "", nil)
}

func (c *Client) SearchFlights(ctx context.Context, req models.FlightSearchRequest) (*models.FlightSearchResult, error) {
	var resp models.APIResponse[models.FlightSearchResult]
	if err := c.do(ctx, "search flights", http.MethodPost, PathFlightSearch, req, validation.ContractSearch, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) BookFlight(ctx context.Context, flightID int64, draft models.BookingDraft) (*models.APIResponse[models.BookingResponse], error) {
	var resp models.APIResponse[models.BookingResponse]
	path := fmt.Sprintf("%s%d", PathBooking, flightID)
	if err := c.do(ctx, "book flight", http.MethodPost, path, draft, validation.ContractBooking, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) BookingHistory(ctx context.Context, email string) ([]models.BookingHistoryItem, error) {
	var resp models.APIResponse[[]models.BookingHistoryItem]
	path := PathHistory + url.PathEscape(email)
	if err := c.do(ctx, "booking history", http.MethodGet, path, nil, validation.ContractHistory, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CancelBooking returns the gateway's confirmation message.
func (c *Client) CancelBooking(ctx context.Context, pnr string) (string, error) {
	var resp models.APIResponse[json.RawMessage]
	path := PathCancelBooking + url.PathEscape(pnr)
	if err := c.do(ctx, "cancel booking", http.MethodDelete, path, nil, validation.ContractCancel, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// AddFlightInventory adds a flight to the airline inventory. Admin only upstream.
func (c *Client) AddFlightInventory(ctx context.Context, req models.AddFlightRequest) (*models.APIResponse[models.Flight], error) {
	var resp models.APIResponse[models.Flight]
	if err := c.do(ctx, "add flight", http.MethodPost, PathAddFlight, req, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, contract validation.Contract, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal request: %w", op, err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := logger.WithContext(ctx).With("op", op, "method", method, "path", path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", op, ctxErr)
		}
		log.Warn("Gateway request failed", "error", err)
		return fmt.Errorf("%s: %w: %v", op, apperrors.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	log = log.With("status_code", resp.StatusCode, "latency_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drained for connection reuse only; the body is never shown.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		log.Warn("Gateway returned non-success status")
		return &apperrors.RequestFailedError{Op: op, Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", op, ctxErr)
		}
		return fmt.Errorf("%s: %w: failed to read response: %v", op, apperrors.ErrRequestFailed, err)
	}
	log.Debug("Gateway request completed")

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		if out != nil && c.strict && contract != "" {
			return fmt.Errorf("%s: %w: empty response body", op, apperrors.ErrRequestFailed)
		}
		return nil
	}

	if c.strict && contract != "" {
		if err := validation.CheckResponse(contract, raw); err != nil {
			log.Warn("Gateway response violates contract", "error", err)
			return fmt.Errorf("%s: %w: %v", op, apperrors.ErrRequestFailed, err)
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: %w: failed to decode response: %v", op, apperrors.ErrRequestFailed, err)
	}
	return nil
}

// IsCancelled reports whether err came from a cancelled or expired context.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
