package handlers

import (
	"errors"
	"net/http"

	apperrors "flightdesk/internal/errors"
	"flightdesk/internal/booking"
	"flightdesk/internal/guard"
	"flightdesk/internal/views"

	"github.com/gin-gonic/gin"
)

// Handlers map the shell endpoints onto views. The router serialises
// them, so the live views below are never touched concurrently.
type Handlers struct {
	deps views.Deps
	nav  *guard.History
	grid *booking.SeatGrid

	search *views.SearchView
	book   *views.BookView
}

func NewHandlers(deps views.Deps, nav *guard.History, grid *booking.SeatGrid) *Handlers {
	if grid == nil {
		grid = booking.NewSeatGrid()
	}
	deps.Nav = nav
	return &Handlers{deps: deps, nav: nav, grid: grid}
}

// Response is the envelope of every view endpoint.
type Response struct {
	View     any    `json:"view"`
	Redirect string `json:"redirect,omitempty"`
}

func (h *Handlers) respond(c *gin.Context, err error, view any) {
	resp := Response{View: view}
	if path, ok := h.nav.Take(); ok {
		resp.Redirect = path
	}
	if err != nil {
		c.Error(err)
	}
	c.JSON(statusFor(err), resp)
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrCancelled):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrRequestFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// closeLive ends the lifetime of views kept between requests.
func (h *Handlers) closeLive() {
	if h.search != nil {
		h.search.Close()
		h.search = nil
	}
	if h.book != nil {
		h.book.Close()
		h.book = nil
	}
}

// Close cancels every pending view call. Called on shutdown.
func (h *Handlers) Close() {
	h.closeLive()
}
