package api

import (
	"fmt"
	"net/http"

	"flightdesk/internal/booking"
	"flightdesk/internal/config"
	"flightdesk/internal/gateway"
	"flightdesk/internal/guard"
	"flightdesk/internal/handlers"
	"flightdesk/internal/logger"
	"flightdesk/internal/messaging"
	"flightdesk/internal/metrics"
	"flightdesk/internal/middleware"
	"flightdesk/internal/session"
	"flightdesk/internal/views"

	"github.com/gin-gonic/gin"
)

// Server is the local shell. It owns exactly one session.
type Server struct {
	router    *gin.Engine
	config    *config.Config
	backend   *sessionBackend
	sessions  *session.Store
	nav       *guard.History
	guard     *guard.Guard
	metrics   *metrics.Metrics
	handlers  *handlers.Handlers
	closeNATS func() error
}

// NewServer opens the session storage and the activity publisher and
// wires every view behind the router.
func NewServer(cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.GinMode)

	backend, err := openSessionStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open session storage: %w", err)
	}

	publisher, closeNATS, err := messaging.NewPublisher(cfg.NATS)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("failed to connect activity publisher: %w", err)
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	sessions := session.NewStore(backend.store)
	nav := guard.NewHistory(guard.LoginPath)
	client := gateway.NewClient(cfg.Gateway, sessions, m)

	deps := views.Deps{
		Gateway:  client,
		Sessions: sessions,
		Events:   publisher,
		Metrics:  m,
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())

	server := &Server{
		router:    router,
		config:    cfg,
		backend:   backend,
		sessions:  sessions,
		nav:       nav,
		guard:     guard.New(sessions, nav),
		metrics:   m,
		handlers:  handlers.NewHandlers(deps, nav, booking.NewSeatGrid()),
		closeNATS: closeNATS,
	}

	server.setupRoutes()

	logger.Get().Info("Shell configured",
		"session_driver", cfg.Session.Driver,
		"gateway", cfg.Gateway.BaseURL,
		"nats", cfg.NATS.Enabled,
		"metrics", cfg.MetricsEnabled)

	return server, nil
}

func (s *Server) setupRoutes() {
	h := s.handlers

	// Every view endpoint goes through one lock: the UI task queue
	shell := s.router.Group("")
	shell.Use(
		middleware.Serialize(),
		middleware.Timeout(s.config.RequestTimeout),
		middleware.ClearNavigation(s.nav),
		middleware.UserContext(s.sessions),
	)
	{
		shell.GET("/navbar", h.Navbar)
		shell.POST("/login", h.Login)
		shell.POST("/register", h.Register)
		shell.POST("/change-password", h.ChangePassword)
		shell.POST("/logout", h.Logout)

		protected := shell.Group("")
		protected.Use(middleware.RequireSession(s.guard))
		{
			protected.GET("/search-flights", h.GetSearch)
			protected.POST("/search-flights", h.SearchFlights)

			book := protected.Group("/book-flights/:flightId")
			{
				book.GET("", h.OpenBooking)
				book.PUT("/seats", h.SetSeatCount)
				book.POST("/seats/:code", h.ToggleSeat)
				book.PUT("/passengers/:index", h.UpdatePassenger)
				book.POST("/submit", h.SubmitBooking)
			}

			protected.GET("/bookings", h.ListBookings)
			protected.DELETE("/bookings/:pnr", h.CancelBooking)

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin(s.sessions))
			{
				admin.GET("/flights", h.GetAddFlight)
				admin.POST("/flights", h.AddFlight)
			}
		}
	}

	s.router.GET("/health", s.healthCheck)
	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	body := gin.H{
		"status":         "ok",
		"service":        "flightdesk",
		"version":        "1.0.0",
		"session_driver": s.config.Session.Driver,
		"authenticated":  s.sessions.IsAuthenticated(),
	}

	status := http.StatusOK
	if s.backend.db != nil {
		hc := s.backend.db.HealthCheck(c.Request.Context())
		body["database"] = hc
		if hc.Status != "healthy" {
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, body)
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter returns the router for tests and the http.Server
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup cancels pending view calls and closes connections
func (s *Server) Cleanup() error {
	s.handlers.Close()

	if s.closeNATS != nil {
		if err := s.closeNATS(); err != nil {
			logger.Get().Error("Error closing NATS connection", "error", err)
		}
	}

	if err := s.backend.Close(); err != nil {
		logger.Get().Error("Error closing session storage", "error", err)
		return err
	}

	return nil
}
