package handlers

import (
	"net/http"

	"flightdesk/internal/views"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type changePasswordRequest struct {
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Login - POST /login
// A successful login replaces the identity, so views of the previous one end.
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v := views.NewLoginView(h.deps)
	defer v.Close()
	v.Email, v.Password = req.Email, req.Password

	err := v.Submit(c.Request.Context())
	if err == nil {
		h.closeLive()
	}
	h.respond(c, err, v)
}

// Register - POST /register
func (h *Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v := views.NewRegisterView(h.deps)
	defer v.Close()
	v.Email, v.Password, v.FullName = req.Email, req.Password, req.FullName
	if req.Role != "" {
		v.Role = req.Role
	}

	err := v.Submit(c.Request.Context())
	if err == nil {
		h.closeLive()
	}
	h.respond(c, err, v)
}

// ChangePassword - POST /change-password
func (h *Handlers) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v := views.NewChangePasswordView(h.deps)
	defer v.Close()
	if req.Email != "" {
		v.Email = req.Email
	}
	v.OldPassword, v.NewPassword = req.OldPassword, req.NewPassword

	err := v.Submit(c.Request.Context())
	h.respond(c, err, v)
}

// Navbar - GET /navbar
func (h *Handlers) Navbar(c *gin.Context) {
	v := views.NewNavbarView(h.deps)
	defer v.Close()
	h.respond(c, nil, v)
}

// Logout - POST /logout
// Ends the session and every view that belonged to it.
func (h *Handlers) Logout(c *gin.Context) {
	h.closeLive()

	v := views.NewNavbarView(h.deps)
	defer v.Close()
	v.Logout(c.Request.Context())
	h.respond(c, nil, v)
}
