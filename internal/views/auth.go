package views

import (
	"context"
	"strings"
	"time"

	"flightdesk/internal/models"
	"flightdesk/internal/session"
	"flightdesk/internal/validation"
)

const defaultRegisterRole = "ROLE_USER"

type LoginView struct {
	view

	Email    string `json:"email"`
	Password string `json:"-"`
}

func NewLoginView(deps Deps) *LoginView {
	return &LoginView{view: newView("login", deps)}
}

// Submit authenticates and saves the session. A gateway that flags the
// password for change sends the user to the change-password view.
func (v *LoginView) Submit(ctx context.Context) error {
	v.reset()
	v.Email = strings.TrimSpace(v.Email)

	if !validation.Required(v.Email, v.Password) {
		return v.invalid(validation.MsgCredentialsRequired)
	}
	if !validation.IsEmail(v.Email) {
		return v.invalid(validation.MsgEmailInvalid)
	}

	var resp *models.AuthResponse
	err := v.call(ctx, func(ctx context.Context) error {
		var err error
		resp, err = v.deps.Gateway.Login(ctx, models.LoginRequest{Email: v.Email, Password: v.Password})
		return err
	})
	if err != nil {
		return v.fail(ctx, err, MsgInvalidCredentials)
	}

	v.Password = ""
	v.saveSession(ctx, resp, v.Email)
	role, _ := session.ParseRole(resp.Role)
	v.publish(ctx, models.EventSessionLogin, models.SessionEvent{Email: v.Email, Role: role, Timestamp: time.Now().UTC()})
	v.succeed()

	if resp.ForcePasswordChange.Bool() {
		v.navigate(RouteChangePassword)
	} else {
		v.navigate(RouteSearch)
	}
	return nil
}

type RegisterView struct {
	view

	Email    string `json:"email"`
	Password string `json:"-"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

func NewRegisterView(deps Deps) *RegisterView {
	return &RegisterView{view: newView("register", deps), Role: defaultRegisterRole}
}

func (v *RegisterView) Submit(ctx context.Context) error {
	v.reset()
	v.Email = strings.TrimSpace(v.Email)
	v.FullName = strings.TrimSpace(v.FullName)
	if v.Role == "" {
		v.Role = defaultRegisterRole
	}

	if !validation.Required(v.Email, v.Password, v.FullName) {
		return v.invalid(validation.MsgAllFieldsRequired)
	}
	if !validation.IsEmail(v.Email) {
		return v.invalid(validation.MsgEmailInvalid)
	}
	if err := validation.PasswordError(v.Password); err != nil {
		return v.fail(ctx, err, "")
	}

	req := models.RegisterRequest{Email: v.Email, Password: v.Password, FullName: v.FullName, Role: v.Role}
	var resp *models.AuthResponse
	err := v.call(ctx, func(ctx context.Context) error {
		var err error
		resp, err = v.deps.Gateway.Register(ctx, req)
		return err
	})
	if err != nil {
		return v.fail(ctx, err, MsgRegistrationFailed)
	}

	v.Password = ""
	if resp.Role == "" {
		resp.Role = v.Role
	}
	v.saveSession(ctx, resp, v.Email)
	role, _ := session.ParseRole(resp.Role)
	v.publish(ctx, models.EventSessionRegister, models.SessionEvent{Email: v.Email, Role: role, Timestamp: time.Now().UTC()})
	v.succeed()
	v.navigate(RouteLogin)
	return nil
}

type ChangePasswordView struct {
	view

	Email       string `json:"email"`
	OldPassword string `json:"-"`
	NewPassword string `json:"-"`
	Success     string `json:"success,omitempty"`
}

func NewChangePasswordView(deps Deps) *ChangePasswordView {
	v := &ChangePasswordView{view: newView("change_password", deps)}
	if email, ok := deps.Sessions.Email(); ok {
		v.Email = email
	}
	return v
}

func (v *ChangePasswordView) Submit(ctx context.Context) error {
	v.reset()
	v.Success = ""
	v.Email = strings.TrimSpace(v.Email)

	if !validation.Required(v.Email, v.OldPassword, v.NewPassword) {
		return v.invalid(validation.MsgAllFieldsRequired)
	}
	if !validation.IsEmail(v.Email) {
		return v.invalid(validation.MsgEmailInvalid)
	}
	if err := validation.PasswordError(v.NewPassword); err != nil {
		return v.fail(ctx, err, "")
	}

	req := models.ChangePasswordRequest{Email: v.Email, OldPassword: v.OldPassword, NewPassword: v.NewPassword}
	err := v.call(ctx, func(ctx context.Context) error {
		return v.deps.Gateway.ChangePassword(ctx, req)
	})
	if err != nil {
		return v.fail(ctx, err, MsgPasswordFailed)
	}

	v.OldPassword, v.NewPassword = "", ""
	v.succeed()
	v.Success = MsgPasswordUpdated
	v.navigate(RouteLogin)
	return nil
}
