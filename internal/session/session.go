// Package session owns the authentication token and the identity derived
// from it. One Store is built per process and handed to every component
// that needs it.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flightdesk/internal/logger"
	"flightdesk/internal/models"
	"flightdesk/internal/storage"
)

// Storage keys, kept compatible with the browser client's local storage.
const (
	KeyToken = "token"
	KeyEmail = "userEmail"
	KeyRole  = "role"
)

const storageTimeout = 5 * time.Second

type Store struct {
	kv storage.Store
}

func NewStore(kv storage.Store) *Store {
	return &Store{kv: kv}
}

// Save persists token, email and role from a login or registration response.
// A failed write removes every session key so no partial identity survives.
func (s *Store) Save(resp models.AuthResponse, email string) error {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	if err := s.write(ctx, resp, email); err != nil {
		if rbErr := s.kv.Delete(ctx, KeyToken, KeyEmail, KeyRole); rbErr != nil {
			logger.Get().Error("Failed to roll back partial session", "error", rbErr)
		}
		return err
	}
	return nil
}

func (s *Store) write(ctx context.Context, resp models.AuthResponse, email string) error {
	if err := s.kv.Set(ctx, KeyToken, resp.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if err := s.kv.Set(ctx, KeyEmail, email); err != nil {
		return fmt.Errorf("failed to save email: %w", err)
	}

	role, ok := ParseRole(resp.Role)
	if !ok {
		if err := s.kv.Delete(ctx, KeyRole); err != nil {
			return fmt.Errorf("failed to clear role: %w", err)
		}
		return nil
	}
	if err := s.kv.Set(ctx, KeyRole, string(role)); err != nil {
		return fmt.Errorf("failed to save role: %w", err)
	}
	return nil
}

func (s *Store) Token() (string, bool) {
	return s.read(KeyToken)
}

func (s *Store) Email() (string, bool) {
	return s.read(KeyEmail)
}

func (s *Store) Role() (models.Role, bool) {
	v, ok := s.read(KeyRole)
	if !ok {
		return "", false
	}
	return ParseRole(v)
}

// IsInRole is true iff a token is present and the stored role equals role.
func (s *Store) IsInRole(role models.Role) bool {
	if !s.IsAuthenticated() {
		return false
	}
	stored, ok := s.Role()
	return ok && stored == role
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

func (s *Store) IsUser() bool {
	return s.IsInRole(models.RoleUser)
}

func (s *Store) IsAdmin() bool {
	return s.IsInRole(models.RoleAdmin)
}

// Clear removes every session key. Calling it on an empty session is a no-op.
func (s *Store) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	if err := s.kv.Delete(ctx, KeyToken, KeyEmail, KeyRole); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// read never fails: a broken backend reads as an absent key.
func (s *Store) read(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	v, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		logger.WithFields("key", key).Warn("Session storage read failed", "error", err)
		return "", false
	}
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// ParseRole accepts USER/ADMIN with or without the ROLE_ prefix.
func ParseRole(raw string) (models.Role, bool) {
	r := strings.ToUpper(strings.TrimSpace(raw))
	r = strings.TrimPrefix(r, "ROLE_")
	switch models.Role(r) {
	case models.RoleUser:
		return models.RoleUser, true
	case models.RoleAdmin:
		return models.RoleAdmin, true
	}
	return "", false
}
