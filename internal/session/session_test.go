package session

import (
	"context"
	"errors"
	"testing"

	"flightdesk/internal/models"
	"flightdesk/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("backend down")
}
func (brokenStore) Set(context.Context, string, string) error { return errors.New("backend down") }
func (brokenStore) Delete(context.Context, ...string) error   { return errors.New("backend down") }

// failingStore wraps a MemoryStore and refuses writes to one key.
type failingStore struct {
	*storage.MemoryStore
	failKey string
}

func (f failingStore) Set(ctx context.Context, key, value string) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func TestStore_SaveFailureLeavesNoPartialSession(t *testing.T) {
	for _, key := range []string{KeyEmail, KeyRole} {
		t.Run(key, func(t *testing.T) {
			kv := failingStore{MemoryStore: storage.NewMemoryStore(), failKey: key}
			require.NoError(t, kv.MemoryStore.Set(context.Background(), KeyRole, "ADMIN"))
			s := NewStore(kv)

			err := s.Save(models.AuthResponse{Token: "jwt", Role: "USER"}, "a@b.io")
			require.Error(t, err)

			assert.False(t, s.IsAuthenticated())
			_, ok := s.Email()
			assert.False(t, ok)
			_, ok = s.Role()
			assert.False(t, ok, "previous role must not outlive a failed save")
		})
	}
}

func TestStore_SaveAndRead(t *testing.T) {
	kv := storage.NewMemoryStore()
	s := NewStore(kv)

	require.NoError(t, s.Save(models.AuthResponse{Token: "jwt-1", Role: "ROLE_ADMIN"}, "admin@fly.io"))

	token, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "jwt-1", token)

	email, ok := s.Email()
	assert.True(t, ok)
	assert.Equal(t, "admin@fly.io", email)

	role, ok := s.Role()
	assert.True(t, ok)
	assert.Equal(t, models.RoleAdmin, role)

	assert.True(t, s.IsAdmin())
	assert.False(t, s.IsUser())

	raw, _, _ := kv.Get(context.Background(), KeyRole)
	assert.Equal(t, "ADMIN", raw)
}

func TestStore_EmptySession(t *testing.T) {
	s := NewStore(storage.NewMemoryStore())

	_, ok := s.Token()
	assert.False(t, ok)
	_, ok = s.Email()
	assert.False(t, ok)
	_, ok = s.Role()
	assert.False(t, ok)
	assert.False(t, s.IsInRole(models.RoleUser))
	assert.False(t, s.IsAuthenticated())
}

func TestStore_IsInRoleRequiresToken(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), KeyRole, "USER"))

	s := NewStore(kv)
	assert.False(t, s.IsInRole(models.RoleUser), "role without token is not a session")
}

func TestStore_SaveOverwritesRole(t *testing.T) {
	s := NewStore(storage.NewMemoryStore())

	require.NoError(t, s.Save(models.AuthResponse{Token: "a", Role: "ADMIN"}, "x@y.io"))
	require.NoError(t, s.Save(models.AuthResponse{Token: "b"}, "z@y.io"))

	_, ok := s.Role()
	assert.False(t, ok, "a response without role leaves no stale role behind")
	email, _ := s.Email()
	assert.Equal(t, "z@y.io", email)
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	s := NewStore(storage.NewMemoryStore())
	require.NoError(t, s.Save(models.AuthResponse{Token: "a", Role: "USER"}, "x@y.io"))

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())

	assert.False(t, s.IsAuthenticated())
	_, ok := s.Email()
	assert.False(t, ok)
}

func TestStore_BrokenBackendReadsAbsent(t *testing.T) {
	s := NewStore(brokenStore{})

	_, ok := s.Token()
	assert.False(t, ok)
	assert.Error(t, s.Save(models.AuthResponse{Token: "a"}, "x@y.io"))
	assert.Error(t, s.Clear())
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		want models.Role
		ok   bool
	}{
		{"USER", models.RoleUser, true},
		{"ROLE_USER", models.RoleUser, true},
		{"admin", models.RoleAdmin, true},
		{" ROLE_ADMIN ", models.RoleAdmin, true},
		{"", "", false},
		{"PILOT", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseRole(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
