package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiendao/smartclass/core"
	"github.com/hiendao/smartclass/core/user"
	"github.com/hiendao/smartclass/storage/snapshot"
)

func setup(t *testing.T) *user.Service {
	db, err := snapshot.Open(&core.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return user.NewService(snapshot.NewUserRepository(db), core.NopLogger{})
}

func register(t *testing.T, svc *user.Service, uname, pwd, role string) user.User {
	usr, err := svc.Register(user.NewUser{
		Username: uname,
		Password: pwd,
		FullName: "Test User",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("register() failed: %v", err)
	}
	return usr
}

func TestService_Register(t *testing.T) {
	svc := setup(t)

	usr := register(t, svc, "admin", "123", user.RoleAdmin)
	assert.NotEmpty(t, usr.ID)
	assert.True(t, usr.IsAdmin())
	assert.False(t, usr.CreatedAt.IsZero())

	tests := []struct {
		name string
		nu   user.NewUser
	}{
		{name: "duplicate username", nu: user.NewUser{Username: "admin", Password: "x", FullName: "X", Role: user.RoleAdmin}},
		{name: "username case-folded before uniqueness", nu: user.NewUser{Username: "ADMIN", Password: "x", FullName: "X", Role: user.RoleAdmin}},
		{name: "missing password", nu: user.NewUser{Username: "new", FullName: "X", Role: user.RoleAdmin}},
		{name: "username too short", nu: user.NewUser{Username: "a", Password: "x", FullName: "X", Role: user.RoleAdmin}},
		{name: "unknown role", nu: user.NewUser{Username: "new", Password: "x", FullName: "X", Role: "teacher"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.nu)
			assert.Error(t, err)
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	svc := setup(t)
	register(t, svc, "hs", "123", user.RoleStudent)

	usr, err := svc.Authenticate("hs", "123")
	require.NoError(t, err)
	assert.Equal(t, "hs", usr.Username)
	assert.True(t, usr.IsStudent())

	// username matching is case-insensitive, like the registration fold
	_, err = svc.Authenticate("HS", "123")
	assert.NoError(t, err)

	_, err = svc.Authenticate("hs", "wrong")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	// an unknown username gets the same error as a bad password
	_, err = svc.Authenticate("ghost", "123")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestService_Update(t *testing.T) {
	svc := setup(t)
	usr := register(t, svc, "hs", "123", user.RoleStudent)

	got, err := svc.Update(usr.ID, user.UpdateUser{FullName: "Renamed", Password: "456"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.FullName)
	assert.Equal(t, user.RoleStudent, got.Role) // untouched fields keep their values

	_, err = svc.Authenticate("hs", "123")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	_, err = svc.Authenticate("hs", "456")
	assert.NoError(t, err)

	_, err = svc.Update("ghost", user.UpdateUser{FullName: "X"})
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	svc := setup(t)
	usr := register(t, svc, "hs", "123", user.RoleStudent)

	require.NoError(t, svc.Delete(usr.ID))
	assert.ErrorIs(t, svc.Delete(usr.ID), user.ErrNotFound)

	_, err := svc.GetByID(usr.ID)
	assert.ErrorIs(t, err, user.ErrNotFound)
}
