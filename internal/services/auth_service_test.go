package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewAuthService(db)

		user, err := svc.Register("alice", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEqual(t, "hunter22", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))
	})

	t.Run("rejects empty username or password", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewAuthService(db)

		_, err := svc.Register("", "secret")
		assert.ErrorIs(t, err, ErrMissingCredentials)

		_, err = svc.Register("alice", "")
		assert.ErrorIs(t, err, ErrMissingCredentials)

		var count int64
		db.Model(&models.User{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("duplicate username yields conflict", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewAuthService(db)

		_, err := svc.Register("alice", "first")
		require.NoError(t, err)

		_, err = svc.Register("alice", "second")
		assert.ErrorIs(t, err, ErrUsernameTaken)

		var count int64
		db.Model(&models.User{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("username match is case-sensitive", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewAuthService(db)

		_, err := svc.Register("alice", "secret")
		require.NoError(t, err)

		_, err = svc.Register("Alice", "secret")
		assert.NoError(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("returns user on valid credentials", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewAuthService(db)

		created, err := svc.Register("alice", "hunter22")
		require.NoError(t, err)

		user, err := svc.Login("alice", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("wrong password and unknown user fail identically", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewAuthService(db)

		_, err := svc.Register("alice", "hunter22")
		require.NoError(t, err)

		_, errWrongPass := svc.Login("alice", "nope")
		_, errNoUser := svc.Login("nobody", "nope")

		assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
		assert.ErrorIs(t, errNoUser, ErrInvalidCredentials)
		assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
	})

	t.Run("rejects empty fields", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewAuthService(db)

		_, err := svc.Login("", "")
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})
}
