package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"villa-backend/models"
)

func newAuthSvc(t *testing.T, ttl time.Duration) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Admin{
		FullName: "Villa Admin", Username: "admin@villa.local", Password: string(hash),
	}).Error)
	return NewAuthService(db, ttl), db
}

func TestLogin_IssuesValidToken(t *testing.T) {
	s, _ := newAuthSvc(t, time.Hour)

	token, admin, err := s.Login("admin@villa.local", "secret123")
	require.NoError(t, err)
	assert.Len(t, token, 64, "32 random bytes hex encoded")
	assert.Equal(t, "admin@villa.local", admin.Username)

	resolved, err := s.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, resolved.ID)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	s, _ := newAuthSvc(t, time.Hour)

	_, _, err := s.Login("admin@villa.local", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = s.Login("ghost@villa.local", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = s.Login("", "")
	assert.True(t, IsValidation(err))
}

func TestValidate_RejectsExpiredSession(t *testing.T) {
	s, db := newAuthSvc(t, time.Hour)
	token, _, err := s.Login("admin@villa.local", "secret123")
	require.NoError(t, err)

	// push the session past its expiry
	require.NoError(t, db.Model(&models.AdminSession{}).
		Where("token = ?", token).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err = s.Validate(token)
	assert.ErrorIs(t, err, ErrSessionExpired)

	var count int64
	db.Model(&models.AdminSession{}).Where("token = ?", token).Count(&count)
	assert.Zero(t, count, "expired session is dropped eagerly")
}

func TestLogout_RevokesSession(t *testing.T) {
	s, _ := newAuthSvc(t, time.Hour)
	token, _, err := s.Login("admin@villa.local", "secret123")
	require.NoError(t, err)

	require.NoError(t, s.Logout(token))

	_, err = s.Validate(token)
	assert.ErrorIs(t, err, ErrSessionExpired)

	// unknown token is a no-op
	assert.NoError(t, s.Logout("deadbeef"))
}

func TestValidate_EmptyToken(t *testing.T) {
	s, _ := newAuthSvc(t, time.Hour)
	_, err := s.Validate("")
	assert.ErrorIs(t, err, ErrSessionExpired)
}
