package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"villa-backend/models"
)

// AuthService issues and validates admin session tokens. The client
// holds only the opaque token; every admin request is checked against
// the sessions table.
type AuthService struct {
	DB         *gorm.DB
	SessionTTL time.Duration
}

func NewAuthService(db *gorm.DB, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{DB: db, SessionTTL: ttl}
}

func generateTokenHex(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Login verifies the credentials and returns a fresh session token.
func (s *AuthService) Login(username, password string) (string, models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", models.Admin{}, validationf("username and password required")
	}

	var admin models.Admin
	if err := s.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.Admin{}, ErrInvalidCredentials
		}
		return "", models.Admin{}, &StorageError{Op: "load admin", Err: err}
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return "", models.Admin{}, ErrInvalidCredentials
	}

	token, err := generateTokenHex(32)
	if err != nil {
		return "", models.Admin{}, &StorageError{Op: "generate token", Err: err}
	}

	session := models.AdminSession{
		AdminID:   admin.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.SessionTTL),
	}
	if err := s.DB.Create(&session).Error; err != nil {
		return "", models.Admin{}, &StorageError{Op: "create session", Err: err}
	}

	log.Info().Str("username", admin.Username).Msg("admin logged in")
	return token, admin, nil
}

// Validate resolves a session token to its admin, rejecting unknown and
// expired tokens.
func (s *AuthService) Validate(token string) (models.Admin, error) {
	if token == "" {
		return models.Admin{}, ErrSessionExpired
	}

	var session models.AdminSession
	err := s.DB.Preload("Admin").Where("token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Admin{}, ErrSessionExpired
		}
		return models.Admin{}, &StorageError{Op: "load session", Err: err}
	}

	if time.Now().After(session.ExpiresAt) {
		// expired sessions are dead weight, drop eagerly
		s.DB.Delete(&models.AdminSession{}, session.ID)
		return models.Admin{}, ErrSessionExpired
	}
	return session.Admin, nil
}

// Logout revokes the session. Revoking an unknown token is a no-op.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	if err := s.DB.Where("token = ?", token).Delete(&models.AdminSession{}).Error; err != nil {
		return &StorageError{Op: "delete session", Err: err}
	}
	return nil
}
