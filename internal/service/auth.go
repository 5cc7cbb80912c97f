package service

import (
	"github.com/studiomart/orderpay/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// AuthService checks the admin credential and issues auth tokens
type AuthService struct {
	token    TokenService
	passHash string
}

// NewAuthService creates new AuthService instance
func NewAuthService(token TokenService, passHash string) *AuthService {
	return &AuthService{
		token:    token,
		passHash: passHash,
	}
}

// Login verifies the admin password and returns a signed auth token
func (as *AuthService) Login(password string) (string, error) {
	if as.passHash == "" {
		return "", models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(as.passHash), []byte(password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	return as.token.CreateToken("admin")
}
