package service

import (
	"testing"

	"github.com/studiomart/orderpay/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type staticToken struct{}

func (staticToken) CreateToken(subject string) (string, error) {
	return "token-" + subject, nil
}

func (staticToken) VerifyToken(tokenString string) (*models.TokenPayload, error) {
	return &models.TokenPayload{Subject: "admin"}, nil
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAuthService(staticToken{}, string(hash))

	token, err := svc.Login("secret")
	require.NoError(t, err)
	assert.Equal(t, "token-admin", token)

	_, err = svc.Login("wrong")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestAuthService_Login_NoCredentialConfigured(t *testing.T) {
	svc := NewAuthService(staticToken{}, "")

	_, err := svc.Login("anything")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}
