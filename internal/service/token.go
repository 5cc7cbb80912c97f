package service

import "github.com/studiomart/orderpay/internal/models"

type TokenService interface {
	CreateToken(subject string) (string, error)
	VerifyToken(tokenString string) (*models.TokenPayload, error)
}
