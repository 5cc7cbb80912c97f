package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/studiomart/orderpay/internal/models"
)

type AuthService interface {
	// Login verifies the admin password and returns a signed auth token
	Login(password string) (string, error)
}

// AdminHandler represents HTTP handler for admin authentication
type AdminHandler struct {
	svc AuthService
}

// NewAdminHandler creates new AdminHandler instance
func NewAdminHandler(svc AuthService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login authenticates the admin and sets the auth cookie
// 200 — authenticated, cookie set.
// 400 — invalid request body.
// 401 — wrong password.
func (ah *AdminHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad request")
			return
		}
		defer r.Body.Close()

		token, err := ah.svc.Login(req.Password)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, "invalid credentials")
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "auth_token",
			Value:    token,
			Path:     "/",
			HttpOnly: true,
		})

		writeJSON(w, http.StatusOK, batchResponse{OK: true})
	}
}
