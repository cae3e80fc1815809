package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"ngoconnect/internal/domain"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

func toUserDTO(u *domain.User) userDTO {
	return userDTO{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     string(u.Role),
		JoinedAt: u.JoinedAt,
	}
}

func (a *App) AuthRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name, email and password are required")
		return
	}
	user, err := a.Sessions.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.Logger.Info().Str("user_id", user.ID).Msg("user registered")
	a.json(w, http.StatusCreated, toUserDTO(user))
}

func (a *App) AuthLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	user, err := a.Sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "user not found, please register")
			return
		}
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toUserDTO(user))
}

func (a *App) AuthLogout(w http.ResponseWriter, r *http.Request) {
	if err := a.Sessions.Logout(); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(w)
	if user == nil {
		return
	}
	a.json(w, http.StatusOK, toUserDTO(user))
}
