package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"ngoconnect/internal/domain"
	"ngoconnect/internal/payment"
	"ngoconnect/internal/session"
)

// App is the handler container: every route is a method on it and every
// collaborator is injected once at startup.
type App struct {
	Logger    zerolog.Logger
	Sessions  *session.Provider
	Users     domain.UserRepository
	Donations domain.DonationRepository
	Payments  *payment.Manager
}

func NewApp(logger zerolog.Logger, sessions *session.Provider, users domain.UserRepository, donations domain.DonationRepository, payments *payment.Manager) *App {
	return &App{
		Logger:    logger,
		Sessions:  sessions,
		Users:     users,
		Donations: donations,
		Payments:  payments,
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, errorBody{Error: kind, Message: message})
}

// domainError maps repository and validation failures onto HTTP responses.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateUser):
		a.error(w, http.StatusConflict, "duplicate_user", "user already exists")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "record not found")
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", "login required")
	default:
		a.Logger.Error().Err(err).Msg("operation failed")
		a.error(w, http.StatusInternalServerError, "internal", "operation failed")
	}
}

// currentUser returns the active session user or responds 401 and returns nil.
func (a *App) currentUser(w http.ResponseWriter) *domain.User {
	user := a.Sessions.Current()
	if user == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "login required")
		return nil
	}
	return user
}

// currentAdmin returns the active admin or responds 401/403 and returns nil.
func (a *App) currentAdmin(w http.ResponseWriter) *domain.User {
	user := a.Sessions.Current()
	if user == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "login required")
		return nil
	}
	if !user.IsAdmin() {
		a.error(w, http.StatusForbidden, "forbidden", "admin role required")
		return nil
	}
	return user
}

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
