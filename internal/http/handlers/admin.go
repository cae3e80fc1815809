package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"ngoconnect/internal/domain"
	"ngoconnect/internal/export"
	"ngoconnect/internal/payment"
)

// AdminUsers lists every registration in insertion order.
func (a *App) AdminUsers(w http.ResponseWriter, r *http.Request) {
	if a.currentAdmin(w) == nil {
		return
	}
	users, err := a.Users.List(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]userDTO, 0, len(users))
	for i := range users {
		items = append(items, toUserDTO(&users[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// AdminDonations lists donation records, optionally filtered by status,
// most recent first.
func (a *App) AdminDonations(w http.ResponseWriter, r *http.Request) {
	if a.currentAdmin(w) == nil {
		return
	}
	donations, err := a.Donations.List(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	filter := domain.DonationStatus(r.URL.Query().Get("status"))
	var items []domain.Donation
	for _, d := range donations {
		if filter == "" || d.Status == filter {
			items = append(items, d)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

type manualStatusRequest struct {
	Status  domain.DonationStatus `json:"status"`
	Confirm bool                  `json:"confirm"`
}

// AdminDonationStatus applies a manual verification or rejection to a
// donation, bypassing the simulated gateway. The operator must confirm
// explicitly before the transition is applied.
func (a *App) AdminDonationStatus(w http.ResponseWriter, r *http.Request) {
	admin := a.currentAdmin(w)
	if admin == nil {
		return
	}
	var req manualStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if !req.Confirm {
		a.error(w, http.StatusBadRequest, "confirmation_required", "manual transitions require explicit confirmation")
		return
	}
	donationID := chi.URLParam(r, "donationID")
	updated, err := payment.ManualTransition(r.Context(), a.Donations, donationID, req.Status)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.Logger.Info().
		Str("admin_id", admin.ID).
		Str("donation_id", donationID).
		Str("status", string(req.Status)).
		Msg("donation manually transitioned")
	a.json(w, http.StatusOK, updated)
}

// AdminStats serves the overview aggregates for the dashboard.
func (a *App) AdminStats(w http.ResponseWriter, r *http.Request) {
	if a.currentAdmin(w) == nil {
		return
	}
	donations, err := a.Donations.List(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, export.BuildStats(donations))
}

// AdminExportUsers streams the registrations CSV.
func (a *App) AdminExportUsers(w http.ResponseWriter, r *http.Request) {
	if a.currentAdmin(w) == nil {
		return
	}
	users, err := a.Users.List(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.RegistrationsFilename+`"`)
	if err := export.WriteUsers(w, users); err != nil {
		a.Logger.Error().Err(err).Msg("csv export failed")
	}
}
