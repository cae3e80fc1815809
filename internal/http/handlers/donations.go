package handlers

import (
	"encoding/json"
	"net/http"

	"ngoconnect/internal/domain"
	"ngoconnect/internal/payment"
)

type donationRequest struct {
	Amount   float64 `json:"amount"`
	ReturnTo string  `json:"returnTo"`
}

type donationStartResponse struct {
	Donation *domain.Donation `json:"donation"`
	FlowID   string           `json:"flowId"`
}

// DonationsCreate creates a PENDING donation for the active user and opens a
// payment flow for it. The client then drives the flow endpoints; abandoning
// the flow leaves the record PENDING.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(w)
	if user == nil {
		return
	}
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Amount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
		return
	}
	donation, err := a.Donations.Create(r.Context(), user.ID, user.Name, req.Amount)
	if err != nil {
		a.domainError(w, err)
		return
	}
	flow, err := a.Payments.Start(payment.FlowRequest{
		DonationID: donation.ID,
		Amount:     donation.Amount,
		DonorName:  user.Name,
		ReturnTo:   req.ReturnTo,
	})
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, donationStartResponse{Donation: donation, FlowID: flow.ID})
}

// DonationsMine lists the active user's donations, most recent first.
func (a *App) DonationsMine(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(w)
	if user == nil {
		return
	}
	items, err := a.Donations.ListByUser(r.Context(), user.ID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
