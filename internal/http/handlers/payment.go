package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ngoconnect/internal/payment"
)

type outcomeRequest struct {
	Outcome payment.Outcome `json:"outcome"`
}

// flowOr404 resolves the flow id from the route. An unknown id means the
// payment session is orphaned; the client is pointed back at the auth entry
// point because there is no recovery path.
func (a *App) flowOr404(w http.ResponseWriter, r *http.Request) *payment.Flow {
	id := chi.URLParam(r, "flowID")
	flow, ok := a.Payments.Get(id)
	if !ok {
		a.json(w, http.StatusNotFound, map[string]string{
			"error":      "not_found",
			"message":    "payment session not found",
			"redirectTo": "/login",
		})
		return nil
	}
	return flow
}

func (a *App) PaymentState(w http.ResponseWriter, r *http.Request) {
	flow := a.flowOr404(w, r)
	if flow == nil {
		return
	}
	a.json(w, http.StatusOK, flow.Snapshot())
}

// PaymentConfirm begins the simulated gateway contact. Not cancellable once
// started.
func (a *App) PaymentConfirm(w http.ResponseWriter, r *http.Request) {
	flow := a.flowOr404(w, r)
	if flow == nil {
		return
	}
	if err := flow.Confirm(); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusAccepted, flow.Snapshot())
}

// PaymentOutcome records the chosen simulation outcome.
func (a *App) PaymentOutcome(w http.ResponseWriter, r *http.Request) {
	flow := a.flowOr404(w, r)
	if flow == nil {
		return
	}
	var req outcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := flow.SelectOutcome(req.Outcome); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusAccepted, flow.Snapshot())
}

// PaymentAbandon cancels the flow's timers and retires it. The donation
// record keeps whatever status it already has.
func (a *App) PaymentAbandon(w http.ResponseWriter, r *http.Request) {
	flow := a.flowOr404(w, r)
	if flow == nil {
		return
	}
	flow.Abandon()
	w.WriteHeader(http.StatusNoContent)
}
