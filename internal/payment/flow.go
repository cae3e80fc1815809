package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ngoconnect/internal/domain"
)

// State enumerates the steps of one simulated payment attempt.
type State string

const (
	StateCollectingMethod  State = "collecting_method"
	StateContactingGateway State = "contacting_gateway"
	StateAwaitingOutcome   State = "awaiting_outcome_selection"
	StateFinalizing        State = "finalizing"
	StateSucceeded         State = "succeeded"
	StateDeclined          State = "declined"
	StateLeftPending       State = "left_pending"
)

// Outcome is one of the three equally valid operator-chosen gateway results.
// "failure" is not an exceptional path.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomePending Outcome = "pending"
)

const declinedMessage = "Payment declined by user simulation."

// Flow drives one donation attempt through the simulated gateway. It owns no
// durable state of its own; terminal transitions are committed through the
// donation repository. All timed transitions run on timers tied to the flow
// context, so abandoning the flow cannot leak a timer past its lifetime.
type Flow struct {
	ID         string
	DonationID string
	Amount     float64
	DonorName  string
	ReturnTo   string

	mgr    *Manager
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    State
	outcome  Outcome
	err      error
	returned bool
}

// Snapshot is a consistent view of a flow for presentation.
type Snapshot struct {
	ID         string  `json:"id"`
	DonationID string  `json:"donationId"`
	Amount     float64 `json:"amount"`
	DonorName  string  `json:"donorName"`
	State      State   `json:"state"`
	Outcome    Outcome `json:"outcome,omitempty"`
	ReturnTo   string  `json:"returnTo"`
	Returned   bool    `json:"returned"`
	Error      string  `json:"error,omitempty"`
}

// Confirm moves the flow from method collection into the simulated gateway
// contact. The delay is not cancellable by the operator once started.
func (f *Flow) Confirm() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateCollectingMethod {
		return fmt.Errorf("%w: flow is %s", domain.ErrInvalidInput, f.state)
	}
	f.state = StateContactingGateway
	f.after(f.mgr.delays.Gateway, func() {
		f.mu.Lock()
		f.state = StateAwaitingOutcome
		f.mu.Unlock()
	})
	return nil
}

// SelectOutcome records the chosen simulation outcome and begins the
// finalization delay after which the outcome is committed.
func (f *Flow) SelectOutcome(outcome Outcome) error {
	switch outcome {
	case OutcomeSuccess, OutcomeFailure, OutcomePending:
	default:
		return fmt.Errorf("%w: unknown outcome %q", domain.ErrInvalidInput, outcome)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateAwaitingOutcome {
		return fmt.Errorf("%w: flow is %s", domain.ErrInvalidInput, f.state)
	}
	f.state = StateFinalizing
	f.outcome = outcome
	f.after(f.mgr.delays.Finalize, func() {
		f.commit(outcome)
	})
	return nil
}

// commit applies the selected outcome. Runs on the finalize timer goroutine.
func (f *Flow) commit(outcome Outcome) {
	switch outcome {
	case OutcomeSuccess:
		// Generated outside the flow lock; the generator is bounded and
		// never fails, so this cannot block the commit indefinitely.
		msg := f.mgr.generator.Generate(f.ctx, f.Amount, f.DonorName)
		txn := "payu_test_" + randomRef(7)
		_, err := f.mgr.donations.UpdateStatus(f.ctx, f.DonationID, domain.DonationSuccess, domain.StatusPatch{
			TransactionID: &txn,
			ImpactMessage: &msg,
		})
		f.finishCommit(StateSucceeded, err, f.mgr.delays.Return)
	case OutcomeFailure:
		txn := "failed_" + randomRef(7)
		msg := declinedMessage
		_, err := f.mgr.donations.UpdateStatus(f.ctx, f.DonationID, domain.DonationFailed, domain.StatusPatch{
			TransactionID: &txn,
			ImpactMessage: &msg,
		})
		f.finishCommit(StateDeclined, err, f.mgr.delays.Return)
	case OutcomePending:
		// The donation record stays exactly as created.
		f.finishCommit(StateLeftPending, nil, f.mgr.delays.PendingReturn)
	}
}

// finishCommit records the terminal UI state and schedules the return to the
// initiating page. A repository failure means the donation vanished between
// creation and commit: unrecoverable here, so it is surfaced on the flow
// instead of being swallowed. The return timer runs either way, so a failed
// flow still retires instead of lingering in the manager until shutdown.
func (f *Flow) finishCommit(terminal State, err error, returnAfter time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.mgr.logger.Error().Err(err).Str("donation_id", f.DonationID).Msg("payment commit failed")
		f.err = err
		f.state = StateDeclined
	} else {
		f.state = terminal
	}
	f.after(returnAfter, func() {
		f.mu.Lock()
		f.returned = true
		f.mu.Unlock()
		f.mgr.retire(f.ID)
	})
}

// after runs fn once d elapses, unless the flow context is cancelled first.
func (f *Flow) after(d time.Duration, fn func()) {
	timer := time.NewTimer(d)
	go func() {
		defer timer.Stop()
		select {
		case <-timer.C:
			if f.ctx.Err() != nil {
				return
			}
			fn()
		case <-f.ctx.Done():
		}
	}()
}

// Abandon cancels any pending timers and retires the flow. The donation
// record is left as-is; an abandoned flow simply leaves it PENDING
// permanently.
func (f *Flow) Abandon() {
	f.cancel()
	f.mgr.retire(f.ID)
}

// Err reports the commit failure, if any. A non-nil error means the donation
// record vanished between creation and commit.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Snapshot returns the current view of the flow.
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := Snapshot{
		ID:         f.ID,
		DonationID: f.DonationID,
		Amount:     f.Amount,
		DonorName:  f.DonorName,
		State:      f.state,
		Outcome:    f.outcome,
		ReturnTo:   f.ReturnTo,
		Returned:   f.returned,
	}
	if f.err != nil {
		s.Error = f.err.Error()
	}
	return s
}
