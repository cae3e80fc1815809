package payment

import (
	"context"
	"fmt"

	"ngoconnect/internal/domain"
)

// Annotations stored on manually transitioned donations.
const (
	manualVerifiedMessage = "Manually verified by Admin"
	manualRejectedMessage = "Manually rejected by Admin"
)

// requirePending rejects a manual transition unless the donation is still
// PENDING. Terminal statuses are final: a donation receives at most one
// terminal outcome, so an already verified or rejected record can never be
// flipped to the other side.
func requirePending(ctx context.Context, donations domain.DonationRepository, donationID string) error {
	all, err := donations.List(ctx)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == donationID {
			if all[i].Status != domain.DonationPending {
				return fmt.Errorf("%w: donation is already %s", domain.ErrInvalidInput, all[i].Status)
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

// ManualVerify transitions a PENDING donation straight to SUCCESS, bypassing
// the simulated gateway. The transaction reference is prefixed distinctly
// from the gateway path so the origin of the transition stays visible.
// Explicit operator confirmation is required by the calling surface before
// this runs.
func ManualVerify(ctx context.Context, donations domain.DonationRepository, donationID string) (*domain.Donation, error) {
	if err := requirePending(ctx, donations, donationID); err != nil {
		return nil, err
	}
	txn := "manual_verify_" + randomRef(9)
	msg := manualVerifiedMessage
	return donations.UpdateStatus(ctx, donationID, domain.DonationSuccess, domain.StatusPatch{
		TransactionID: &txn,
		ImpactMessage: &msg,
	})
}

// ManualReject transitions a PENDING donation straight to FAILED with the
// rejection annotation.
func ManualReject(ctx context.Context, donations domain.DonationRepository, donationID string) (*domain.Donation, error) {
	if err := requirePending(ctx, donations, donationID); err != nil {
		return nil, err
	}
	txn := "manual_reject_" + randomRef(9)
	msg := manualRejectedMessage
	return donations.UpdateStatus(ctx, donationID, domain.DonationFailed, domain.StatusPatch{
		TransactionID: &txn,
		ImpactMessage: &msg,
	})
}

// ManualTransition dispatches on the requested terminal status.
func ManualTransition(ctx context.Context, donations domain.DonationRepository, donationID string, status domain.DonationStatus) (*domain.Donation, error) {
	switch status {
	case domain.DonationSuccess:
		return ManualVerify(ctx, donations, donationID)
	case domain.DonationFailed:
		return ManualReject(ctx, donations, donationID)
	default:
		return nil, fmt.Errorf("%w: status %q is not a manual transition target", domain.ErrInvalidInput, status)
	}
}
