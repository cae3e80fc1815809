package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"ngoconnect/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestCreateDonationPending(t *testing.T) {
	r := NewDonationRepository(newKV(t))
	ctx := context.Background()

	before := time.Now().UTC()
	donation, err := r.Create(ctx, "user-1", "Jane", 100)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if donation.Status != domain.DonationPending {
		t.Fatalf("Status = %q, want %q", donation.Status, domain.DonationPending)
	}
	if donation.Amount != 100 {
		t.Fatalf("Amount = %v, want 100", donation.Amount)
	}
	if donation.Currency != "USD" {
		t.Fatalf("Currency = %q, want USD", donation.Currency)
	}
	if donation.Timestamp.Before(before) {
		t.Fatalf("Timestamp %v earlier than call time %v", donation.Timestamp, before)
	}
	if donation.TransactionID != "" || donation.ImpactMessage != "" {
		t.Fatalf("fresh donation carries terminal fields: %+v", donation)
	}
}

func TestUpdateStatusPreservesUnsuppliedFields(t *testing.T) {
	r := NewDonationRepository(newKV(t))
	ctx := context.Background()

	donation, err := r.Create(ctx, "user-1", "Jane", 50)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := r.UpdateStatus(ctx, donation.ID, domain.DonationSuccess, domain.StatusPatch{
		TransactionID: strPtr("txn-123"),
		ImpactMessage: strPtr("Impact message"),
	}); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	// A later status-only patch must not clear the terminal fields.
	updated, err := r.UpdateStatus(ctx, donation.ID, domain.DonationFailed, domain.StatusPatch{})
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.TransactionID != "txn-123" {
		t.Fatalf("TransactionID = %q, want preserved %q", updated.TransactionID, "txn-123")
	}
	if updated.ImpactMessage != "Impact message" {
		t.Fatalf("ImpactMessage = %q, want preserved %q", updated.ImpactMessage, "Impact message")
	}
	if updated.Status != domain.DonationFailed {
		t.Fatalf("Status = %q, want %q", updated.Status, domain.DonationFailed)
	}
}

func TestUpdateStatusUnknownID(t *testing.T) {
	r := NewDonationRepository(newKV(t))
	ctx := context.Background()

	if _, err := r.Create(ctx, "user-1", "Jane", 25); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := r.UpdateStatus(ctx, "missing", domain.DonationSuccess, domain.StatusPatch{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("UpdateStatus err = %v, want ErrNotFound", err)
	}

	donations, err := r.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(donations) != 1 || donations[0].Status != domain.DonationPending {
		t.Fatalf("collection changed by failed update: %+v", donations)
	}
}

func TestListByUserDescendingTimestamp(t *testing.T) {
	r := NewDonationRepository(newKV(t))
	ctx := context.Background()

	first, err := r.Create(ctx, "user-1", "Jane", 10)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	second, err := r.Create(ctx, "user-1", "Jane", 30)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := r.Create(ctx, "user-2", "Bob", 99); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Pin distinct timestamps so the ordering contract is observable.
	donations, err := r.load()
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	day := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range donations {
		switch donations[i].ID {
		case first.ID:
			donations[i].Timestamp = day.Add(10 * time.Hour)
		case second.ID:
			donations[i].Timestamp = day.Add(12 * time.Hour)
		}
	}
	if err := r.save(donations); err != nil {
		t.Fatalf("save returned error: %v", err)
	}

	items, err := r.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Amount != 30 || items[1].Amount != 10 {
		t.Fatalf("amounts = [%v, %v], want [30, 10]", items[0].Amount, items[1].Amount)
	}
}
