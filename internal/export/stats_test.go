package export

import (
	"testing"
	"time"

	"ngoconnect/internal/domain"
)

func donationAt(status domain.DonationStatus, amount float64, day int) domain.Donation {
	return domain.Donation{
		ID:        "d",
		UserID:    "u",
		Amount:    amount,
		Status:    status,
		Timestamp: time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildStatsCountsAndTotal(t *testing.T) {
	stats := BuildStats([]domain.Donation{
		donationAt(domain.DonationSuccess, 1000, 1),
		donationAt(domain.DonationSuccess, 300, 1),
		donationAt(domain.DonationPending, 50, 2),
		donationAt(domain.DonationFailed, 75, 3),
	})
	if stats.TotalRaised != 1300 {
		t.Fatalf("TotalRaised = %v, want 1300", stats.TotalRaised)
	}
	if stats.TotalRaisedDisplay != "₹1,300" {
		t.Fatalf("TotalRaisedDisplay = %q, want ₹1,300", stats.TotalRaisedDisplay)
	}
	if stats.SuccessCount != 2 || stats.PendingCount != 1 || stats.FailedCount != 1 {
		t.Fatalf("counts = (%d, %d, %d), want (2, 1, 1)", stats.SuccessCount, stats.PendingCount, stats.FailedCount)
	}
	if len(stats.Daily) != 1 {
		t.Fatalf("len(Daily) = %d, want 1", len(stats.Daily))
	}
	if stats.Daily[0].Amount != 1300 {
		t.Fatalf("Daily[0].Amount = %v, want 1300", stats.Daily[0].Amount)
	}
}

func TestBuildStatsKeepsLastSevenActiveDays(t *testing.T) {
	var donations []domain.Donation
	for day := 1; day <= 10; day++ {
		donations = append(donations, donationAt(domain.DonationSuccess, float64(day), day))
	}
	stats := BuildStats(donations)
	if len(stats.Daily) != 7 {
		t.Fatalf("len(Daily) = %d, want 7", len(stats.Daily))
	}
	if stats.Daily[0].Date != "2024-03-04" || stats.Daily[6].Date != "2024-03-10" {
		t.Fatalf("Daily window = [%s .. %s], want [2024-03-04 .. 2024-03-10]", stats.Daily[0].Date, stats.Daily[6].Date)
	}
}

func TestBuildStatsEmpty(t *testing.T) {
	stats := BuildStats(nil)
	if stats.TotalRaised != 0 || len(stats.Daily) != 0 {
		t.Fatalf("empty stats = %+v", stats)
	}
	if stats.TotalRaisedDisplay != "₹0" {
		t.Fatalf("TotalRaisedDisplay = %q, want ₹0", stats.TotalRaisedDisplay)
	}
}
