package export

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"ngoconnect/internal/domain"
)

// DailyTotal is one bar of the last-active-days chart: successful donation
// volume aggregated per calendar day.
type DailyTotal struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// DashboardStats aggregates the donation collection for the admin overview.
type DashboardStats struct {
	TotalRaised        float64      `json:"totalRaised"`
	TotalRaisedDisplay string       `json:"totalRaisedDisplay"`
	SuccessCount       int          `json:"successCount"`
	PendingCount       int          `json:"pendingCount"`
	FailedCount        int          `json:"failedCount"`
	Daily              []DailyTotal `json:"daily"`
}

const maxDailyBuckets = 7

var amountPrinter = message.NewPrinter(language.English)

// BuildStats computes the overview aggregates. Only SUCCESS donations count
// toward the raised total and the daily series; the series keeps the last
// seven days that saw any successful donation.
func BuildStats(donations []domain.Donation) DashboardStats {
	stats := DashboardStats{}
	var daily []DailyTotal
	index := map[string]int{}
	for _, d := range donations {
		switch d.Status {
		case domain.DonationSuccess:
			stats.SuccessCount++
			stats.TotalRaised += d.Amount
			day := d.Timestamp.Format("2006-01-02")
			if i, ok := index[day]; ok {
				daily[i].Amount += d.Amount
			} else {
				index[day] = len(daily)
				daily = append(daily, DailyTotal{Date: day, Amount: d.Amount})
			}
		case domain.DonationPending:
			stats.PendingCount++
		case domain.DonationFailed:
			stats.FailedCount++
		}
	}
	if len(daily) > maxDailyBuckets {
		daily = daily[len(daily)-maxDailyBuckets:]
	}
	stats.Daily = daily
	stats.TotalRaisedDisplay = "₹" + amountPrinter.Sprint(number.Decimal(stats.TotalRaised))
	return stats
}
