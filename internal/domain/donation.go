package domain

import "time"

// DonationStatus enumerates the lifecycle states of a donation record.
type DonationStatus string

const (
	DonationPending DonationStatus = "PENDING"
	DonationSuccess DonationStatus = "SUCCESS"
	DonationFailed  DonationStatus = "FAILED"
)

// Donation represents a supporter contribution record. UserName is a
// denormalized copy of the donor's display name at donation time and is not
// kept in sync with the user record afterwards.
type Donation struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	UserName      string         `json:"userName"`
	Amount        float64        `json:"amount"`
	Currency      string         `json:"currency"`
	Status        DonationStatus `json:"status"`
	Timestamp     time.Time      `json:"timestamp"`
	TransactionID string         `json:"transactionId,omitempty"`
	ImpactMessage string         `json:"impactMessage,omitempty"`
}

// StatusPatch carries the optional fields of a status transition. Nil members
// leave the previously stored value untouched, so a terminal transition can
// never accidentally clear a transaction reference or impact message.
type StatusPatch struct {
	TransactionID *string
	ImpactMessage *string
}
