package domain

import "context"

// UserRepository defines access methods for users. Implementations are the
// only permitted mutators of the users collection.
type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, name, email, password string) (*User, error)
	EnsureAdmin(ctx context.Context) error
}

// DonationRepository handles donation persistence. Donations are never
// deleted; the only mutation after creation is a status transition.
type DonationRepository interface {
	List(ctx context.Context) ([]Donation, error)
	Create(ctx context.Context, userID, userName string, amount float64) (*Donation, error)
	UpdateStatus(ctx context.Context, id string, status DonationStatus, patch StatusPatch) (*Donation, error)
	ListByUser(ctx context.Context, userID string) ([]Donation, error)
}
