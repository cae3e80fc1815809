package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ngoconnect/internal/domain"
	"ngoconnect/internal/store"
)

const donationsKey = "ngo_donations"

// defaultCurrency labels every donation record; amounts are fixed at
// creation and the label is immutable.
const defaultCurrency = "USD"

// DonationRepositoryKV implements domain.DonationRepository on top of the KV
// store using full-collection read-modify-write cycles.
type DonationRepositoryKV struct {
	kv *store.KV
	mu sync.Mutex
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(kv *store.KV) *DonationRepositoryKV {
	return &DonationRepositoryKV{kv: kv}
}

// List returns all donations in insertion order.
func (r *DonationRepositoryKV) List(ctx context.Context) ([]domain.Donation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Create appends a new PENDING donation. Amount validation is the caller's
// responsibility.
func (r *DonationRepositoryKV) Create(ctx context.Context, userID, userName string, amount float64) (*domain.Donation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	donations, err := r.load()
	if err != nil {
		return nil, err
	}
	donation := domain.Donation{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserName:  userName,
		Amount:    amount,
		Currency:  defaultCurrency,
		Status:    domain.DonationPending,
		Timestamp: time.Now().UTC(),
	}
	donations = append(donations, donation)
	if err := r.save(donations); err != nil {
		return nil, err
	}
	return &donation, nil
}

// UpdateStatus performs a terminal transition on the donation with the given
// id. Patch members left nil retain the previously stored values, so a
// transition can never clear an already-set transaction id or impact message.
// Returns domain.ErrNotFound when the id is unknown; the collection is left
// untouched in that case.
func (r *DonationRepositoryKV) UpdateStatus(ctx context.Context, id string, status domain.DonationStatus, patch domain.StatusPatch) (*domain.Donation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	donations, err := r.load()
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range donations {
		if donations[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, domain.ErrNotFound
	}
	donations[idx].Status = status
	if patch.TransactionID != nil {
		donations[idx].TransactionID = *patch.TransactionID
	}
	if patch.ImpactMessage != nil {
		donations[idx].ImpactMessage = *patch.ImpactMessage
	}
	if err := r.save(donations); err != nil {
		return nil, err
	}
	updated := donations[idx]
	return &updated, nil
}

// ListByUser returns the donations of one user sorted by timestamp
// descending; most recent first is the only ordering contract.
func (r *DonationRepositoryKV) ListByUser(ctx context.Context, userID string) ([]domain.Donation, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var items []domain.Donation
	for _, d := range all {
		if d.UserID == userID {
			items = append(items, d)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	return items, nil
}

func (r *DonationRepositoryKV) load() ([]domain.Donation, error) {
	raw, ok, err := r.kv.Get(donationsKey)
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []domain.Donation{}, nil
	}
	var donations []domain.Donation
	if err := json.Unmarshal([]byte(raw), &donations); err != nil {
		return nil, fmt.Errorf("repo: decode donations: %w", err)
	}
	return donations, nil
}

func (r *DonationRepositoryKV) save(donations []domain.Donation) error {
	raw, err := json.Marshal(donations)
	if err != nil {
		return fmt.Errorf("repo: encode donations: %w", err)
	}
	return r.kv.Set(donationsKey, string(raw))
}

var _ domain.DonationRepository = (*DonationRepositoryKV)(nil)
