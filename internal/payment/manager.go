package payment

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ngoconnect/internal/domain"
)

// MessageGenerator is the impact-message contract the flow depends on. It
// always resolves to a string within a bounded time and never fails.
type MessageGenerator interface {
	Generate(ctx context.Context, amount float64, donorName string) string
}

// Delays holds the fixed durations of the simulated gateway interaction.
type Delays struct {
	Gateway       time.Duration // contacting the simulated bank
	Finalize      time.Duration // committing the selected outcome
	Return        time.Duration // terminal display before returning
	PendingReturn time.Duration // display for the left-pending outcome
}

// DefaultDelays mirrors the timings of the original gateway mock.
func DefaultDelays() Delays {
	return Delays{
		Gateway:       2 * time.Second,
		Finalize:      1500 * time.Millisecond,
		Return:        2 * time.Second,
		PendingReturn: 3 * time.Second,
	}
}

// FlowRequest carries the in-flight donation context supplied by the
// initiating page.
type FlowRequest struct {
	DonationID string
	Amount     float64
	DonorName  string
	ReturnTo   string
}

// Manager tracks in-flight payment flows. One flow exclusively owns its
// donation id for its lifetime; donation ids are never reused.
type Manager struct {
	donations domain.DonationRepository
	generator MessageGenerator
	logger    zerolog.Logger
	delays    Delays

	mu    sync.Mutex
	flows map[string]*Flow
}

// NewManager wires a flow manager. Zero-valued delay members fall back to the
// defaults, which keeps tests free to shorten only what they exercise.
func NewManager(donations domain.DonationRepository, generator MessageGenerator, logger zerolog.Logger, delays Delays) *Manager {
	def := DefaultDelays()
	if delays.Gateway <= 0 {
		delays.Gateway = def.Gateway
	}
	if delays.Finalize <= 0 {
		delays.Finalize = def.Finalize
	}
	if delays.Return <= 0 {
		delays.Return = def.Return
	}
	if delays.PendingReturn <= 0 {
		delays.PendingReturn = def.PendingReturn
	}
	return &Manager{
		donations: donations,
		generator: generator,
		logger:    logger,
		delays:    delays,
		flows:     make(map[string]*Flow),
	}
}

// Start opens a new flow in the collecting_method state. A request without a
// valid donation context is rejected immediately; there is no recovery path
// for an orphaned payment session.
func (m *Manager) Start(req FlowRequest) (*Flow, error) {
	if strings.TrimSpace(req.DonationID) == "" || strings.TrimSpace(req.DonorName) == "" || req.Amount <= 0 {
		return nil, fmt.Errorf("%w: missing donation context", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithCancel(context.Background())
	f := &Flow{
		ID:         uuid.NewString(),
		DonationID: req.DonationID,
		Amount:     req.Amount,
		DonorName:  req.DonorName,
		ReturnTo:   req.ReturnTo,
		mgr:        m,
		ctx:        ctx,
		cancel:     cancel,
		state:      StateCollectingMethod,
	}
	m.mu.Lock()
	m.flows[f.ID] = f
	m.mu.Unlock()
	m.logger.Info().Str("flow_id", f.ID).Str("donation_id", f.DonationID).Msg("payment flow started")
	return f, nil
}

// Get looks up an in-flight flow by id.
func (m *Manager) Get(id string) (*Flow, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.flows[id]
	return f, ok
}

// Shutdown cancels every in-flight flow. Donation records already committed
// keep their terminal status; uncommitted ones remain PENDING.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	flows := make([]*Flow, 0, len(m.flows))
	for _, f := range m.flows {
		flows = append(flows, f)
	}
	m.flows = make(map[string]*Flow)
	m.mu.Unlock()
	for _, f := range flows {
		f.cancel()
	}
}

// retire drops a finished flow from the index.
func (m *Manager) retire(id string) {
	m.mu.Lock()
	delete(m.flows, id)
	m.mu.Unlock()
}
