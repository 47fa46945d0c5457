package leads

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for lead storage
type Repository interface {
	// Create allocates a new empty lead with a store-assigned identifier.
	Create(ctx context.Context) (*Lead, error)
	// GetByID retrieves a lead and its full history.
	GetByID(ctx context.Context, id string) (*Lead, error)
	// Save persists the lead's attributes and any turns appended since
	// the last save. Already-persisted turns are left untouched.
	Save(ctx context.Context, lead *Lead) error
}

// InMemoryRepository is a Repository backed by an in-process map. It is
// the default store for development and tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	leads map[string]*Lead
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		leads: make(map[string]*Lead),
	}
}

// Create allocates a new lead in memory
func (r *InMemoryRepository) Create(ctx context.Context) (*Lead, error) {
	lead := &Lead{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.leads[lead.ID] = lead.Clone()
	r.mu.Unlock()

	return lead, nil
}

// GetByID retrieves a lead by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}

	return lead.Clone(), nil
}

// Save stores the lead snapshot. Concurrent saves for the same lead are
// last write wins; callers needing strict ordering serialize externally.
func (r *InMemoryRepository) Save(ctx context.Context, lead *Lead) error {
	if lead == nil || lead.ID == "" {
		return ErrMissingID
	}

	r.mu.Lock()
	r.leads[lead.ID] = lead.Clone()
	r.mu.Unlock()

	return nil
}
