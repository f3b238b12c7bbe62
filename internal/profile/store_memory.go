package profile

import (
	"context"
	"sync"

	"hask/pkg/platform/sentinel"
)

// InMemory keeps the registry in process memory. It favors clarity over
// performance; ledger round-trips dominate latency, so a whole-store mutex
// is acceptable and is never held across outbound calls.
type InMemory struct {
	mu        sync.RWMutex
	profiles  map[string]*Profile
	byHandle  map[string]string // handle -> username
	byAddress map[string]string // address -> username
	order     []string
}

var _ Store = (*InMemory)(nil)

func NewInMemory() *InMemory {
	return &InMemory{
		profiles:  make(map[string]*Profile),
		byHandle:  make(map[string]string),
		byAddress: make(map[string]string),
	}
}

func (s *InMemory) CreateIfHandleAvailable(_ context.Context, p *Profile) (*Profile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Handle uniqueness is checked first so re-registering an existing
	// username with someone else's handle still fails loudly.
	if owner, ok := s.byHandle[p.Handle]; ok && owner != p.Username {
		return nil, false, sentinel.ErrAlreadyUsed
	}
	if existing, ok := s.profiles[p.Username]; ok {
		return existing.clone(), false, nil
	}

	stored := p.clone()
	s.profiles[stored.Username] = stored
	s.byHandle[stored.Handle] = stored.Username
	s.order = append(s.order, stored.Username)
	return stored.clone(), true, nil
}

func (s *InMemory) FindByUsername(_ context.Context, username string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.profiles[username]; ok {
		return p.clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindByAddress(_ context.Context, address string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if username, ok := s.byAddress[address]; ok {
		return s.profiles[username].clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) List(_ context.Context) ([]*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Profile, 0, len(s.order))
	for _, username := range s.order {
		out = append(out, s.profiles[username].clone())
	}
	return out, nil
}

func (s *InMemory) HandleExists(_ context.Context, handle string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byHandle[handle]
	return ok, nil
}

func (s *InMemory) Execute(_ context.Context, username string, validate func(*Profile) error, apply func(*Profile)) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[username]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	apply(p)
	if p.Address != "" {
		s.byAddress[p.Address] = username
	}
	return p.clone(), nil
}
