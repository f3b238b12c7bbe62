package notification

import (
	"context"
	"sync"

	"hask/pkg/platform/sentinel"
)

// InMemory keeps notification queues in process memory. The id counter
// shares the queue lock, so ids are globally unique and strictly increasing
// without a separate atomic.
type InMemory struct {
	mu     sync.RWMutex
	queues map[string][]*Notification
	nextID uint64
}

var _ Store = (*InMemory)(nil)

func NewInMemory() *InMemory {
	return &InMemory{
		queues: make(map[string][]*Notification),
		nextID: 1,
	}
}

func (s *InMemory) File(_ context.Context, n *Notification) (Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *n
	stored.ID = s.nextID
	s.nextID++
	s.queues[stored.To] = append(s.queues[stored.To], &stored)
	return stored, nil
}

func (s *InMemory) ListFor(_ context.Context, recipient string) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	queue := s.queues[recipient]
	out := make([]Notification, 0, len(queue))
	for _, n := range queue {
		out = append(out, *n)
	}
	return out, nil
}

func (s *InMemory) Find(_ context.Context, recipient string, id uint64) (Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n := s.locate(recipient, id); n != nil {
		return *n, nil
	}
	return Notification{}, sentinel.ErrNotFound
}

func (s *InMemory) Execute(_ context.Context, recipient string, id uint64, validate func(*Notification) error, apply func(*Notification)) (Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.locate(recipient, id)
	if n == nil {
		return Notification{}, sentinel.ErrNotFound
	}
	if err := validate(n); err != nil {
		return Notification{}, err
	}
	apply(n)
	return *n, nil
}

// locate scans the recipient queue by id. Callers hold s.mu.
func (s *InMemory) locate(recipient string, id uint64) *Notification {
	for _, n := range s.queues[recipient] {
		if n.ID == id {
			return n
		}
	}
	return nil
}
