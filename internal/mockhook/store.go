package mockhook

import (
	"sync"
	"time"
)

// Delivery summarizes one request the mock hook received.
type Delivery struct {
	ID          string           `json:"id"`
	ReceivedAt  time.Time        `json:"received_at"`
	ContentType string           `json:"content_type"`
	Bytes       int64            `json:"bytes"`
	Records     int              `json:"records,omitempty"`
	Fields      []string         `json:"fields,omitempty"`
	Files       map[string]int64 `json:"files,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// Store keeps deliveries for the life of the process.
type Store struct {
	mu         sync.RWMutex
	deliveries []Delivery
}

func NewStore() *Store {
	return &Store{deliveries: make([]Delivery, 0, 32)}
}

func (s *Store) Add(d Delivery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ReceivedAt.IsZero() {
		d.ReceivedAt = time.Now().UTC()
	}
	s.deliveries = append(s.deliveries, d)
}

// List returns a copy, oldest first.
func (s *Store) List() []Delivery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Delivery, len(s.deliveries))
	copy(out, s.deliveries)
	return out
}
