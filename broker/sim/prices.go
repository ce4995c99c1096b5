package sim

import (
	"fmt"
	"sync"

	"github.com/newsfx/trader/broker"
)

// PriceStore keeps the latest quote per pair.
type PriceStore struct {
	mu     sync.RWMutex
	quotes map[string]broker.Price
}

func NewPriceStore() *PriceStore {
	return &PriceStore{quotes: make(map[string]broker.Price)}
}

func (s *PriceStore) Set(p broker.Price) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[p.Pair] = p
}

func (s *PriceStore) Get(pair string) (broker.Price, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.quotes[pair]
	if !ok {
		return broker.Price{}, fmt.Errorf("no price for %q", pair)
	}
	return p, nil
}

// Pairs returns the set of pairs with at least one quote.
func (s *PriceStore) Pairs() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(s.quotes))
	for pair := range s.quotes {
		out[pair] = true
	}
	return out
}
