// Package memory is an in-process storage.Gateway. Records live only as long
// as the Store.
package memory

import (
	"context"
	"errors"
	"sync"

	"fintrack/internal/core"
)

// ErrWriteFailed is returned by every write while write failures are injected.
var ErrWriteFailed = errors.New("memory store: write failed")

type Store struct {
	mu           sync.Mutex
	seed         []core.Category
	cats         []core.Category
	catsStored   bool
	transactions []core.Transaction
	budgets      []core.Budget
	failWrites   bool
}

// New returns an empty store; nil seed means core.DefaultCategories.
func New(seed []core.Category) *Store {
	if seed == nil {
		seed = core.DefaultCategories()
	}
	return &Store{seed: seed}
}

// FailWrites makes subsequent writes fail (true) or succeed (false).
func (s *Store) FailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites = fail
}

func (s *Store) Initialize(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catsStored {
		return nil
	}
	if s.failWrites {
		return ErrWriteFailed
	}
	s.cats = append([]core.Category(nil), s.seed...)
	s.catsStored = true
	return nil
}

func (s *Store) Transactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...), nil
}

func (s *Store) SaveTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return ErrWriteFailed
	}
	s.transactions = append(s.transactions, t)
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return ErrWriteFailed
	}
	kept := s.transactions[:0:0]
	for _, t := range s.transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.transactions = kept
	return nil
}

// Categories falls back to the seed set until categories are stored.
func (s *Store) Categories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.catsStored {
		return append([]core.Category(nil), s.seed...), nil
	}
	return append([]core.Category(nil), s.cats...), nil
}

func (s *Store) SaveCategory(_ context.Context, c core.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return ErrWriteFailed
	}
	if !s.catsStored {
		s.cats = append([]core.Category(nil), s.seed...)
		s.catsStored = true
	}
	s.cats = append(s.cats, c)
	return nil
}

func (s *Store) Budgets(_ context.Context) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Budget(nil), s.budgets...), nil
}

func (s *Store) SaveBudget(_ context.Context, b core.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return ErrWriteFailed
	}
	s.budgets = core.UpsertBudget(s.budgets, b)
	return nil
}

func (s *Store) DeleteBudget(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return ErrWriteFailed
	}
	kept := s.budgets[:0:0]
	for _, b := range s.budgets {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.budgets = kept
	return nil
}

func (s *Store) Close() error { return nil }
