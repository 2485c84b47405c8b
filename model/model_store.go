package model

import (
	"context"
	"sync"
)

/*
Store is an interface to manage a cache of models keyed by their
canonical hash, the structure an optimal-tree search uses to detect
that two independently built subtrees induce the same row partition
and can share cached results.

All its methods take a context that may allow cancelling the operation
(thus forcing the return of an error) if the implementation allows it.
*/
type Store interface {
	// Lookup takes a model and returns the stored model equal to
	// it (or nil if there is none) or an error if the store cannot
	// be queried. Hash collisions are resolved by full equality,
	// so the returned model, if any, induces exactly the same
	// partition as the argument.
	Lookup(ctx context.Context, m Model) (Model, error)
	// Add takes a model and stores it under its hash unless an
	// equal model is already stored. It returns an error if the
	// model cannot be stored.
	Add(ctx context.Context, m Model) error
	// Close closes the store, implementations should free any
	// resources in use as well as ensure any pending changes are
	// applied before returning (unless the context expires). It
	// returns an error if the Close cannot be completed (because
	// of the context or another error)
	Close(ctx context.Context) error
}

type memoryStore struct {
	models map[uint64][]Model
	lock   *sync.RWMutex
}

// NewMemoryStore returns an implementation of Store with the process
// memory space as underlying backend
func NewMemoryStore() Store {
	return &memoryStore{
		models: make(map[uint64][]Model),
		lock:   &sync.RWMutex{},
	}
}

func (ms *memoryStore) Lookup(ctx context.Context, m Model) (Model, error) {
	var found Model
	err := ms.withRLock(ctx, func(ctx context.Context) error {
		for _, candidate := range ms.models[m.Hash()] {
			if m.Equal(candidate) {
				found = candidate
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (ms *memoryStore) Add(ctx context.Context, m Model) error {
	return ms.withLock(ctx, func(ctx context.Context) error {
		hash := m.Hash()
		for _, candidate := range ms.models[hash] {
			if m.Equal(candidate) {
				return nil
			}
		}
		ms.models[hash] = append(ms.models[hash], m)
		return nil
	})
}

func (ms *memoryStore) Close(ctx context.Context) error {
	return nil
}

func (ms *memoryStore) withLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		ms.lock.Lock()
		select {
		case <-ctx.Done():
			ms.lock.Unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.Unlock()
	}
	return f(ctx)
}

func (ms *memoryStore) withRLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		ms.lock.RLock()
		select {
		case <-ctx.Done():
			ms.lock.RUnlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.RUnlock()
	}
	return f(ctx)
}
