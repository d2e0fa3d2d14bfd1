package store

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

type Memory struct {
	mu   sync.RWMutex
	docs map[string]Document
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]Document)}
}

func (m *Memory) Put(_ context.Context, d Document) error {
	if d.ID == "" {
		return errors.New("document id is empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[d.ID] = d
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.docs[id]
	if !ok {
		return Document{}, errors.Wrapf(ErrNotFound, "id %s", id)
	}
	return d, nil
}

func (m *Memory) GetMany(_ context.Context, ids []string) (map[string]Document, error) {
	if err := checkBatch(ids); err != nil {
		return nil, err
	}
	res := make(map[string]Document)
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range ids {
		if d, ok := m.docs[id]; ok {
			res[id] = d
		}
	}
	return res, nil
}
