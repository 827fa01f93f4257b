// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/request-desk/models"
)

// MemoryStore keeps records and the admin account in process memory.
// Contents are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.Record
	order   []string
	admins  map[string]models.Admin
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]models.Record),
		admins:  make(map[string]models.Admin),
	}
}

func (m *MemoryStore) Create(ctx context.Context, f models.RecordFields, attachment string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	now := time.Now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	for _, exists := m.records[id]; exists; _, exists = m.records[id] {
		id = uuid.NewString()
	}
	m.records[id] = models.Record{
		ID:           id,
		RecordFields: f,
		Attachment:   attachment,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.order = append(m.order, id)
	return id, nil
}

func (m *MemoryStore) ListAll(ctx context.Context) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]models.Record, 0, len(m.order))
	for _, id := range m.order {
		records = append(records, m.records[id])
	}
	return records, nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (models.Record, error) {
	if err := ctx.Err(); err != nil {
		return models.Record{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[id]
	if !ok {
		return models.Record{}, ErrNotFound
	}
	return r, nil
}

func (m *MemoryStore) UpdateByID(ctx context.Context, id string, f models.RecordFields, attachment string) (models.Record, error) {
	if err := ctx.Err(); err != nil {
		return models.Record{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.records[id]
	if !ok {
		return models.Record{}, ErrNotFound
	}
	r.RecordFields = f
	r.Attachment = attachment
	r.UpdatedAt = time.Now().UTC()
	m.records[id] = r
	return r, nil
}

func (m *MemoryStore) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryStore) UpsertAdmin(ctx context.Context, a models.Admin) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.admins[a.Username]; ok {
		existing.PasswordHash = a.PasswordHash
		m.admins[a.Username] = existing
		return nil
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	m.admins[a.Username] = a
	return nil
}

func (m *MemoryStore) FindAdmin(ctx context.Context, username string) (models.Admin, error) {
	if err := ctx.Err(); err != nil {
		return models.Admin{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.admins[username]
	if !ok {
		return models.Admin{}, ErrAdminNotFound
	}
	return a, nil
}
