package catalog

import (
	"context"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory template catalog for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]storedTemplate
	closed bool
}

type storedTemplate struct {
	id        string
	text      string
	updatedAt time.Time
}

// NewMemoryStore creates a new in-memory template catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]storedTemplate),
	}
}

// Put implements Store.
func (m *MemoryStore) Put(_ context.Context, name, template string) (Info, error) {
	if err := validateName(name); err != nil {
		return Info{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Info{}, ErrStoreClosed
	}

	id := uuid.New().String()
	if existing, ok := m.data[name]; ok {
		id = existing.id
	}

	st := storedTemplate{
		id:        id,
		text:      template,
		updatedAt: time.Now().UTC(),
	}
	m.data[name] = st

	return st.info(name), nil
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", ErrStoreClosed
	}

	st, ok := m.data[name]
	if !ok {
		return "", ErrNotFound
	}
	return st.text, nil
}

// List implements Store.
func (m *MemoryStore) List(_ context.Context) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.data))
	for name, st := range m.data {
		infos = append(infos, st.info(name))
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})

	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, name)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the number of stored templates.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (st storedTemplate) info(name string) Info {
	return Info{
		ID:        st.id,
		Name:      name,
		Size:      int64(len(st.text)),
		Runes:     utf8.RuneCountInString(st.text),
		UpdatedAt: st.updatedAt,
	}
}
