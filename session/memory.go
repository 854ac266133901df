package session

import (
	"sync"
	"time"
)

// Memory is an in-process Backend for tests and single-node demo runs.
type Memory struct {
	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Time
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}, expires: map[string]time.Time{}, now: time.Now}
}

func (m *Memory) Set(key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	if ttl > 0 {
		m.expires[key] = m.now().Add(ttl)
	} else {
		delete(m.expires, key)
	}
	return nil
}

func (m *Memory) get(key string) (string, bool) {
	v, ok := m.values[key]
	if !ok {
		return "", false
	}
	if exp, ok := m.expires[key]; ok && !m.now().Before(exp) {
		delete(m.values, key)
		delete(m.expires, key)
		return "", false
	}
	return v, true
}

func (m *Memory) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.get(key)
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Take(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.get(key)
	if !ok {
		return "", ErrNotFound
	}
	delete(m.values, key)
	delete(m.expires, key)
	return v, nil
}

func (m *Memory) Del(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	delete(m.expires, key)
	return nil
}

// Raw returns the stored value as the backend holds it, without unsealing.
func (m *Memory) Raw(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}
