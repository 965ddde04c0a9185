package storage

import (
	"encoding/json"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// MemoryStore is an in-memory Store used as a test double. Values are
// kept serialized so round-trip semantics match BoltStore exactly.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string, out interface{}) bool {
	s.mu.RLock()
	raw, ok := s.data[keyPrefix+key]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		log.WithFields(log.Fields{
			"key":   key,
			"error": err,
		}).Error("failed to decode stored value")
		return false
	}
	return true
}

func (s *MemoryStore) Set(key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.WithFields(log.Fields{
			"key":   key,
			"error": err,
		}).Error("failed to encode value for store")
		return
	}

	s.mu.Lock()
	s.data[keyPrefix+key] = raw
	s.mu.Unlock()
}

func (s *MemoryStore) Remove(key string) {
	s.mu.Lock()
	delete(s.data, keyPrefix+key)
	s.mu.Unlock()
}

func (s *MemoryStore) ClearAll() {
	s.mu.Lock()
	for k := range s.data {
		if strings.HasPrefix(k, keyPrefix) {
			delete(s.data, k)
		}
	}
	s.mu.Unlock()
}
