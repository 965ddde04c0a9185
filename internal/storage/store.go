package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

const (
	keyPrefix  = "cinetech_"
	bucketName = "cinetech"
)

// Store is the persistence contract every repository depends on. All
// keys are namespaced with a fixed prefix before hitting the backend.
//
// The contract deliberately has no error returns: Get reports absence
// for missing keys and for values that fail to deserialize, and Set
// drops writes that fail to persist. Failures are logged; callers must
// tolerate a write not sticking.
type Store interface {
	// Get deserializes the value at key into out and reports whether
	// a usable value was present.
	Get(key string, out interface{}) bool
	Set(key string, value interface{})
	Remove(key string)
	// ClearAll removes every key under the namespace prefix.
	ClearAll()
}

// BoltStore persists values as JSON inside a single bbolt bucket.
type BoltStore struct {
	db *bolt.DB
}

func Open(path string, mode os.FileMode) (*BoltStore, error) {
	db, err := bolt.Open(path, mode, nil)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(key string, out interface{}) bool {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketName)).Get([]byte(keyPrefix + key)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		log.WithFields(log.Fields{
			"key":   key,
			"error": err,
		}).Error("failed to read from store")
		return false
	}
	if raw == nil {
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

func (s *BoltStore) Set(key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.WithFields(log.Fields{
			"key":   key,
			"error": err,
		}).Error("failed to encode value for store")
		return
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(keyPrefix+key), raw)
	})
	if err != nil {
		log.WithFields(log.Fields{
			"key":   key,
			"error": err,
		}).Error("failed to write to store")
	}
}

func (s *BoltStore) Remove(key string) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(keyPrefix + key))
	})
	if err != nil {
		log.WithFields(log.Fields{
			"key":   key,
			"error": err,
		}).Error("failed to remove from store")
	}
}

func (s *BoltStore) ClearAll() {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		var keys [][]byte
		err := bucket.ForEach(func(k, _ []byte) error {
			if strings.HasPrefix(string(k), keyPrefix) {
				keys = append(keys, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.WithField("error", err).Error("failed to clear store")
	}
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
