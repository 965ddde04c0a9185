package storage

import (
	"os"
	"reflect"
	"testing"

	bolt "go.etcd.io/bbolt"
)

func setupBoltStore(t *testing.T) *BoltStore {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "test_*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	tmpfile.Close()

	store, err := Open(tmpfile.Name(), 0666)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
		os.Remove(tmpfile.Name())
	})

	return store
}

type nested struct {
	Label  string             `json:"label"`
	Counts []int              `json:"counts"`
	Tags   map[string]float64 `json:"tags"`
}

func TestStoreRoundTrip(t *testing.T) {
	stores := map[string]Store{
		"bolt":   setupBoltStore(t),
		"memory": NewMemoryStore(),
	}

	want := nested{
		Label:  "catalog",
		Counts: []int{1, 2, 3},
		Tags:   map[string]float64{"drama": 7.5},
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			store.Set("roundtrip", want)

			var got nested
			if !store.Get("roundtrip", &got) {
				t.Fatal("Get() reported absent after Set()")
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Get() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestStoreAbsentKey(t *testing.T) {
	stores := map[string]Store{
		"bolt":   setupBoltStore(t),
		"memory": NewMemoryStore(),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			var out nested
			if store.Get("missing", &out) {
				t.Error("Get() reported present for a key never set")
			}
		})
	}
}

func TestStoreRemove(t *testing.T) {
	stores := map[string]Store{
		"bolt":   setupBoltStore(t),
		"memory": NewMemoryStore(),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			store.Set("gone", nested{Label: "x"})
			store.Remove("gone")

			var out nested
			if store.Get("gone", &out) {
				t.Error("Get() reported present after Remove()")
			}
		})
	}
}

func TestStoreClearAll(t *testing.T) {
	stores := map[string]Store{
		"bolt":   setupBoltStore(t),
		"memory": NewMemoryStore(),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			store.Set("a", 1)
			store.Set("b", 2)
			store.ClearAll()

			var out int
			if store.Get("a", &out) || store.Get("b", &out) {
				t.Error("Get() reported present after ClearAll()")
			}
		})
	}
}

func TestStoreCorruptValueDegradesToAbsent(t *testing.T) {
	store := setupBoltStore(t)

	err := store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(keyPrefix+"bad"), []byte("{not json"))
	})
	if err != nil {
		t.Fatalf("seeding corrupt value: %v", err)
	}

	var out nested
	if store.Get("bad", &out) {
		t.Error("Get() reported present for an undecodable value")
	}
}
