// Package storage provides the key-value store adapter and the
// repository implementations built on top of it.
//
// Each collection is stored as a single JSON array under one
// namespaced key; every read deserializes a fresh copy and every write
// replaces the whole collection atomically. The store is the single
// source of truth: no repository caches state between calls.
package storage
