// Package auth is a standalone credential-check utility backed by its
// own bolthold database. It shares nothing with the catalog.
package auth
