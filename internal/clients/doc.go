// Package clients wraps the external APIs cinetech talks to and maps
// their wire formats onto domain types.
package clients
