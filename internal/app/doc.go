// Package app wires configuration, storage, services and the HTTP
// surface together and owns the process lifecycle.
package app
