// Package config handles application configuration loading.
//
// Configuration is loaded from environment variables with sensible
// defaults for every value; the application runs with no environment
// at all.
package config
