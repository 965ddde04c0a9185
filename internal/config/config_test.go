package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		setup   func()
		cleanup func()
		check   func(t *testing.T, cfg *Config)
		wantErr bool
	}{
		{
			name:    "defaults with no environment",
			setup:   func() {},
			cleanup: func() {},
			check: func(t *testing.T, cfg *Config) {
				if cfg.DataDir != defaultDataDir {
					t.Errorf("DataDir = %q, want %q", cfg.DataDir, defaultDataDir)
				}
				if cfg.TVMazeBaseURL != defaultTVMazeBaseURL {
					t.Errorf("TVMazeBaseURL = %q, want %q", cfg.TVMazeBaseURL, defaultTVMazeBaseURL)
				}
				if cfg.HTTPTimeout != defaultHTTPTimeout {
					t.Errorf("HTTPTimeout = %v, want %v", cfg.HTTPTimeout, defaultHTTPTimeout)
				}
			},
		},
		{
			name: "environment overrides",
			setup: func() {
				os.Setenv("DATA_DIR", "/tmp/cinetech")
				os.Setenv("SERVER_PORT", "127.0.0.1:8080")
				os.Setenv("HTTP_TIMEOUT", "5s")
			},
			cleanup: func() {
				os.Unsetenv("DATA_DIR")
				os.Unsetenv("SERVER_PORT")
				os.Unsetenv("HTTP_TIMEOUT")
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.DataDir != "/tmp/cinetech" {
					t.Errorf("DataDir = %q, want /tmp/cinetech", cfg.DataDir)
				}
				if cfg.ServerPort != "127.0.0.1:8080" {
					t.Errorf("ServerPort = %q, want 127.0.0.1:8080", cfg.ServerPort)
				}
				if cfg.HTTPTimeout != 5*time.Second {
					t.Errorf("HTTPTimeout = %v, want 5s", cfg.HTTPTimeout)
				}
			},
		},
		{
			name: "invalid timeout",
			setup: func() {
				os.Setenv("HTTP_TIMEOUT", "not-a-duration")
			},
			cleanup: func() {
				os.Unsetenv("HTTP_TIMEOUT")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.cleanup()

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestConfigPaths(t *testing.T) {
	cfg := &Config{DataDir: "/data"}
	if got := cfg.DBPath(); got != "/data/catalog.db" {
		t.Errorf("DBPath() = %q", got)
	}
	if got := cfg.AuthDBPath(); got != "/data/users.db" {
		t.Errorf("AuthDBPath() = %q", got)
	}
}
