// Package harness provides E2E testing utilities for apitester.
package harness

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/artpar/apitester/internal/testserver"
)

// E2EHarness is the main test orchestrator.
type E2EHarness struct {
	t         *testing.T
	server    *testserver.Server
	tmpDir    string
	goldenDir string
	timeout   time.Duration
}

// Config configures the harness.
type Config struct {
	Routes    map[string]http.HandlerFunc // Default: testserver.DemoAPI()
	GoldenDir string
	Timeout   time.Duration // Default: 5 seconds
}

// New creates a new E2E harness. The working directory and user config dir
// are moved to temp dirs so no real config file is picked up.
func New(t *testing.T, cfg Config) *E2EHarness {
	t.Helper()

	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Routes == nil {
		cfg.Routes = testserver.DemoAPI()
	}
	if cfg.GoldenDir != "" {
		abs, err := filepath.Abs(cfg.GoldenDir)
		if err != nil {
			t.Fatalf("failed to resolve golden dir: %v", err)
		}
		cfg.GoldenDir = abs
	}

	h := &E2EHarness{
		t:         t,
		goldenDir: cfg.GoldenDir,
		timeout:   cfg.Timeout,
		tmpDir:    t.TempDir(),
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(h.tmpDir)

	h.server = testserver.New(cfg.Routes)
	t.Cleanup(h.server.Close)
	return h
}

// ServerURL returns the test server URL.
func (h *E2EHarness) ServerURL() string {
	return h.server.URL
}

// Server returns the recording test server.
func (h *E2EHarness) Server() *testserver.Server {
	return h.server
}

// TmpDir returns the temporary working directory.
func (h *E2EHarness) TmpDir() string {
	return h.tmpDir
}

// Timeout returns the configured timeout.
func (h *E2EHarness) Timeout() time.Duration {
	return h.timeout
}

// T returns the testing.T instance.
func (h *E2EHarness) T() *testing.T {
	return h.t
}

// CLI returns a CLI runner for this harness.
func (h *E2EHarness) CLI() *CLIRunner {
	return &CLIRunner{harness: h}
}

// TUI returns a TUI runner for this harness.
func (h *E2EHarness) TUI() *TUIRunner {
	return &TUIRunner{harness: h}
}

// Golden returns a golden file manager for this harness.
func (h *E2EHarness) Golden() *GoldenManager {
	return NewGoldenManager(h.goldenDir)
}
