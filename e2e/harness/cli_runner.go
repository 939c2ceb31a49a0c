package harness

import (
	"bytes"
	"context"
	"time"

	"github.com/artpar/apitester/internal/cli"
)

// CLIResult holds CLI execution results.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// CLIRunner executes CLI commands in-process.
type CLIRunner struct {
	harness *E2EHarness
}

// Run executes a CLI command with the given arguments.
func (r *CLIRunner) Run(args ...string) (*CLIResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.harness.timeout)
	defer cancel()
	return r.RunContext(ctx, args...)
}

// RunContext executes a CLI command until it returns or ctx is done.
func (r *CLIRunner) RunContext(ctx context.Context, args ...string) (*CLIResult, error) {
	start := time.Now()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := cli.NewRootCommand("test")
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)

	result := &CLIResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err != nil {
		result.ExitCode = 1
	}

	return result, err
}

// Send runs the send command against the harness server.
func (r *CLIRunner) Send(method, path string, opts ...string) (*CLIResult, error) {
	args := []string{"send", "--base-url", r.harness.ServerURL(), method, path}
	args = append(args, opts...)
	return r.Run(args...)
}

// SendWithBody sends a request with a body.
func (r *CLIRunner) SendWithBody(method, path, body string) (*CLIResult, error) {
	return r.Send(method, path, "--body", body)
}

// Endpoints lists the catalog, optionally for one method.
func (r *CLIRunner) Endpoints(method ...string) (*CLIResult, error) {
	return r.Run(append([]string{"endpoints"}, method...)...)
}

// Status runs one health check against the harness server.
func (r *CLIRunner) Status(opts ...string) (*CLIResult, error) {
	args := []string{"status", "--base-url", r.harness.ServerURL()}
	return r.Run(append(args, opts...)...)
}
