// Package update applies changed parameters to the running gateway by
// invoking the external update script.
package update

import (
	"context"
	"strings"

	"github.com/systmms/gwconfig/internal/console"
	dserrors "github.com/systmms/gwconfig/internal/errors"
	"github.com/systmms/gwconfig/internal/logging"
	"github.com/systmms/gwconfig/internal/metrics"
	"github.com/systmms/gwconfig/pkg/exec"
)

// DefaultScript is the update script path, relative to the working directory
const DefaultScript = "./update_ib_gateway.sh"

// Outcome is what happened to the pending changes
type Outcome string

const (
	// Deferred means the changes are picked up by the next build
	Deferred Outcome = "deferred"
	// Applied means the update script succeeded
	Applied Outcome = "applied"
	// Failed means the update script failed
	Failed Outcome = "failed"
)

// Trigger offers to apply changes immediately
type Trigger struct {
	script  string
	runner  exec.Runner
	console console.Console
	logger  *logging.Logger
	metrics *metrics.Recorder
	// logPath is mentioned to the operator when the script fails
	logPath string
	secrets SecretSource
}

// SecretSource returns the values to scrub from captured script output
type SecretSource func(ctx context.Context) ([]string, error)

// Option configures a Trigger
type Option func(*Trigger)

// WithScript overrides the update script path
func WithScript(path string) Option {
	return func(t *Trigger) {
		if path != "" {
			t.script = path
		}
	}
}

// WithLogPath sets the log file path shown on failure
func WithLogPath(path string) Option {
	return func(t *Trigger) {
		t.logPath = path
	}
}

// WithMetrics sets the metrics recorder
func WithMetrics(rec *metrics.Recorder) Option {
	return func(t *Trigger) {
		t.metrics = rec
	}
}

// WithSecrets sets the source of values redacted from script output
func WithSecrets(src SecretSource) Option {
	return func(t *Trigger) {
		t.secrets = src
	}
}

// NewTrigger creates a Trigger using runner for the script
func NewTrigger(runner exec.Runner, con console.Console, logger *logging.Logger, opts ...Option) *Trigger {
	t := &Trigger{
		script:  DefaultScript,
		runner:  runner,
		console: con,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Offer asks whether to apply now or on the next build and acts on the
// answer. Script failures are reported, not returned.
func (t *Trigger) Offer(ctx context.Context) (Outcome, error) {
	choice, err := t.console.Ask("Changes were made. Do you want to update 1) straight away or 2) next build? (1/2): ")
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(choice) != "1" {
		t.logger.Info("Changes will be applied on next build")
		t.metrics.UpdateRun(metrics.UpdateDeferred)
		t.console.Say("Changes will be applied on next build.")
		return Deferred, nil
	}

	t.console.Say("Updating straight away...")
	outcome, _ := t.Apply(ctx)
	return outcome, nil
}

// Apply runs the update script synchronously. The captured output goes to
// the log with known secrets redacted; the operator only sees whether it
// worked. On failure the returned error is a CommandError carrying the exit
// code.
func (t *Trigger) Apply(ctx context.Context) (Outcome, error) {
	t.logger.Info("Running update script %s", t.script)

	result, err := t.runner.Run(ctx, t.script)
	redact, withhold := t.redactor(ctx)

	if err != nil {
		cmdErr := dserrors.CommandError{
			Command:  t.script,
			ExitCode: result.ExitCode,
			Message:  err.Error(),
			Err:      err,
		}
		t.logger.Error("Update failed: %v", cmdErr)
		if out := strings.TrimSpace(string(result.Combined)); out != "" && !withhold {
			t.logger.Error("Update script output:\n%s", redact(out))
		}
		t.metrics.UpdateRun(metrics.UpdateFailure)

		if t.logPath != "" {
			t.console.Say("An error occurred during the update. Check the log file for details: %s", t.logPath)
		} else {
			t.console.Say("An error occurred during the update. Check the log file for details.")
		}
		return Failed, cmdErr
	}

	if !withhold {
		t.logger.Info("Update completed successfully. Output:\n%s", redact(strings.TrimSpace(string(result.Stdout))))
		if stderr := strings.TrimSpace(string(result.Stderr)); stderr != "" {
			t.logger.Debug("Update script stderr: %s", redact(stderr))
		}
	} else {
		t.logger.Info("Update completed successfully")
	}
	t.metrics.UpdateRun(metrics.UpdateSuccess)
	t.console.Say("Update completed successfully.")
	return Applied, nil
}

// redactor returns the scrubbing function for script output. When the
// secret values cannot be read the output is withheld from the log.
func (t *Trigger) redactor(ctx context.Context) (func(string) string, bool) {
	if t.secrets == nil {
		return func(s string) string { return s }, false
	}
	secrets, err := t.secrets(ctx)
	if err != nil {
		t.logger.Warn("Script output withheld, sensitive values could not be read: %v", err)
		return nil, true
	}
	return func(s string) string { return logging.Redact(s, secrets) }, false
}
