package update_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dserrors "github.com/systmms/gwconfig/internal/errors"
	"github.com/systmms/gwconfig/internal/logging"
	"github.com/systmms/gwconfig/internal/metrics"
	"github.com/systmms/gwconfig/internal/update"
	"github.com/systmms/gwconfig/pkg/exec"
	"github.com/systmms/gwconfig/tests/fakes"
)

func TestTrigger_ApplyNowSuccess(t *testing.T) {
	var logBuf bytes.Buffer
	runner := &fakes.FakeRunner{Result: exec.Result{Stdout: []byte("container rebuilt\n")}}
	con := fakes.NewScriptedConsole("1")

	trigger := update.NewTrigger(runner, con, logging.New(&logBuf, false), update.WithMetrics(metrics.New()))
	outcome, err := trigger.Offer(context.Background())

	require.NoError(t, err)
	assert.Equal(t, update.Applied, outcome)
	require.Len(t, runner.Calls, 1)
	assert.Equal(t, update.DefaultScript, runner.Calls[0].Name)
	assert.Empty(t, runner.Calls[0].Args)
	assert.Contains(t, con.Said, "Update completed successfully.")
	assert.Contains(t, logBuf.String(), "container rebuilt")
}

func TestTrigger_ApplyNowFailure(t *testing.T) {
	var logBuf bytes.Buffer
	runner := &fakes.FakeRunner{
		Result: exec.Result{
			Stderr:   []byte("docker: image build failed at step 4\n"),
			Combined: []byte("docker: image build failed at step 4\n"),
			ExitCode: 1,
		},
		Err: errors.New("exit status 1"),
	}
	con := fakes.NewScriptedConsole("1")

	trigger := update.NewTrigger(runner, con, logging.New(&logBuf, false),
		update.WithScript("./scripts/rebuild.sh"),
		update.WithLogPath("/tmp/logs/config_update.log"),
	)
	outcome, err := trigger.Offer(context.Background())

	require.NoError(t, err, "script failure is recovered")
	assert.Equal(t, update.Failed, outcome)
	assert.Equal(t, "./scripts/rebuild.sh", runner.Calls[0].Name)

	// operator sees a generic notice only
	transcript := con.Transcript()
	assert.Contains(t, transcript, "An error occurred during the update")
	assert.Contains(t, transcript, "/tmp/logs/config_update.log")
	assert.NotContains(t, transcript, "image build failed")

	// the log keeps the details
	assert.Contains(t, logBuf.String(), "image build failed at step 4")
	assert.Contains(t, logBuf.String(), "exit code: 1")
	assert.Contains(t, logBuf.String(), "ERROR")
}

func TestTrigger_NextBuild(t *testing.T) {
	tests := []string{"2", "", "now", "yes"}

	for _, answer := range tests {
		t.Run(answer, func(t *testing.T) {
			var logBuf bytes.Buffer
			runner := &fakes.FakeRunner{}
			con := fakes.NewScriptedConsole(answer)

			outcome, err := update.NewTrigger(runner, con, logging.New(&logBuf, false)).Offer(context.Background())

			require.NoError(t, err)
			assert.Equal(t, update.Deferred, outcome)
			assert.Empty(t, runner.Calls)
			assert.Contains(t, con.Said, "Changes will be applied on next build.")
			assert.Contains(t, logBuf.String(), "next build")
		})
	}
}

func TestTrigger_ConsoleError(t *testing.T) {
	con := fakes.NewScriptedConsole()
	con.Err = errors.New("stdin closed")

	_, err := update.NewTrigger(&fakes.FakeRunner{}, con, logging.New(nil, false)).Offer(context.Background())
	assert.Error(t, err)
}

func TestTrigger_WithEmptyScriptKeepsDefault(t *testing.T) {
	runner := &fakes.FakeRunner{}
	trigger := update.NewTrigger(runner, fakes.NewScriptedConsole(), logging.New(nil, false), update.WithScript(""))

	_, err := trigger.Apply(context.Background())
	require.NoError(t, err)

	require.Len(t, runner.Calls, 1)
	assert.Equal(t, update.DefaultScript, runner.Calls[0].Name)
}

func TestTrigger_RedactsSecretsFromScriptOutput(t *testing.T) {
	secrets := func(ctx context.Context) ([]string, error) {
		return []string{"secret123", "tok-abcdef"}, nil
	}

	t.Run("failure output", func(t *testing.T) {
		var logBuf bytes.Buffer
		runner := &fakes.FakeRunner{
			Result: exec.Result{
				Combined: []byte("login failed for TWS_PASSWORD=secret123\n"),
				ExitCode: 1,
			},
			Err: errors.New("exit status 1"),
		}

		outcome, _ := update.NewTrigger(runner, fakes.NewScriptedConsole(), logging.New(&logBuf, false),
			update.WithSecrets(secrets)).Apply(context.Background())

		assert.Equal(t, update.Failed, outcome)
		assert.NotContains(t, logBuf.String(), "secret123")
		assert.Contains(t, logBuf.String(), "login failed for TWS_PASSWORD=[REDACTED]")
	})

	t.Run("success output", func(t *testing.T) {
		var logBuf bytes.Buffer
		runner := &fakes.FakeRunner{Result: exec.Result{
			Stdout: []byte("jupyter token tok-abcdef accepted\n"),
			Stderr: []byte("warning: secret123 echoed\n"),
		}}

		outcome, err := update.NewTrigger(runner, fakes.NewScriptedConsole(), logging.New(&logBuf, true),
			update.WithSecrets(secrets)).Apply(context.Background())

		require.NoError(t, err)
		assert.Equal(t, update.Applied, outcome)
		assert.Contains(t, logBuf.String(), "jupyter token [REDACTED] accepted")
		assert.NotContains(t, logBuf.String(), "tok-abcdef")
		assert.NotContains(t, logBuf.String(), "secret123")
	})

	t.Run("secrets unavailable", func(t *testing.T) {
		var logBuf bytes.Buffer
		runner := &fakes.FakeRunner{
			Result: exec.Result{Combined: []byte("password=secret123\n"), ExitCode: 1},
			Err:    errors.New("exit status 1"),
		}
		failing := func(ctx context.Context) ([]string, error) {
			return nil, errors.New("throttled")
		}

		outcome, _ := update.NewTrigger(runner, fakes.NewScriptedConsole(), logging.New(&logBuf, false),
			update.WithSecrets(failing)).Apply(context.Background())

		assert.Equal(t, update.Failed, outcome)
		assert.NotContains(t, logBuf.String(), "secret123")
		assert.Contains(t, logBuf.String(), "Script output withheld")
	})
}

func TestTrigger_ApplyReportsExitCode(t *testing.T) {
	runner := &fakes.FakeRunner{
		Result: exec.Result{ExitCode: 127},
		Err:    errors.New("exit status 127"),
	}

	outcome, err := update.NewTrigger(runner, fakes.NewScriptedConsole(), logging.New(nil, false),
		update.WithScript("./missing.sh")).Apply(context.Background())

	assert.Equal(t, update.Failed, outcome)
	var cmdErr dserrors.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "./missing.sh", cmdErr.Command)
	assert.Equal(t, 127, cmdErr.ExitCode)
	assert.EqualError(t, cmdErr.Err, "exit status 127")
}
