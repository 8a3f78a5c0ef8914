package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/systmms/gwconfig/internal/catalog"
	"github.com/systmms/gwconfig/internal/config"
	"github.com/systmms/gwconfig/internal/console"
	dserrors "github.com/systmms/gwconfig/internal/errors"
	"github.com/systmms/gwconfig/internal/logging"
	"github.com/systmms/gwconfig/internal/metrics"
	"github.com/systmms/gwconfig/internal/store"
	"github.com/systmms/gwconfig/internal/update"
	"github.com/systmms/gwconfig/pkg/exec"
)

// runtime holds what a command needs for one run
type runtime struct {
	cfg      *config.Config
	logger   *logging.Logger
	logPath  string
	runLog   *logging.RunLog
	metrics  *metrics.Recorder
	textfile string
}

// newRuntime sets up logging and metrics. With runLog set a fresh log file
// is opened unless the config already carries a logger.
func newRuntime(cmd *cobra.Command, cfg *config.Config, runLog bool) (*runtime, error) {
	s := cfg.Settings
	rt := &runtime{
		cfg:      cfg,
		metrics:  metrics.New(),
		textfile: s.MetricsTextfile,
	}

	switch {
	case cfg.Logger != nil:
		rt.logger = cfg.Logger
	case runLog:
		rl, err := logging.OpenRunLog(s.LogDir, time.Now(), s.Debug)
		if err != nil {
			return nil, dserrors.UserError{
				Message:    "Failed to open the run log",
				Details:    err.Error(),
				Suggestion: "Check that the log directory is writable or set --log-dir",
				Err:        err,
			}
		}
		rt.runLog = rl
		rt.logger = rl.Logger
		rt.logPath = rl.Path
	default:
		rt.logger = logging.New(cmd.ErrOrStderr(), s.Debug)
	}

	return rt, nil
}

// close writes the metrics textfile, if configured, and closes the run log
func (rt *runtime) close() {
	if err := rt.metrics.WriteTextfile(rt.textfile, time.Now()); err != nil {
		rt.logger.Warn("Failed to write metrics textfile %s: %v", rt.textfile, err)
	}
	if err := rt.runLog.Close(); err != nil {
		rt.logger.Warn("Failed to close run log: %v", err)
	}
}

// catalog returns the built-in catalog extended by the configured file
func (rt *runtime) catalog() (*catalog.Catalog, error) {
	s := rt.cfg.Settings
	namespace := s.Namespace
	if namespace == "" {
		namespace = catalog.DefaultNamespace
	}

	cat := catalog.NewGateway(namespace)
	if s.Catalog != "" {
		n, err := cat.LoadFile(s.Catalog)
		if err != nil {
			return nil, err
		}
		rt.logger.Info("Loaded %d parameter definitions from %s", n, s.Catalog)
	}
	return cat, nil
}

// store returns the configured store, connecting to SSM when none is set
func (rt *runtime) store(ctx context.Context) (store.Store, error) {
	if rt.cfg.Store != nil {
		return rt.cfg.Store, nil
	}

	s := rt.cfg.Settings
	rt.logger.Debug("Connecting to SSM in %s", s.Region)
	ssmStore, err := store.NewSSMStoreFromConfig(ctx, s.AWS(), store.WithLogger(rt.logger))
	if err != nil {
		return nil, dserrors.UserError{
			Message:    "Failed to configure AWS access",
			Details:    err.Error(),
			Suggestion: "Check --region, --profile and your AWS credentials",
			Err:        err,
		}
	}
	return ssmStore, nil
}

// console returns the configured console or one bound to the command's streams
func (rt *runtime) console(cmd *cobra.Command) console.Console {
	if rt.cfg.Console != nil {
		return rt.cfg.Console
	}
	return console.NewLine(cmd.InOrStdin(), cmd.OutOrStdout())
}

// trigger builds the update trigger for the configured script. Script output
// is scrubbed of the values returned by secrets.
func (rt *runtime) trigger(con console.Console, secrets update.SecretSource) *update.Trigger {
	runner := rt.cfg.Runner
	if runner == nil {
		runner = exec.DefaultRunner()
	}
	return update.NewTrigger(runner, con, rt.logger,
		update.WithScript(rt.cfg.Settings.UpdateScript),
		update.WithLogPath(rt.logPath),
		update.WithMetrics(rt.metrics),
		update.WithSecrets(secrets),
	)
}
