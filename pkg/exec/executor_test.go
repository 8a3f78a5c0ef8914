package exec

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "update.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestCommandRunner_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		script       string
		wantSuccess  bool
		wantExitCode int
		wantStdout   string
		wantStderr   string
	}{
		{
			name:         "stdout only",
			script:       "echo updated\n",
			wantSuccess:  true,
			wantExitCode: 0,
			wantStdout:   "updated\n",
		},
		{
			name:         "stdout and stderr",
			script:       "echo out\necho err 1>&2\n",
			wantSuccess:  true,
			wantExitCode: 0,
			wantStdout:   "out\n",
			wantStderr:   "err\n",
		},
		{
			name:         "non-zero exit",
			script:       "echo docker build failed 1>&2\nexit 3\n",
			wantSuccess:  false,
			wantExitCode: 3,
			wantStderr:   "docker build failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			runner := &CommandRunner{}
			result, err := runner.Run(context.Background(), writeScript(t, tt.script))

			if tt.wantSuccess {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
			assert.Equal(t, tt.wantExitCode, result.ExitCode)
			assert.Equal(t, tt.wantStdout, string(result.Stdout))
			assert.Equal(t, tt.wantStderr, string(result.Stderr))
			assert.Len(t, result.Combined, len(result.Stdout)+len(result.Stderr))
		})
	}
}

func TestCommandRunner_MissingCommand(t *testing.T) {
	t.Parallel()

	result, err := DefaultRunner().Run(context.Background(), "./nonexistent_update_script_xyz123.sh")

	require.Error(t, err)
	assert.Equal(t, -1, result.ExitCode)
}

func TestCommandRunner_Dir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "update.sh"), []byte("#!/bin/sh\npwd\n"), 0o755))

	runner := &CommandRunner{Dir: dir}
	result, err := runner.Run(context.Background(), "./update.sh")
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Contains(t, string(result.Stdout), filepath.Base(resolved))
}
