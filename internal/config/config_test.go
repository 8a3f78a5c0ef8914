package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dserrors "github.com/systmms/gwconfig/internal/errors"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gwconfig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := &Config{}
	require.NoError(t, cfg.Load(NewViper()))

	s := cfg.Settings
	assert.Equal(t, "us-east-1", s.Region)
	assert.Equal(t, "/IB_Gateway/", s.Namespace)
	assert.Equal(t, "./update_ib_gateway.sh", s.UpdateScript)
	assert.NotEmpty(t, s.LogDir)
	assert.False(t, s.Debug)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeSettings(t, `region: eu-west-1
profile: trading
assume_role: arn:aws:iam::123456789012:role/gateway-config
namespace: /Paper_Gateway/
update_script: ./scripts/rebuild.sh
metrics_textfile: /var/lib/node_exporter/gwconfig.prom
debug: true
`)

	cfg := &Config{Path: path}
	require.NoError(t, cfg.Load(NewViper()))

	s := cfg.Settings
	assert.Equal(t, "eu-west-1", s.Region)
	assert.Equal(t, "trading", s.Profile)
	assert.Equal(t, "/Paper_Gateway/", s.Namespace)
	assert.Equal(t, "./scripts/rebuild.sh", s.UpdateScript)
	assert.Equal(t, "/var/lib/node_exporter/gwconfig.prom", s.MetricsTextfile)
	assert.True(t, s.Debug)

	aws := s.AWS()
	assert.Equal(t, "eu-west-1", aws.Region)
	assert.Equal(t, "arn:aws:iam::123456789012:role/gateway-config", aws.AssumeRole)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GWCONFIG_REGION", "ap-southeast-2")

	path := writeSettings(t, "region: eu-west-1\n")

	cfg := &Config{Path: path}
	require.NoError(t, cfg.Load(NewViper()))
	assert.Equal(t, "ap-southeast-2", cfg.Settings.Region)
}

func TestLoad_StaticCredentialsFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GWCONFIG_ENDPOINT_URL", "http://localhost:4566")
	t.Setenv("GWCONFIG_ACCESS_KEY_ID", "test")
	t.Setenv("GWCONFIG_SECRET_ACCESS_KEY", "test-secret")

	cfg := &Config{}
	require.NoError(t, cfg.Load(NewViper()))

	aws := cfg.Settings.AWS()
	assert.Equal(t, "http://localhost:4566", aws.EndpointURL)
	assert.Equal(t, "test", aws.AccessKeyID)
	assert.Equal(t, "test-secret", aws.SecretAccessKey)
}

func TestLoad_DefaultFileInHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".gwconfig.yaml"), []byte("profile: home\n"), 0o644))

	cfg := &Config{}
	require.NoError(t, cfg.Load(NewViper()))
	assert.Equal(t, "home", cfg.Settings.Profile)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "explicit file missing",
			path: filepath.Join(t.TempDir(), "missing.yaml"),
			want: "settings file not found",
		},
		{
			name: "invalid yaml",
			path: writeSettings(t, "region: [\n"),
			want: "invalid settings file",
		},
		{
			name: "bad namespace",
			path: writeSettings(t, "namespace: IB_Gateway\n"),
			want: "namespace must start and end with '/'",
		},
		{
			name: "access key without secret",
			path: writeSettings(t, "access_key_id: test\n"),
			want: "access_key_id and secret_access_key must be set together",
		},
		{
			name: "empty update script",
			path: writeSettings(t, "update_script: \"\"\n"),
			want: "update script path is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Path: tt.path}
			err := cfg.Load(NewViper())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			var cfgErr dserrors.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}
