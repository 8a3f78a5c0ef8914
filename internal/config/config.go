package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/systmms/gwconfig/internal/catalog"
	"github.com/systmms/gwconfig/internal/console"
	dserrors "github.com/systmms/gwconfig/internal/errors"
	"github.com/systmms/gwconfig/internal/logging"
	"github.com/systmms/gwconfig/internal/store"
	"github.com/systmms/gwconfig/internal/update"
	"github.com/systmms/gwconfig/pkg/exec"
)

// EnvPrefix prefixes every environment variable read by gwconfig
const EnvPrefix = "GWCONFIG"

// Config holds the runtime configuration
type Config struct {
	// Path is the settings file given with --config; empty means the
	// optional default file
	Path     string
	Logger   *logging.Logger
	Settings Settings

	// Collaborators. Production implementations are used when nil.
	Store   store.Store
	Console console.Console
	Runner  exec.Runner
}

// Settings are the tunables read from flags, environment and settings file
type Settings struct {
	Region          string `mapstructure:"region"`
	Profile         string `mapstructure:"profile"`
	AssumeRole      string `mapstructure:"assume_role"`
	EndpointURL     string `mapstructure:"endpoint_url"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Namespace       string `mapstructure:"namespace"`
	UpdateScript    string `mapstructure:"update_script"`
	LogDir          string `mapstructure:"log_dir"`
	Catalog         string `mapstructure:"catalog"`
	MetricsTextfile string `mapstructure:"metrics_textfile"`
	Debug           bool   `mapstructure:"debug"`
}

// AWS returns the settings used to reach SSM
func (s Settings) AWS() store.AWSConfig {
	return store.AWSConfig{
		Region:      s.Region,
		Profile:     s.Profile,
		AssumeRole:  s.AssumeRole,
		EndpointURL: s.EndpointURL,

		AccessKeyID:     s.AccessKeyID,
		SecretAccessKey: s.SecretAccessKey,
	}
}

// Validate checks settings that would otherwise fail late
func (s Settings) Validate() error {
	if !strings.HasPrefix(s.Namespace, "/") || !strings.HasSuffix(s.Namespace, "/") {
		return dserrors.ConfigError{
			Field:      "namespace",
			Value:      s.Namespace,
			Message:    "namespace must start and end with '/'",
			Suggestion: "Use a path prefix such as " + catalog.DefaultNamespace,
		}
	}
	if (s.AccessKeyID == "") != (s.SecretAccessKey == "") {
		return dserrors.ConfigError{
			Field:      "access_key_id",
			Message:    "access_key_id and secret_access_key must be set together",
			Suggestion: "Set both GWCONFIG_ACCESS_KEY_ID and GWCONFIG_SECRET_ACCESS_KEY, or neither",
		}
	}
	if s.UpdateScript == "" {
		return dserrors.ConfigError{
			Field:      "update_script",
			Message:    "update script path is empty",
			Suggestion: "Remove the setting to use " + update.DefaultScript,
		}
	}
	return nil
}

// DefaultPath returns the optional settings file in the home directory
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gwconfig.yaml")
}

// NewViper returns a viper instance with gwconfig defaults and environment
// binding. Flags are bound by the caller.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("region", "us-east-1")
	v.SetDefault("profile", "")
	v.SetDefault("assume_role", "")
	v.SetDefault("endpoint_url", "")
	// static keys have no flags; set them in the environment or settings file
	v.SetDefault("access_key_id", "")
	v.SetDefault("secret_access_key", "")
	v.SetDefault("namespace", catalog.DefaultNamespace)
	v.SetDefault("update_script", update.DefaultScript)
	v.SetDefault("log_dir", logging.DefaultLogDir())
	v.SetDefault("catalog", "")
	v.SetDefault("metrics_textfile", "")
	v.SetDefault("debug", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the settings file, if any, and decodes all layers into
// c.Settings. A missing file is only an error when it was named explicitly.
func (c *Config) Load(v *viper.Viper) error {
	path := c.Path
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
			switch {
			case missing && explicit:
				return dserrors.ConfigError{
					Field:      "config",
					Value:      path,
					Message:    "settings file not found",
					Suggestion: "Check the --config path",
				}
			case !missing:
				return dserrors.ConfigError{
					Field:      "config",
					Value:      path,
					Message:    "invalid settings file: " + err.Error(),
					Suggestion: "Check for indentation errors, missing quotes, or invalid characters",
				}
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return dserrors.UserError{
			Message: "Failed to decode settings",
			Details: err.Error(),
			Err:     err,
		}
	}
	if err := s.Validate(); err != nil {
		return err
	}

	c.Settings = s
	return nil
}
