package app

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/boorusync/internal/cmd/application"
	"github.com/agentstation/boorusync/internal/runlock"
	"github.com/agentstation/boorusync/pkg/constants"
	"github.com/agentstation/boorusync/pkg/errors"
)

// EnvPrefix prefixes every environment variable boorusync reads,
// e.g. BOORUSYNC_BAKABOORU_API.
const EnvPrefix = "BOORUSYNC"

// Config holds the global CLI configuration. Migration settings are
// resolved separately through application.Settings.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// NewViper returns a configuration store with .env files loaded, the
// environment bound and every default set.
func NewViper() *viper.Viper {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// SetDefaults registers the default value of every configuration key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(application.KeyBakabooruAPI, constants.DefaultBakabooruAPI)
	v.SetDefault(application.KeyOxibooruAPI, constants.DefaultOxibooruAPI)
	v.SetDefault(application.KeyPageSize, constants.DefaultPageSize)
	v.SetDefault(application.KeyStartPage, constants.DefaultStartPage)
	v.SetDefault(application.KeyMaxPosts, 0)
	v.SetDefault(application.KeyMaxSimilarDistance, constants.DefaultMaxSimilarDistance)
	v.SetDefault(application.KeyDryRun, false)
	v.SetDefault(application.KeyFailFast, false)
	v.SetDefault(application.KeyTimeout, constants.DefaultHTTPTimeout.String())
	v.SetDefault(application.KeyDJXLPath, constants.DefaultDJXLPath)
	v.SetDefault(application.KeyLockDir, runlock.DefaultDir())

	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
	v.SetDefault("format", "")
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied in setupCommand)
// 2. Environment variables (BOORUSYNC_*)
// 3. .env files
// 4. Config file (~/.boorusync.yaml or ./.boorusync.yaml)
// 5. Defaults
func LoadConfig(v *viper.Viper) (*Config, error) {
	if err := readConfigFile(v, ""); err != nil {
		return nil, err
	}
	return configFromViper(v), nil
}

// configFromViper builds a Config from the resolved values in v.
func configFromViper(v *viper.Viper) *Config {
	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}
}

// readConfigFile reads path, or searches the standard locations when path
// is empty. A missing file is only an error when it was named explicitly.
func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errors.NewConfigError("config file", "cannot read "+path, err)
		}
		return nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName("." + constants.AppName)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) {
			return nil
		}
		return errors.NewConfigError("config file", "cannot parse "+v.ConfigFileUsed(), err)
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
