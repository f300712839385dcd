// Package config loads release-metrics settings from defaults, an optional
// config file, a .env file, the environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/newrelic/nrdot-release-metrics/internal/domain-adapters/gateways"
)

// Sink names
const (
	SinkNewRelic = "newrelic"
	SinkStdout   = "stdout"
	SinkTextfile = "textfile"
)

// Metric API regions
const (
	RegionUS = "us"
	RegionEU = "eu"
)

const maxPerPage = 100

// Config holds all configuration for release-metrics
type Config struct {
	DistributionsDir string    `mapstructure:"distributions_dir"`
	Repository       string    `mapstructure:"repository"`
	PerPage          int       `mapstructure:"per_page"`
	GitHub           GitHub    `mapstructure:"github"`
	NewRelic         NewRelic  `mapstructure:"newrelic"`
	Sink             string    `mapstructure:"sink"`
	TextfilePath     string    `mapstructure:"textfile_path"`
	Log              LogConfig `mapstructure:"log"`
}

// GitHub holds the release source settings
type GitHub struct {
	Token  string `mapstructure:"token"`
	APIURL string `mapstructure:"api_url"`
}

// NewRelic holds the Metric API settings
type NewRelic struct {
	LicenseKey string `mapstructure:"license_key"`
	Region     string `mapstructure:"region"`
	MetricsURL string `mapstructure:"metrics_url"` // overrides Region when set
}

// LogConfig holds logging options
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var defaultConfig = Config{
	DistributionsDir: "distributions",
	PerPage:          50,
	GitHub: GitHub{
		APIURL: gateways.DefaultGitHubAPIURL,
	},
	NewRelic: NewRelic{
		Region: RegionUS,
	},
	Sink: SinkNewRelic,
	Log: LogConfig{
		Level:  "info",
		Format: "console",
	},
}

// Defaults returns the built-in settings, used for flag defaults
func Defaults() Config {
	return defaultConfig
}

// New returns a viper instance with defaults and environment bindings.
// Callers bind their flags on it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("distributions_dir", defaultConfig.DistributionsDir)
	v.SetDefault("repository", "")
	v.SetDefault("per_page", defaultConfig.PerPage)
	v.SetDefault("github.token", "")
	v.SetDefault("github.api_url", defaultConfig.GitHub.APIURL)
	v.SetDefault("newrelic.license_key", "")
	v.SetDefault("newrelic.region", defaultConfig.NewRelic.Region)
	v.SetDefault("newrelic.metrics_url", "")
	v.SetDefault("sink", defaultConfig.Sink)
	v.SetDefault("textfile_path", "")
	v.SetDefault("log.level", defaultConfig.Log.Level)
	v.SetDefault("log.format", defaultConfig.Log.Format)

	// Variables provided by GitHub Actions and the workflow secrets
	_ = v.BindEnv("repository", "RELEASE_METRICS_REPOSITORY", "GITHUB_REPOSITORY")
	_ = v.BindEnv("github.token", "RELEASE_METRICS_GITHUB_TOKEN", "GITHUB_TOKEN")
	_ = v.BindEnv("github.api_url", "RELEASE_METRICS_GITHUB_API_URL", "GITHUB_API_URL")
	_ = v.BindEnv("newrelic.license_key", "RELEASE_METRICS_NEWRELIC_LICENSE_KEY", "NEW_RELIC_LICENSE_KEY")
	_ = v.BindEnv("log.level", "RELEASE_METRICS_LOG_LEVEL", "LOG_LEVEL")

	v.SetEnvPrefix("RELEASE_METRICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadDotEnv loads variables from a .env file without overriding the
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads the optional config file and unmarshals the layered settings
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Sink = strings.ToLower(strings.TrimSpace(cfg.Sink))
	cfg.NewRelic.Region = strings.ToLower(strings.TrimSpace(cfg.NewRelic.Region))

	return &cfg, nil
}

// MetricsEndpoint returns the Metric API URL for the configured region
func (c *Config) MetricsEndpoint() string {
	if c.NewRelic.MetricsURL != "" {
		return c.NewRelic.MetricsURL
	}
	if c.NewRelic.Region == RegionEU {
		return gateways.NewRelicMetricAPIURLEU
	}
	return gateways.NewRelicMetricAPIURL
}

// ValidateCollect checks the settings the collect command depends on
func (c *Config) ValidateCollect() error {
	var errs []error

	if c.Repository == "" {
		errs = append(errs, errors.New("repository is not set (use --repository or GITHUB_REPOSITORY)"))
	}
	if c.PerPage < 1 || c.PerPage > maxPerPage {
		errs = append(errs, fmt.Errorf("per_page must be between 1 and %d, got %d", maxPerPage, c.PerPage))
	}

	switch c.Sink {
	case SinkNewRelic:
		if c.NewRelic.LicenseKey == "" {
			errs = append(errs, errors.New("license key is not set (NEW_RELIC_LICENSE_KEY)"))
		}
		if c.NewRelic.Region != RegionUS && c.NewRelic.Region != RegionEU {
			errs = append(errs, fmt.Errorf("unknown region %q (want us or eu)", c.NewRelic.Region))
		}
	case SinkStdout:
	case SinkTextfile:
		if c.TextfilePath == "" {
			errs = append(errs, errors.New("textfile_path is required for the textfile sink"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown sink %q (want newrelic, stdout or textfile)", c.Sink))
	}

	return errors.Join(errs...)
}
