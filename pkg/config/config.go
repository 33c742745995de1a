package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/marmos91/neutronctl/pkg/apiclient"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the neutronctl configuration.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority, applied by the root command)
//  2. The current credential context (login)
//  3. Environment variables (NEUTRONCTL_*)
//  4. OpenStack environment variables (OS_*), for unset cloud fields
//  5. Configuration file (YAML)
//  6. Default values (lowest priority)
type Config struct {
	// Cloud describes how to reach Keystone and the network service
	Cloud CloudConfig `mapstructure:"cloud" yaml:"cloud"`

	// Output controls how results are rendered
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Telemetry controls OpenTelemetry distributed tracing
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`

	// Metrics controls the Prometheus textfile written on exit
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// CloudConfig holds Keystone v3 credentials and endpoint selection.
type CloudConfig struct {
	// AuthURL is the Keystone endpoint, e.g. https://keystone.example.com:5000/v3
	AuthURL string `mapstructure:"auth_url" validate:"omitempty,url" yaml:"auth_url,omitempty"`

	// Region selects the network endpoint from the service catalog
	Region string `mapstructure:"region" yaml:"region,omitempty"`

	// Interface is the endpoint interface: public, internal or admin
	Interface string `mapstructure:"interface" validate:"omitempty,oneof=public internal admin" yaml:"interface"`

	Username       string `mapstructure:"username" yaml:"username,omitempty"`
	UserID         string `mapstructure:"user_id" yaml:"user_id,omitempty"`
	UserDomainName string `mapstructure:"user_domain_name" yaml:"user_domain_name,omitempty"`
	UserDomainID   string `mapstructure:"user_domain_id" yaml:"user_domain_id,omitempty"`

	// Password is read from the environment or a prompt and never saved.
	Password string `json:"-" mapstructure:"password" yaml:"-"`

	ProjectName       string `mapstructure:"project_name" yaml:"project_name,omitempty"`
	ProjectID         string `mapstructure:"project_id" yaml:"project_id,omitempty"`
	ProjectDomainName string `mapstructure:"project_domain_name" yaml:"project_domain_name,omitempty"`
	ProjectDomainID   string `mapstructure:"project_domain_id" yaml:"project_domain_id,omitempty"`

	ApplicationCredentialID     string `mapstructure:"application_credential_id" yaml:"application_credential_id,omitempty"`
	ApplicationCredentialName   string `mapstructure:"application_credential_name" yaml:"application_credential_name,omitempty"`
	ApplicationCredentialSecret string `json:"-" mapstructure:"application_credential_secret" yaml:"-"`

	// Token with Endpoint bypasses Keystone. Endpoint alone replaces the
	// network endpoint found in the catalog.
	Token    string `json:"-" mapstructure:"token" yaml:"-"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url" yaml:"endpoint,omitempty"`

	// Insecure disables TLS certificate verification
	Insecure bool `mapstructure:"insecure" yaml:"insecure"`

	// Timeout bounds every HTTP request
	// Default: 60s
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0" yaml:"timeout"`
}

// AuthOptions converts the cloud section into a Keystone request.
func (c *CloudConfig) AuthOptions() apiclient.AuthOptions {
	return apiclient.AuthOptions{
		AuthURL:                     c.AuthURL,
		Username:                    c.Username,
		UserID:                      c.UserID,
		Password:                    c.Password,
		UserDomainName:              c.UserDomainName,
		UserDomainID:                c.UserDomainID,
		ProjectName:                 c.ProjectName,
		ProjectID:                   c.ProjectID,
		ProjectDomainName:           c.ProjectDomainName,
		ProjectDomainID:             c.ProjectDomainID,
		ApplicationCredentialID:     c.ApplicationCredentialID,
		ApplicationCredentialName:   c.ApplicationCredentialName,
		ApplicationCredentialSecret: c.ApplicationCredentialSecret,
		Region:                      c.Region,
		Interface:                   c.Interface,
	}
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	// Format is the default output format
	// Valid values: table, json, yaml, csv, value
	Format string `mapstructure:"format" validate:"required,oneof=table json yaml csv value" yaml:"format"`

	// PageSize is the default list page size; 0 disables pagination
	PageSize int `mapstructure:"page_size" validate:"gte=0" yaml:"page_size"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// TelemetryConfig controls OpenTelemetry distributed tracing.
type TelemetryConfig struct {
	// Enabled controls whether distributed tracing is enabled
	// Default: false (opt-in for telemetry)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Endpoint is the OTLP collector endpoint (host:port)
	// Default: "localhost:4317" (standard OTLP gRPC port)
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// Insecure controls whether to use insecure (non-TLS) connection
	Insecure bool `mapstructure:"insecure" yaml:"insecure"`

	// SampleRate controls the trace sampling rate (0.0 to 1.0)
	// Default: 1.0 (sample all)
	SampleRate float64 `mapstructure:"sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"sample_rate"`

	// Headers are added to every OTLP export, e.g. a collector API key
	Headers map[string]string `mapstructure:"headers" yaml:"headers,omitempty"`

	// Profiling contains Pyroscope continuous profiling configuration
	Profiling ProfilingConfig `mapstructure:"profiling" yaml:"profiling"`
}

// ProfilingConfig controls Pyroscope continuous profiling.
type ProfilingConfig struct {
	// Enabled controls whether continuous profiling is enabled
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Endpoint is the Pyroscope server endpoint (URL)
	// Default: "http://localhost:4040"
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url" yaml:"endpoint"`

	// ProfileTypes specifies which profile types to collect.
	// Accepts a list or a comma separated string.
	ProfileTypes []string `mapstructure:"profile_types" yaml:"profile_types"`
}

// MetricsConfig configures the Prometheus textfile export.
type MetricsConfig struct {
	// Textfile is where request metrics are written on exit, in Prometheus
	// text format. Empty disables metrics collection.
	Textfile string `mapstructure:"textfile" yaml:"textfile,omitempty"`
}

// keys lists every setting that can come from a NEUTRONCTL_* variable.
// viper only unmarshals environment values for keys it knows about.
var keys = []string{
	"cloud.auth_url", "cloud.region", "cloud.interface",
	"cloud.username", "cloud.user_id", "cloud.user_domain_name", "cloud.user_domain_id", "cloud.password",
	"cloud.project_name", "cloud.project_id", "cloud.project_domain_name", "cloud.project_domain_id",
	"cloud.application_credential_id", "cloud.application_credential_name", "cloud.application_credential_secret",
	"cloud.token", "cloud.endpoint", "cloud.insecure", "cloud.timeout",
	"output.format", "output.page_size",
	"logging.level", "logging.format", "logging.output",
	"telemetry.enabled", "telemetry.endpoint", "telemetry.insecure", "telemetry.sample_rate",
	"telemetry.profiling.enabled", "telemetry.profiling.endpoint", "telemetry.profiling.profile_types",
	"metrics.textfile",
}

// Load loads configuration from file, environment, and defaults.
//
// A missing configuration file is not an error: environment variables and
// defaults still apply.
func Load(configPath string) (*Config, error) {
	return load(configPath, os.LookupEnv)
}

func load(configPath string, lookup func(string) (string, bool)) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if _, err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyOSEnv(&cfg, lookup)
	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// MustLoad is Load for commands that need an existing file.
func MustLoad(configPath string) (*Config, error) {
	if configPath == "" {
		if !DefaultConfigExists() {
			return nil, fmt.Errorf("no configuration file found at default location: %s\n\n"+
				"Please initialize a configuration file first:\n"+
				"  neutronctl config init\n\n"+
				"Or specify a custom config file:\n"+
				"  neutronctl <command> --config /path/to/config.yaml",
				GetDefaultConfigPath())
		}
		configPath = GetDefaultConfigPath()
	} else if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s\n\n"+
			"Please create the configuration file:\n"+
			"  neutronctl config init --config %s",
			configPath, configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// SaveConfig saves the configuration to path in YAML. Secrets are never
// written.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// NEUTRONCTL_CLOUD_AUTH_URL sets cloud.auth_url
	v.SetEnvPrefix("NEUTRONCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

// configDecodeHooks returns a combined decode hook for durations and
// comma separated lists.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		durationDecodeHook(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// durationDecodeHook converts strings like "30s" and raw seconds to
// time.Duration.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v) * time.Second, nil
		case int64:
			return time.Duration(v) * time.Second, nil
		case float64:
			return time.Duration(v * float64(time.Second)), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns $XDG_CONFIG_HOME/neutronctl, falling back to
// ~/.config/neutronctl, or the current directory.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "neutronctl")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "neutronctl")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// GetConfigDir returns the configuration directory path.
func GetConfigDir() string {
	return getConfigDir()
}
