package config

import (
	"testing"
	"time"
)

func TestApplyDefaults_Logging(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "WARN" {
		t.Errorf("Expected default log level 'WARN', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default log format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("Expected default log output 'stderr', got %q", cfg.Logging.Output)
	}
}

func TestApplyDefaults_Cloud(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Cloud.Interface != "public" {
		t.Errorf("Expected default interface 'public', got %q", cfg.Cloud.Interface)
	}
	if cfg.Cloud.UserDomainName != "Default" || cfg.Cloud.ProjectDomainName != "Default" {
		t.Errorf("Expected Default domains, got %q / %q", cfg.Cloud.UserDomainName, cfg.Cloud.ProjectDomainName)
	}
	if cfg.Cloud.Timeout != 60*time.Second {
		t.Errorf("Expected default timeout 60s, got %v", cfg.Cloud.Timeout)
	}
}

func TestApplyDefaults_DomainIDsSuppressDefaultNames(t *testing.T) {
	cfg := &Config{Cloud: CloudConfig{UserDomainID: "default", ProjectID: "p1"}}
	ApplyDefaults(cfg)

	if cfg.Cloud.UserDomainName != "" {
		t.Errorf("Expected no user domain name when an ID is set, got %q", cfg.Cloud.UserDomainName)
	}
	if cfg.Cloud.ProjectDomainName != "" {
		t.Errorf("Expected no project domain name when a project ID is set, got %q", cfg.Cloud.ProjectDomainName)
	}
}

func TestApplyDefaults_Output(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Output.Format != "table" {
		t.Errorf("Expected default output format 'table', got %q", cfg.Output.Format)
	}
	if cfg.Output.PageSize != 0 {
		t.Errorf("Expected pagination off by default, got page size %d", cfg.Output.PageSize)
	}
}

func TestApplyDefaults_Telemetry(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Telemetry.Enabled {
		t.Error("Expected telemetry to be disabled by default")
	}
	if cfg.Telemetry.Endpoint != "localhost:4317" {
		t.Errorf("Expected default OTLP endpoint, got %q", cfg.Telemetry.Endpoint)
	}
	if cfg.Telemetry.SampleRate != 1.0 {
		t.Errorf("Expected default sample rate 1.0, got %v", cfg.Telemetry.SampleRate)
	}
	if cfg.Telemetry.Profiling.Endpoint != "http://localhost:4040" {
		t.Errorf("Expected default Pyroscope endpoint, got %q", cfg.Telemetry.Profiling.Endpoint)
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		Cloud:   CloudConfig{Interface: "ADMIN", Timeout: 5 * time.Second},
		Output:  OutputConfig{Format: "YAML", PageSize: 20},
		Logging: LoggingConfig{Level: "debug", Format: "json", Output: "/tmp/neutronctl.log"},
	}
	ApplyDefaults(cfg)

	if cfg.Cloud.Interface != "admin" {
		t.Errorf("Expected interface 'admin', got %q", cfg.Cloud.Interface)
	}
	if cfg.Cloud.Timeout != 5*time.Second {
		t.Errorf("Expected timeout to be preserved, got %v", cfg.Cloud.Timeout)
	}
	if cfg.Output.Format != "yaml" || cfg.Output.PageSize != 20 {
		t.Errorf("Expected output settings to be preserved, got %+v", cfg.Output)
	}
	if cfg.Logging.Level != "DEBUG" || cfg.Logging.Format != "json" || cfg.Logging.Output != "/tmp/neutronctl.log" {
		t.Errorf("Expected logging settings to be preserved, got %+v", cfg.Logging)
	}
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if !cfg.Telemetry.Insecure {
		t.Error("Expected insecure OTLP transport in the default config")
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Expected default config to be valid, got: %v", err)
	}
}
