/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package config provides structures and functions for loading and managing agent configurations.
package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	yaml "gopkg.in/yaml.v3"

	"github.com/asgardeo/cloudinit/internal/system/log"
)

// LogConfig holds the logging configuration details.
type LogConfig struct {
	Level      string `yaml:"level" env:"LEVEL"`
	File       string `yaml:"file" env:"FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"MAX_SIZE_MB"`
	MaxBackups int    `yaml:"max_backups" env:"MAX_BACKUPS"`
	MaxAgeDays int    `yaml:"max_age_days" env:"MAX_AGE_DAYS"`
}

// HTTPMetadataConfig holds the configuration of the metadata service endpoint.
type HTTPMetadataConfig struct {
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
	// Timeout is the request timeout in seconds.
	Timeout int `yaml:"timeout" env:"TIMEOUT"`
}

// ConfigDriveConfig holds the configuration of a mounted configuration drive.
type ConfigDriveConfig struct {
	Path string `yaml:"path" env:"PATH"`
}

// MetadataConfig holds the metadata source configuration details.
type MetadataConfig struct {
	Type        string             `yaml:"type" env:"TYPE"`
	Namespace   string             `yaml:"namespace" env:"NAMESPACE"`
	HTTP        HTTPMetadataConfig `yaml:"http" envPrefix:"HTTP_"`
	ConfigDrive ConfigDriveConfig  `yaml:"config_drive" envPrefix:"CONFIG_DRIVE_"`
}

// UserDataConfig holds the configuration of the user data plugin.
type UserDataConfig struct {
	// Plugins lists the content types to load handlers for. Empty means every registered handler.
	Plugins []string `yaml:"plugins" env:"PLUGINS" envSeparator:","`
}

// ScriptConfig holds the configuration of the user data script executor.
type ScriptConfig struct {
	WorkDir        string `yaml:"work_dir" env:"WORK_DIR"`
	ShellPath      string `yaml:"shell_path" env:"SHELL_PATH"`
	PowerShellPath string `yaml:"powershell_path" env:"POWERSHELL_PATH"`
	CmdPath        string `yaml:"cmd_path" env:"CMD_PATH"`
	PythonPath     string `yaml:"python_path" env:"PYTHON_PATH"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type" env:"TYPE"`
	Hostname        string `yaml:"hostname" env:"HOSTNAME"`
	Port            int    `yaml:"port" env:"PORT"`
	Name            string `yaml:"name" env:"NAME"`
	Username        string `yaml:"username" env:"USERNAME"`
	Password        string `yaml:"password" env:"PASSWORD"`
	SSLMode         string `yaml:"sslmode" env:"SSLMODE"`
	Path            string `yaml:"path" env:"PATH"`
	Options         string `yaml:"options" env:"OPTIONS"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"`
}

// StateConfig holds the configuration of the execution state store.
type StateConfig struct {
	Enabled    bool       `yaml:"enabled" env:"ENABLED"`
	DataSource DataSource `yaml:"datasource" envPrefix:"DB_"`
}

// MetricsConfig holds the metrics export configuration details.
type MetricsConfig struct {
	// TextFile is the path of a node exporter textfile to write metrics to. Empty disables the export.
	TextFile string `yaml:"textfile" env:"TEXTFILE"`
}

// Config holds the complete configuration details of the agent.
type Config struct {
	Log      LogConfig      `yaml:"log" envPrefix:"LOG_"`
	Metadata MetadataConfig `yaml:"metadata" envPrefix:"METADATA_"`
	UserData UserDataConfig `yaml:"user_data" envPrefix:"USERDATA_"`
	Script   ScriptConfig   `yaml:"script" envPrefix:"SCRIPT_"`
	State    StateConfig    `yaml:"state" envPrefix:"STATE_"`
	Metrics  MetricsConfig  `yaml:"metrics" envPrefix:"METRICS_"`
}

// LoadConfig loads the configurations from the specified YAML file, applies environment
// overrides and fills in defaults for unset values.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := ApplyEnvironment(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	return &cfg, nil
}

// DefaultConfig returns a configuration with every value set to its default, with
// environment overrides applied.
func DefaultConfig() (*Config, error) {
	var cfg Config
	if err := ApplyEnvironment(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// ApplyEnvironment overrides configuration values with the AGENT_ prefixed environment variables.
func ApplyEnvironment(cfg *Config) error {
	return env.ParseWithOptions(cfg, env.Options{Prefix: EnvironmentPrefix})
}

// applyDefaults sets default values for configurations that are not set.
func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = log.DefaultLogLevel
	}
	if cfg.Metadata.Type == "" {
		cfg.Metadata.Type = DefaultMetadataType
	}
	if cfg.Metadata.Namespace == "" {
		cfg.Metadata.Namespace = DefaultMetadataNamespace
	}
	if cfg.Metadata.HTTP.BaseURL == "" {
		cfg.Metadata.HTTP.BaseURL = DefaultMetadataBaseURL
	}
	if cfg.Metadata.HTTP.Timeout <= 0 {
		cfg.Metadata.HTTP.Timeout = DefaultMetadataTimeout
	}
	if cfg.Script.WorkDir == "" {
		cfg.Script.WorkDir = os.TempDir()
	}
	if cfg.Script.ShellPath == "" {
		cfg.Script.ShellPath = DefaultShellPath
	}
	if cfg.Script.PowerShellPath == "" {
		cfg.Script.PowerShellPath = DefaultPowerShellPath
	}
	if cfg.Script.CmdPath == "" {
		cfg.Script.CmdPath = DefaultCmdPath
	}
	if cfg.Script.PythonPath == "" {
		cfg.Script.PythonPath = DefaultPythonPath
	}
	if cfg.State.DataSource.Type == "" {
		cfg.State.DataSource.Type = DefaultStateDataSourceType
	}
	if cfg.State.DataSource.Type == DefaultStateDataSourceType && cfg.State.DataSource.Path == "" {
		cfg.State.DataSource.Path = DefaultStateDataSourcePath
	}
}
