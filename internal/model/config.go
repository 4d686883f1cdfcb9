package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SMTPConfig holds the connection settings for the direct-send dispatch
// target. The account password is never stored here; it lives in the
// system keyring.
type SMTPConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	From     string `mapstructure:"from" yaml:"from"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// FetchTitles is the default for the "fetch titles" feature toggle.
	// The settings store may override it per installation.
	FetchTitles bool `mapstructure:"fetch_titles" yaml:"fetch_titles"`

	// SubjectMax is the maximum subject line length in characters.
	SubjectMax int `mapstructure:"subject_max" yaml:"subject_max"`

	// ConnectTimeoutMS and ReadTimeoutMS bound each title fetch.
	ConnectTimeoutMS int `mapstructure:"connect_timeout_ms" yaml:"connect_timeout_ms"`
	ReadTimeoutMS    int `mapstructure:"read_timeout_ms" yaml:"read_timeout_ms"`

	// DBPath is the location of the settings/history database.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// EMLDir is where the eml dispatch target writes draft files.
	EMLDir string `mapstructure:"eml_dir" yaml:"eml_dir"`

	SMTP SMTPConfig `mapstructure:"smtp" yaml:"smtp"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/mailshare/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "mailshare", "config.yaml")
}

// defaultDataDir returns the directory used for the database and eml drafts.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "mailshare")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dataDir := defaultDataDir()
	return &AppConfig{
		FetchTitles:      false,
		SubjectMax:       160,
		ConnectTimeoutMS: 2500,
		ReadTimeoutMS:    2500,
		DBPath:           filepath.Join(dataDir, "mailshare.db"),
		EMLDir:           filepath.Join(dataDir, "drafts"),
		SMTP: SMTPConfig{
			Port: 587,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := defaultAppConfig()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("fetch_titles", defaults.FetchTitles)
	v.SetDefault("subject_max", defaults.SubjectMax)
	v.SetDefault("connect_timeout_ms", defaults.ConnectTimeoutMS)
	v.SetDefault("read_timeout_ms", defaults.ReadTimeoutMS)
	v.SetDefault("db_path", defaults.DBPath)
	v.SetDefault("eml_dir", defaults.EMLDir)
	v.SetDefault("smtp.port", defaults.SMTP.Port)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.SubjectMax <= 0 {
		cfg.SubjectMax = defaults.SubjectMax
	}
	if cfg.ConnectTimeoutMS <= 0 {
		cfg.ConnectTimeoutMS = defaults.ConnectTimeoutMS
	}
	if cfg.ReadTimeoutMS <= 0 {
		cfg.ReadTimeoutMS = defaults.ReadTimeoutMS
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("fetch_titles", cfg.FetchTitles)
	v.Set("subject_max", cfg.SubjectMax)
	v.Set("connect_timeout_ms", cfg.ConnectTimeoutMS)
	v.Set("read_timeout_ms", cfg.ReadTimeoutMS)
	v.Set("db_path", cfg.DBPath)
	v.Set("eml_dir", cfg.EMLDir)
	v.Set("smtp", cfg.SMTP)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
