package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config contains all of the configuration options available to the civsave
// tools.
type Config struct {
	// Full path to file to which logs will be written. Blank will write to stdout.
	LogFilePath string `mapstructure:"log_file_path"`
	// Minimum level of a log required to be written. Options: debug, info, warn, error
	LogLevel string `mapstructure:"log_level"`
	// Directory searched for CIVIL?.SVE files when no path is given.
	SaveDir string `mapstructure:"save_dir"`

	Catalog struct {
		// Database engine backing the save catalog. Options: sqlite, postgres
		Engine string `mapstructure:"engine"`
		// Name of the SQLite database file, relative to the config directory.
		Filename string `mapstructure:"filename"`
		// Hostname of the Postgres database instance.
		Host string `mapstructure:"host"`
		// Port on host on which the Postgres instance is accepting connections.
		Port int `mapstructure:"port"`
		// Name of the database in Postgres for the catalog.
		Name string `mapstructure:"name"`
		// Username and password of a user with full RW privileges to ${name}.
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		// Set to verify-full if the Postgres instance supports SSL.
		SSLMode string `mapstructure:"sslmode"`
		// How long a checksum is remembered by the indexer before the database
		// is asked again.
		DedupTTL time.Duration `mapstructure:"dedup_ttl"`
	} `mapstructure:"catalog"`

	configDir string
}

const envVarPrefix = "CIVSAVE"

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file_path", "")
	v.SetDefault("save_dir", ".")
	v.SetDefault("catalog.engine", "sqlite")
	v.SetDefault("catalog.filename", "civsave.db")
	v.SetDefault("catalog.host", "localhost")
	v.SetDefault("catalog.port", 5432)
	v.SetDefault("catalog.name", "civsave")
	v.SetDefault("catalog.username", "")
	v.SetDefault("catalog.password", "")
	v.SetDefault("catalog.sslmode", "disable")
	v.SetDefault("catalog.dedup_ttl", "10m")
}

// LoadConfig reads config.yaml from configPath. A missing file is not an error,
// the defaults and any CIVSAVE_ environment variables are used instead.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "."
	}

	v := viper.New()
	v.AddConfigPath(configPath)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(envVarPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// This allows us to set nested yaml config options through environment
	// variables. For example, catalog.host can be set using: CIVSAVE_CATALOG_HOST
	for _, k := range v.AllKeys() {
		envVar := envVarPrefix + "_" + strings.ReplaceAll(strings.ToUpper(k), ".", "_")
		if err := v.BindEnv(k, envVar); err != nil {
			return nil, fmt.Errorf("binding %s to %s: %w", k, envVar, err)
		}
	}

	config := &Config{configDir: configPath}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return config, nil
}

const databaseURITemplate = "host=%s port=%d dbname=%s user=%s password=%s sslmode=%s"

// DatabaseURL returns a database URL generated from the provided config values.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		databaseURITemplate,
		c.Catalog.Host,
		c.Catalog.Port,
		c.Catalog.Name,
		c.Catalog.Username,
		c.Catalog.Password,
		c.Catalog.SSLMode,
	)
}

// QualifiedPath resolves name against the directory the config was loaded from.
// Absolute paths are returned unchanged.
func (c *Config) QualifiedPath(name string) string {
	if filepath.IsAbs(name) || c.configDir == "" {
		return name
	}
	return filepath.Join(c.configDir, name)
}
