package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

type Config struct {
	// SQLDriver is either "sqlite3" or "postgres".
	SQLDriver string

	// SQLDSN is a file path for sqlite3 and a postgres:// URL for postgres.
	SQLDSN string

	// HTTPAddr is where the web server listens.
	HTTPAddr string

	// ResourcesDir holds the migrations, templates, locales and static files.
	ResourcesDir string

	// APIBaseURL is the API root used by the browse command.
	APIBaseURL string

	LogLevel      string
	DefaultLocale string
}

// Default returns a configuration usable for local development.
func Default() Config {
	return Config{
		SQLDriver:     "sqlite3",
		SQLDSN:        "./gamedex.db",
		HTTPAddr:      "127.0.0.1:3001",
		ResourcesDir:  "./resources",
		APIBaseURL:    "http://127.0.0.1:3001/api",
		LogLevel:      "info",
		DefaultLocale: "en",
	}
}

func NewFromUserConfigDir() (*Config, error) {
	c := &Config{}
	if err := c.ReloadFromUserConfigDir(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) expandFromEnv() {
	vars := []struct {
		src string
		dst *string
	}{
		{"GAMEDEX_SQL_DRIVER", &c.SQLDriver},
		{"GAMEDEX_SQL_DSN", &c.SQLDSN},
		{"GAMEDEX_HTTP_ADDR", &c.HTTPAddr},
		{"GAMEDEX_RESOURCES_DIR", &c.ResourcesDir},
		{"GAMEDEX_API_BASE_URL", &c.APIBaseURL},
		{"GAMEDEX_LOG_LEVEL", &c.LogLevel},
		{"GAMEDEX_DEFAULT_LOCALE", &c.DefaultLocale},
	}

	for _, v := range vars {
		if str := os.Getenv(v.src); str != "" {
			*v.dst = str
		}
	}
}

func (c *Config) ReloadFromUserConfigDir() error {
	path, err := getOrCreateUserConfigPath()
	if err != nil {
		return err
	}

	return c.ReloadFromFile(path)
}

// ReloadFromFile resets the configuration to its defaults, then applies the
// JSON file at path if it exists, then the environment.
func (c *Config) ReloadFromFile(path string) error {
	*c = Default()
	defer c.expandFromEnv()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("unable to decode %s: %w", path, err)
	}

	return nil
}

// Validate ensures the configuration can be used to start the application.
func (c *Config) Validate() error {
	switch c.SQLDriver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("unknown SQLDriver %q, expected sqlite3 or postgres", c.SQLDriver)
	}

	if c.SQLDSN == "" {
		return fmt.Errorf("empty SQLDSN")
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if c.DefaultLocale == "" {
		return fmt.Errorf("empty DefaultLocale")
	}

	return nil
}

// Logger returns a logger configured for the given level.
func (c *Config) Logger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

func getOrCreateUserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, "gamedex")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.json"), nil
}

func (c *Config) WriteFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	if err := enc.Encode(c); err != nil {
		if err2 := f.Close(); err2 != nil {
			return fmt.Errorf("unable to close file (%s) after error: %w", err2, err)
		}

		return err
	}

	return f.Close()
}
