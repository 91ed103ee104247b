package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/parlance-lang/parlance/source/text"
)

// The contents of the configuration file. Anything missing from the file keeps its
// default.
type Config struct {
	Prompt   string        `yaml:"prompt"`
	Width    int           `yaml:"width"` // 0 means the width of the terminal.
	LogLevel string        `yaml:"log_level"`
	History  HistoryConfig `yaml:"history"`
}

type HistoryConfig struct {
	Driver string `yaml:"driver"`
	Dsn    string `yaml:"dsn"`
	Limit  int    `yaml:"limit"`
}

const CONFIG_ENV = "PARLANCE_CONFIG"

func DefaultConfig() *Config {
	return &Config{
		Prompt:   text.PROMPT,
		LogLevel: "warn",
		History: HistoryConfig{
			Driver: "sqlite",
			Limit:  1000,
		},
	}
}

// The directory for the config file and the default history database.
func Home() string {
	home, e := os.UserHomeDir()
	if e != nil {
		return ".parlance"
	}
	return filepath.Join(home, ".parlance")
}

// Finds the config file: the explicit path if given, else $PARLANCE_CONFIG, else the
// one in Home. Only an explicitly named file has to exist.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = os.Getenv(CONFIG_ENV)
		explicit = path != ""
	}
	if path == "" {
		path = filepath.Join(Home(), "config.yaml")
	}
	data, e := os.ReadFile(path)
	if e != nil {
		if !explicit && os.IsNotExist(e) {
			return ParseConfig(nil)
		}
		return nil, errors.Wrapf(e, "reading config file %s", path)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()
	if e := yaml.Unmarshal(data, config); e != nil {
		return nil, errors.Wrap(e, "parsing config")
	}
	if _, e := config.Level(); e != nil {
		return nil, e
	}
	if config.History.Driver == "sqlite" && config.History.Dsn == "" {
		config.History.Dsn = filepath.Join(Home(), "history.db")
	}
	return config, nil
}

func (c *Config) Level() (zerolog.Level, error) {
	level, e := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if e != nil {
		return zerolog.NoLevel, errors.Wrapf(e, "bad log level %q", c.LogLevel)
	}
	return level, nil
}
