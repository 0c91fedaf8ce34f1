package server

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/contribute-dao/weft/errors"
	"github.com/tendermint/tendermint/libs/log"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the node configuration file, relative to the
// home directory.
const ConfigFile = "config.yaml"

// Store backends.
const (
	StoreLevelDB = "leveldb"
	StoreMemory  = "memory"
)

// Config is the node configuration read from <home>/config.yaml. Command
// line flags take precedence over the file.
type Config struct {
	Bind     string `yaml:"bind"`
	LogLevel string `yaml:"log_level"`
	// Debug returns full stack traces with failed transactions.
	Debug bool   `yaml:"debug"`
	Store string `yaml:"store"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Bind:     "tcp://localhost:46658",
		LogLevel: "info",
		Store:    StoreLevelDB,
	}
}

func (c Config) Validate() error {
	if c.Bind == "" {
		return errors.Wrap(errors.ErrEmpty, "bind")
	}
	switch c.Store {
	case StoreLevelDB, StoreMemory:
	default:
		return errors.Wrapf(errors.ErrInput, "unknown store %q", c.Store)
	}
	if _, err := log.AllowLevel(c.LogLevel); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// LoadConfig reads the configuration from the home directory. Missing
// values are taken from DefaultConfig, a missing file is not an error.
func LoadConfig(home string) (Config, error) {
	conf := DefaultConfig()
	raw, err := ioutil.ReadFile(filepath.Join(home, ConfigFile))
	switch {
	case os.IsNotExist(err):
		return conf, nil
	case err != nil:
		return conf, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(raw, &conf); err != nil {
		return conf, errors.Wrap(errors.ErrInput, "parse config: "+err.Error())
	}
	if err := conf.Validate(); err != nil {
		return conf, errors.Wrap(err, "invalid config")
	}
	return conf, nil
}

// WriteConfig saves the configuration in the home directory.
func WriteConfig(home string, conf Config) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	raw, err := yaml.Marshal(conf)
	if err != nil {
		return errors.Wrap(err, "serialize config")
	}
	if err := os.MkdirAll(home, 0755); err != nil {
		return errors.Wrap(err, "create home")
	}
	return ioutil.WriteFile(filepath.Join(home, ConfigFile), raw, 0644)
}

// FilterLogger limits the logger output to the configured level.
func FilterLogger(logger log.Logger, conf Config) (log.Logger, error) {
	allow, err := log.AllowLevel(conf.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, allow), nil
}
