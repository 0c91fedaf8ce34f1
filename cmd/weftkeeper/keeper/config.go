package keeper

import (
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/contribute-dao/weft/crypto"
	"github.com/contribute-dao/weft/errors"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config is read from the keeper YAML file.
type Config struct {
	// RPC is the tendermint rpc address of the node.
	RPC string `yaml:"rpc"`
	// KeyFile holds the signing key, as written by `weftd init`.
	KeyFile string `yaml:"key_file"`
	// Schedule is a cron expression with a leading seconds field.
	Schedule string `yaml:"schedule"`
	// ChainID is read from the node when empty.
	ChainID    string `yaml:"chain_id"`
	RunOnStart bool   `yaml:"run_on_start"`
	LogLevel   string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used for missing values.
func DefaultConfig() Config {
	return Config{
		RPC:      "http://localhost:26657",
		KeyFile:  "keeper.json",
		Schedule: "0 0 * * * *",
		LogLevel: "info",
	}
}

// cronParser accepts the same expressions as the scheduler.
var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

func (c Config) Validate() error {
	var errs error
	if c.RPC == "" {
		errs = errors.AppendField(errs, "RPC", errors.ErrEmpty)
	}
	if c.KeyFile == "" {
		errs = errors.AppendField(errs, "KeyFile", errors.ErrEmpty)
	}
	if _, err := cronParser.Parse(c.Schedule); err != nil {
		errs = errors.AppendField(errs, "Schedule", errors.Wrap(errors.ErrInput, err.Error()))
	}
	return errs
}

// LoadConfig reads the configuration file. Environment variables
// WEFT_RPC and WEFT_KEY_FILE take precedence over the file.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	raw, err := ioutil.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return conf, errors.Wrap(err, "read config")
	}
	if len(raw) > 0 {
		if err := yaml.Unmarshal(raw, &conf); err != nil {
			return conf, errors.Wrap(errors.ErrInput, "parse config: "+err.Error())
		}
	}
	if v := os.Getenv("WEFT_RPC"); v != "" {
		conf.RPC = v
	}
	if v := os.Getenv("WEFT_KEY_FILE"); v != "" {
		conf.KeyFile = v
	}
	return conf, conf.Validate()
}

// LoadKey reads the private key from a JSON key file with a "secret" field.
func LoadKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read key file")
	}
	var keys struct {
		Secret *crypto.PrivateKey `json:"secret"`
	}
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, errors.Wrap(errors.ErrInput, "parse key file: "+err.Error())
	}
	if keys.Secret == nil || len(keys.Secret.Ed25519) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "secret")
	}
	return keys.Secret, nil
}
