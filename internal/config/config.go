// Package config loads the runtime settings from ~/.ogero/config.toml and
// OGERO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gookit/validate"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".ogero"
	envPrefix  = "OGERO"

	KeyEntriesPath     = "entries.path"
	KeyPortalURL       = "portal.url"
	KeyPortalTimeout   = "portal.timeout"
	KeyPortalRate      = "portal.rate"
	KeyRefreshInterval = "refresh.interval"
	KeyAttributePolicy = "sensors.attribute_policy"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
	KeyServeListen     = "serve.listen"
	KeyServeMetrics    = "serve.metrics"
	KeySecretsBackend  = "secrets.backend"

	SecretsBackendChain = "chain"
	SecretsBackendPass  = "pass"
	SecretsBackendFile  = "file"

	DefaultPortalURL       = "https://ogero.gov.lb/myogero/api"
	DefaultRefreshInterval = time.Hour
)

type Portal struct {
	URL     string        `mapstructure:"url" validate:"required|fullUrl"`
	Timeout time.Duration `mapstructure:"timeout"`
	// Rate is the allowed portal requests per second.
	Rate float64 `mapstructure:"rate"`
}

type Refresh struct {
	Interval time.Duration `mapstructure:"interval"`
}

type Sensors struct {
	AttributePolicy string `mapstructure:"attribute_policy" validate:"required|in:accumulate,replace"`
}

type Log struct {
	Level  string `mapstructure:"level" validate:"required|in:trace,debug,info,warn,error"`
	Format string `mapstructure:"format" validate:"required|in:console,json"`
}

type Serve struct {
	Listen  string `mapstructure:"listen" validate:"required"`
	Metrics bool   `mapstructure:"metrics"`
}

// Secrets selects where entry passwords live. chain tries pass first and
// falls back to files under <dir>/secrets.
type Secrets struct {
	Backend string `mapstructure:"backend" validate:"required|in:chain,pass,file"`
}

type Config struct {
	Dir         string
	EntriesPath string  `mapstructure:"-"`
	Portal      Portal  `mapstructure:"portal"`
	Refresh     Refresh `mapstructure:"refresh"`
	Sensors     Sensors `mapstructure:"sensors"`
	Log         Log     `mapstructure:"log"`
	Serve       Serve   `mapstructure:"serve"`
	Secrets     Secrets `mapstructure:"secrets"`
}

// Load reads the optional config file and environment into cfg and validates
// the result. The same viper instance is later handed to the entry repository.
func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(homeDir, configDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(dir)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	setDefaults(cfg, dir)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var conf Config
	if err := cfg.Unmarshal(&conf); err != nil {
		return Config{}, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	conf.Dir = dir
	conf.EntriesPath = cfg.GetString(KeyEntriesPath)

	if err := conf.Validate(); err != nil {
		return Config{}, err
	}

	return conf, nil
}

func setDefaults(cfg *viper.Viper, dir string) {
	cfg.SetDefault(KeyEntriesPath, filepath.Join(dir, "entries.toml"))
	cfg.SetDefault(KeyPortalURL, DefaultPortalURL)
	cfg.SetDefault(KeyPortalTimeout, 30*time.Second)
	cfg.SetDefault(KeyPortalRate, 2.0)
	cfg.SetDefault(KeyRefreshInterval, DefaultRefreshInterval)
	cfg.SetDefault(KeyAttributePolicy, "accumulate")
	cfg.SetDefault(KeyLogLevel, "info")
	cfg.SetDefault(KeyLogFormat, "console")
	cfg.SetDefault(KeyServeListen, "127.0.0.1:9470")
	cfg.SetDefault(KeyServeMetrics, true)
	cfg.SetDefault(KeySecretsBackend, SecretsBackendChain)
}

func (c Config) Validate() error {
	v := validate.Struct(c)
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %w", v.Errors)
	}

	if c.Portal.Timeout < 0 {
		return fmt.Errorf("invalid configuration: portal.timeout must not be negative")
	}
	if c.Portal.Rate < 0 {
		return fmt.Errorf("invalid configuration: portal.rate must not be negative")
	}
	if c.Refresh.Interval < time.Minute {
		return fmt.Errorf("invalid configuration: refresh.interval must be at least 1m, got %s", c.Refresh.Interval)
	}

	return nil
}
