// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
)

const (
	// EnvPrefix prefixes environment variables overriding single settings, e.g. CHURCHADMIN_WEBSERVER_PORT.
	EnvPrefix = "CHURCHADMIN"

	// EnvConfigJSON names the environment variable holding a JSON document merged over the file config.
	EnvConfigJSON = "CHURCHADMIN_CONFIG_JSON"

	configName = "main.toml"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(path, configName))
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config from "+EnvConfigJSON)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings and fill in defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	switch c.DB.Engine {
	case "":
		c.DB.Engine = EngineSQLite
	case EngineSQLite, EngineMySQL, EnginePostgres:
	default:
		return errors.Wrapf(ErrUnknownDBEngine, "%s: %q", invalidErrMessage, c.DB.Engine)
	}

	if c.DB.Engine == EngineSQLite && c.DB.Path == "" {
		c.DB.Path = "churchadmin.db"
	}

	switch c.Overrides.Backend {
	case "":
		c.Overrides.Backend = BackendDB
	case BackendDB:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.Wrap(ErrEmptyRedisAddr, invalidErrMessage)
		}
	default:
		return errors.Wrapf(ErrUnknownOverrideBackend, "%s: %q", invalidErrMessage, c.Overrides.Backend)
	}

	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "churchadmin:permissions:"
	}

	for _, m := range c.Navigation.Modules {
		if _, err := rbac.ParseModule(m); err != nil {
			return errors.Wrapf(ErrUnknownModule, "%s: %q", invalidErrMessage, m)
		}
	}

	return nil
}

// Order returns the configured module order or the built-in one.
func (n Navigation) Order() []rbac.Module {
	if len(n.Modules) == 0 {
		return rbac.DefaultModules()
	}

	out := make([]rbac.Module, 0, len(n.Modules))
	for _, key := range n.Modules {
		if m, err := rbac.ParseModule(key); err == nil {
			out = append(out, m)
		}
	}

	return out
}
