package config

import (
	"github.com/gogf/gf/v2/encoding/gjson"
	"github.com/gogf/gf/v2/os/gfile"
	"github.com/pkg/errors"

	"github.com/wlynxg/ipconfig/core/adapter"
	mlog "github.com/wlynxg/ipconfig/pkgs/log"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

type Config struct {
	path            string
	IncludeDNS      *bool
	IncludeGateways *bool
	IncludePrefixes *bool
	MaxAttempts     int
	Format          string
	LogConfigs      []mlog.CoreConfig
}

func (c *Config) Path() string {
	return c.path
}

func (c *Config) Save() error {
	if c.path == "" {
		return nil
	}
	if err := gfile.PutBytes(c.path, gjson.New(c).MustToJsonIndent()); err != nil {
		return errors.Wrapf(err, "save config %s", c.path)
	}
	return nil
}

// Load reads the config at path, fills in defaults and writes the result
// back so the file lists every setting. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" && gfile.Exists(path) {
		load, err := gjson.Load(path)
		if err != nil {
			return nil, errors.Wrapf(err, "load config %s", path)
		}

		if err := load.Scan(&cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}

	cfg.path = path
	defaultConfig(cfg)

	if err := cfg.Save(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig(cfg *Config) {
	yes := func() *bool {
		b := true
		return &b
	}
	if cfg.IncludeDNS == nil {
		cfg.IncludeDNS = yes()
	}
	if cfg.IncludeGateways == nil {
		cfg.IncludeGateways = yes()
	}
	if cfg.IncludePrefixes == nil {
		cfg.IncludePrefixes = yes()
	}

	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = adapter.DefaultMaxAttempts
	}

	if cfg.Format != FormatJSON {
		cfg.Format = FormatText
	}
}

// Options translates the config into adapter query options.
func (c *Config) Options() []adapter.Option {
	return []adapter.Option{
		adapter.WithDNS(*c.IncludeDNS),
		adapter.WithGateways(*c.IncludeGateways),
		adapter.WithPrefixes(*c.IncludePrefixes),
		adapter.WithMaxAttempts(c.MaxAttempts),
	}
}
