package environment

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// DefaultConfigPath is where the daemon looks for its configuration
	DefaultConfigPath = "/etc/dmi/config.yaml"
	// DefaultListen is the default address of the http api
	DefaultListen = "127.0.0.1:8051"
	// DefaultChannel is the redis channel reports are published on
	DefaultChannel = "hardware"
)

// Config of the dmi tools
//
//	source:
//	  root: /
//	  dump: ""
//	  ttl: 10m
//	report:
//	  url: https://example.com/api
//	  redis: tcp://localhost:6379
//	  channel: hardware
//	  timeout: 5m
//	listen: 127.0.0.1:8051
type Config struct {
	Source struct {
		// Root prefixed to the sysfs paths
		Root string `yaml:"root"`
		// Dump file to read instead of sysfs
		Dump string        `yaml:"dump"`
		TTL  time.Duration `yaml:"ttl"`
	} `yaml:"source"`
	Report struct {
		URL     string        `yaml:"url"`
		Redis   string        `yaml:"redis"`
		Channel string        `yaml:"channel"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"report"`
	Listen string `yaml:"listen"`
}

// Default config, reads the running system tables and reports nowhere
func Default() Config {
	var cfg Config
	cfg.Source.Root = "/"
	cfg.Source.TTL = 10 * time.Minute
	cfg.Report.Channel = DefaultChannel
	cfg.Report.Timeout = 5 * time.Minute
	cfg.Listen = DefaultListen

	return cfg
}

// Load reads the config file at path on top of the default config. A
// missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return cfg, errors.Wrapf(err, "failed to read config '%s'", path)
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config '%s'", path)
	}

	return cfg, cfg.Validate()
}

// Validate checks the config values and reports all problems at once
func (c *Config) Validate() error {
	var errs error

	if c.Source.Root == "" && c.Source.Dump == "" {
		errs = multierror.Append(errs, fmt.Errorf("source: root or dump is required"))
	}

	// a zero ttl would cache the first snapshot forever
	if c.Source.TTL <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("source: ttl must be positive"))
	}

	// a zero timeout would retry a failing push forever
	if c.Report.Timeout <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("report: timeout must be positive"))
	}

	if c.Report.URL != "" && !strings.HasPrefix(c.Report.URL, "http://") && !strings.HasPrefix(c.Report.URL, "https://") {
		errs = multierror.Append(errs, fmt.Errorf("report: invalid url '%s'", c.Report.URL))
	}

	if c.Report.Redis != "" && c.Report.Channel == "" {
		errs = multierror.Append(errs, fmt.Errorf("report: channel is required with redis"))
	}

	if c.Listen == "" {
		errs = multierror.Append(errs, fmt.Errorf("listen address is required"))
	}

	return errs
}

// Reporting is true if at least one report store is configured
func (c *Config) Reporting() bool {
	return c.Report.URL != "" || c.Report.Redis != ""
}
