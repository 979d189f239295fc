package bridge

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/mcp-lambda/errs"
	"github.com/viant/mcp-protocol/schema"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTimeout     = 30000 * time.Millisecond
	DefaultName        = "Lambda-MCP-Bridge"
	DefaultVersion     = "1.0.0"
	DefaultDescription = "Bridge service that connects AWS Lambda to MCP-compatible LLMs"
)

// Config represents resolved bridge configuration
type Config struct {
	URL         string
	Timeout     time.Duration
	Info        schema.Implementation
	Description string
	Intercept   bool
	Trace       bool
}

// fileConfig uses pointers to tell unset from zero values
type fileConfig struct {
	URL         *string `yaml:"url"`
	Timeout     *int    `yaml:"timeout"`
	Name        *string `yaml:"name"`
	Version     *string `yaml:"version"`
	Description *string `yaml:"description"`
	Intercept   *bool   `yaml:"intercept"`
	Trace       *bool   `yaml:"trace"`
}

// Validate checks URL and timeout
func (c *Config) Validate() error {
	if c.URL == "" {
		return errs.NewConfiguration("backend URL is required", nil)
	}
	if err := validateURL(c.URL); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return errs.Newf(errs.Configuration, "invalid timeout: %v", c.Timeout)
	}
	if c.Info.Name == "" {
		return errs.NewConfiguration("server name was empty", nil)
	}
	return nil
}

func validateURL(URL string) error {
	parsed, err := url.Parse(URL)
	if err != nil {
		return errs.NewConfiguration("invalid backend URL format: "+URL, err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return errs.NewConfiguration("invalid backend URL format: "+URL+", expected http:// or https://", nil)
	}
	if parsed.Host == "" {
		return errs.NewConfiguration("invalid backend URL format: "+URL+", host was empty", nil)
	}
	return nil
}

// NewConfig resolves configuration: flags, then env variables, then config file, then defaults
func NewConfig(ctx context.Context, options *Options) (*Config, error) {
	ret := &Config{
		Timeout:     DefaultTimeout,
		Info:        schema.Implementation{Name: DefaultName, Version: DefaultVersion},
		Description: DefaultDescription,
		Intercept:   true,
	}
	if options.ConfigURL != "" {
		if err := ret.load(ctx, options.ConfigURL); err != nil {
			return nil, err
		}
	}
	if URL := options.BackendURL(); URL != "" {
		ret.URL = URL
	}
	if options.Timeout != "" {
		timeout, err := strconv.Atoi(strings.TrimSpace(options.Timeout))
		if err != nil || timeout <= 0 {
			return nil, errs.NewConfiguration(fmt.Sprintf("invalid timeout: %v, expected positive number of milliseconds", options.Timeout), err)
		}
		ret.Timeout = time.Duration(timeout) * time.Millisecond
	}
	if options.Name != "" {
		ret.Info.Name = options.Name
	}
	if options.Version != "" {
		ret.Info.Version = options.Version
	}
	if options.Description != "" {
		ret.Description = options.Description
	}
	if options.NoIntercept {
		ret.Intercept = false
	}
	if options.Trace {
		ret.Trace = true
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *Config) load(ctx context.Context, URL string) error {
	location := URL
	if !strings.Contains(location, "://") {
		if abs, err := filepath.Abs(location); err == nil {
			location = "file://" + abs
		}
	}
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return errs.NewConfiguration("failed to load config: "+URL, err)
	}
	file := &fileConfig{}
	if err = yaml.Unmarshal(data, file); err != nil {
		return errs.NewConfiguration("failed to decode config: "+URL, err)
	}
	if file.URL != nil {
		c.URL = *file.URL
	}
	if file.Timeout != nil {
		if *file.Timeout <= 0 {
			return errs.Newf(errs.Configuration, "invalid timeout in %v: %v", URL, *file.Timeout)
		}
		c.Timeout = time.Duration(*file.Timeout) * time.Millisecond
	}
	if file.Name != nil {
		c.Info.Name = *file.Name
	}
	if file.Version != nil {
		c.Info.Version = *file.Version
	}
	if file.Description != nil {
		c.Description = *file.Description
	}
	if file.Intercept != nil {
		c.Intercept = *file.Intercept
	}
	if file.Trace != nil {
		c.Trace = *file.Trace
	}
	return nil
}
