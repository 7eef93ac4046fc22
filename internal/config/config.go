// Copyright 2025 Alan Matykiewicz
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alan-mat/chatbridge/internal/llm"
	"github.com/alan-mat/chatbridge/internal/provider"
	"github.com/goccy/go-yaml"
)

var (
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidTimeout  = errors.New("invalid request timeout")
	ErrInvalidPort     = errors.New("invalid listen port")
)

const (
	DefaultTitle      = "Groq Chat Playground"
	DefaultListenPort = 8501
)

type HistoryConfig struct {
	// Enabled defaults to true when unset.
	Enabled *bool `yaml:"enabled"`
}

type ServerConfig struct {
	ListenHost string `yaml:"listen_host"`
	ListenPort int    `yaml:"listen_port"`
}

type Config struct {
	Provider  provider.Type `yaml:"provider"`
	Model     string        `yaml:"model"`
	BaseURL   string        `yaml:"base_url"`
	APIKeyEnv string        `yaml:"api_key_env"`

	// RequestTimeout is a duration string, e.g. "30s".
	// Empty or zero means requests never time out.
	RequestTimeout string `yaml:"request_timeout"`

	Title    string        `yaml:"title"`
	LogLevel string        `yaml:"log_level"`
	History  HistoryConfig `yaml:"history"`
	Server   ServerConfig  `yaml:"server"`
}

func Default() *Config {
	conf := base()
	conf.applyDefaults()
	return conf
}

func base() *Config {
	return &Config{
		Title:    DefaultTitle,
		LogLevel: "info",
		Server:   ServerConfig{ListenPort: DefaultListenPort},
	}
}

// ReadConfig reads the YAML configuration at path. An empty path
// yields the default configuration.
func ReadConfig(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	conf, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
	}
	return conf, nil
}

// Parse decodes a YAML document on top of the default configuration.
// Keys missing from the document keep their default value.
func Parse(data []byte) (*Config, error) {
	conf := base()
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, err
	}

	t, err := provider.ParseType(string(conf.Provider))
	if err != nil {
		return nil, err
	}
	conf.Provider = t
	conf.applyDefaults()

	return conf, nil
}

func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = provider.TypeGroq
	}
	if c.Model == "" {
		c.Model = provider.DefaultModel(c.Provider)
	}
	if c.APIKeyEnv == "" {
		c.APIKeyEnv = provider.DefaultAPIKeyEnv(c.Provider)
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Server.ListenPort == 0 {
		c.Server.ListenPort = DefaultListenPort
	}
	if c.History.Enabled == nil {
		enabled := true
		c.History.Enabled = &enabled
	}
}

// HistoryEnabled reports whether past turns are kept for display.
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// SetModel overrides the configured model identifier.
// Blank values are ignored.
func (c *Config) SetModel(model string) {
	if model = strings.TrimSpace(model); model != "" {
		c.Model = model
	}
}

// Timeout returns the parsed request timeout. Zero means no timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if strings.TrimSpace(c.RequestTimeout) == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(strings.TrimSpace(c.RequestTimeout))
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: '%s'", ErrInvalidTimeout, c.RequestTimeout)
	}
	return d, nil
}

func (c *Config) Validate() error {
	if _, err := provider.ParseType(string(c.Provider)); err != nil {
		return err
	}

	if !provider.SupportedModel(c.Provider, c.Model) {
		return fmt.Errorf("%w: '%s' is not available for provider '%s', expected one of %v",
			llm.ErrUnsupportedModel, c.Model, c.Provider, provider.Models(c.Provider))
	}

	if _, err := c.Timeout(); err != nil {
		return err
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	if c.Server.ListenPort < 0 || c.Server.ListenPort > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.ListenPort)
	}

	return nil
}
