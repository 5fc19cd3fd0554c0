package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kbukum/dataprovider/config"
	"github.com/kbukum/dataprovider/dataprovider"
)

const (
	serviceName     = "dataprovider"
	defaultProvider = "rest"
)

// appConfig is the configuration file layout.
type appConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Telemetry telemetryConfig         `yaml:"telemetry" mapstructure:"telemetry"`
	Clients   map[string]clientConfig `yaml:"clients" mapstructure:"clients" validate:"required,min=1,dive"`
}

type telemetryConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
}

// clientConfig describes one backend. Provider selects the registry factory;
// the remaining keys are handed to it.
type clientConfig struct {
	Provider    string            `yaml:"provider" mapstructure:"provider"`
	URL         string            `yaml:"url" mapstructure:"url" validate:"required,url"`
	Timeout     time.Duration     `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	Concurrency int               `yaml:"concurrency" mapstructure:"concurrency" validate:"gte=0"`
	ListQuery   bool              `yaml:"list_query" mapstructure:"list_query"`
	IDField     string            `yaml:"id_field" mapstructure:"id_field"`
	Headers     map[string]string `yaml:"headers" mapstructure:"headers"`
	Resources   []resourceConfig  `yaml:"resources" mapstructure:"resources" validate:"dive"`
}

// resourceConfig gives a resource path a display name and, optionally,
// the fields shown in text output.
type resourceConfig struct {
	Name     string        `yaml:"name" mapstructure:"name" validate:"required"`
	Resource string        `yaml:"resource" mapstructure:"resource" validate:"required"`
	Fields   []fieldConfig `yaml:"fields" mapstructure:"fields" validate:"dive"`
}

type fieldConfig struct {
	Name string `yaml:"name" mapstructure:"name" validate:"required"`
}

func (c *appConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	for name, client := range c.Clients {
		if client.Provider == "" {
			client.Provider = defaultProvider
		}
		c.Clients[name] = client
	}
}

func (c *appConfig) Validate() error {
	return c.ServiceConfig.Validate()
}

// clientNames returns the configured client names in sorted order.
func (c *appConfig) clientNames() []string {
	names := make([]string, 0, len(c.Clients))
	for name := range c.Clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// selectClient picks the named client. An empty name is accepted when
// exactly one client is configured.
func (c *appConfig) selectClient(name string) (string, clientConfig, error) {
	if name == "" {
		if len(c.Clients) != 1 {
			return "", clientConfig{}, fmt.Errorf("several clients configured, choose one with --client (%s)", strings.Join(c.clientNames(), ", "))
		}
		name = c.clientNames()[0]
	}
	client, ok := c.Clients[strings.ToLower(name)]
	if !ok {
		return "", clientConfig{}, fmt.Errorf("unknown client %q (configured: %s)", name, strings.Join(c.clientNames(), ", "))
	}
	return strings.ToLower(name), client, nil
}

// options renders the client as the raw map a provider factory decodes.
func (c clientConfig) options(name string) map[string]any {
	opts := map[string]any{
		"name":        name,
		"url":         c.URL,
		"timeout":     c.Timeout,
		"concurrency": c.Concurrency,
		"list_query":  c.ListQuery,
	}
	if c.IDField != "" {
		opts["id_field"] = c.IDField
	}
	if len(c.Headers) > 0 {
		opts["headers"] = c.Headers
	}
	return opts
}

// resolve maps a command-line resource argument to a Resource. Configured
// display names match case-insensitively; anything else is used as a path.
func (c clientConfig) resolve(arg string) (dataprovider.Resource, *resourceConfig) {
	for i, rc := range c.Resources {
		if strings.EqualFold(rc.Name, arg) {
			return dataprovider.NewResource(rc.Resource), &c.Resources[i]
		}
	}
	res := dataprovider.NewResource(arg)
	for i, rc := range c.Resources {
		if dataprovider.NewResource(rc.Resource) == res {
			return res, &c.Resources[i]
		}
	}
	return res, nil
}

// fieldNames returns the fields to display, or nil for all of them.
func (r *resourceConfig) fieldNames() []string {
	if r == nil || len(r.Fields) == 0 {
		return nil
	}
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}
