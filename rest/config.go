package rest

import (
	"time"

	"github.com/go-viper/mapstructure/v2"
)

const (
	defaultConcurrency = 4
	defaultTimeout     = 30 * time.Second
)

// Config configures a REST provider.
type Config struct {
	// Name identifies the provider in logs, metrics and the registry.
	Name string `mapstructure:"name"`

	// URL is the backend base URL, e.g. https://jsonplaceholder.typicode.com.
	URL string `mapstructure:"url"`

	// Timeout bounds each HTTP exchange. Defaults to 30s.
	Timeout time.Duration `mapstructure:"timeout"`

	// Headers are sent with every request.
	Headers map[string]string `mapstructure:"headers"`

	// Concurrency bounds in-flight sub-requests of update_many and
	// delete_many. Defaults to 4.
	Concurrency int `mapstructure:"concurrency"`

	// ListQuery renders pagination, sort and filter parameters of get_list
	// and get_many_reference as json-server style query parameters.
	ListQuery bool `mapstructure:"list_query"`

	// IDField is the record field holding the identifier. Defaults to "id".
	IDField string `mapstructure:"id_field"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "rest"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Concurrency <= 0 {
		c.Concurrency = defaultConcurrency
	}
	if c.IDField == "" {
		c.IDField = "id"
	}
}

// DecodeConfig decodes a raw configuration map, as found under a client
// entry of the config file. Durations may be given as strings ("5s") and
// scalars are weakly typed. Unrelated keys are ignored.
func DecodeConfig(raw map[string]any) (Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
