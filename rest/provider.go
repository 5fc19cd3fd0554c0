package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kbukum/dataprovider/dataprovider"
	"github.com/kbukum/dataprovider/httpclient"
	"github.com/kbukum/dataprovider/logger"
	"github.com/kbukum/dataprovider/observability"
	"github.com/kbukum/dataprovider/provider"
)

// Provider talks to a REST backend. It holds no mutable state after New
// and is safe for concurrent use.
type Provider struct {
	cfg        Config
	client     *httpclient.Adapter
	log        *logger.Logger
	metrics    *observability.Metrics
	httpClient *http.Client
}

var _ dataprovider.DataProvider = (*Provider)(nil)

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger used for per-exchange debug logs and dropped
// batch items.
func WithLogger(l *logger.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.log = l
		}
	}
}

// WithMetrics records request and batch metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Provider) { p.metrics = m }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.httpClient = c }
}

// New creates a REST provider. An empty, unparseable or relative base URL is
// a URL-composition error.
func New(cfg Config, opts ...Option) (*Provider, error) {
	cfg.ApplyDefaults()
	if cfg.URL == "" {
		return nil, dataprovider.NewURLError("", "", fmt.Errorf("base url is required"))
	}
	if _, err := httpclient.ParseBaseURL(cfg.URL); err != nil {
		return nil, dataprovider.NewURLError("", "", err)
	}

	p := &Provider{cfg: cfg, log: logger.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.WithComponent("rest").WithFields(logger.Fields("provider", cfg.Name))

	var adapterOpts []httpclient.Option
	if p.httpClient != nil {
		adapterOpts = append(adapterOpts, httpclient.WithHTTPClient(p.httpClient))
	}
	client, err := httpclient.New(httpclient.Config{
		Name:    cfg.Name,
		BaseURL: cfg.URL,
		Timeout: cfg.Timeout,
		Headers: cfg.Headers,
	}, adapterOpts...)
	if err != nil {
		return nil, dataprovider.NewURLError("", "", err)
	}
	p.client = client
	return p, nil
}

// NewFactory returns a registry factory that builds providers from raw
// configuration maps with the given options.
func NewFactory(opts ...Option) provider.Factory[dataprovider.DataProvider] {
	return func(raw map[string]any) (dataprovider.DataProvider, error) {
		cfg, err := DecodeConfig(raw)
		if err != nil {
			return nil, fmt.Errorf("rest: decode config: %w", err)
		}
		p, err := New(cfg, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// Factory builds a provider from a raw configuration map without options.
func Factory(raw map[string]any) (dataprovider.DataProvider, error) {
	return NewFactory()(raw)
}

// Name returns the configured provider name.
func (p *Provider) Name() string { return p.cfg.Name }

// IsAvailable reports whether the provider can issue requests. It does not
// contact the backend.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	return p.client.IsAvailable(ctx)
}

// Close releases idle connections.
func (p *Provider) Close(ctx context.Context) error {
	return p.client.Close(ctx)
}

// Config returns the effective configuration.
func (p *Provider) Config() Config { return p.cfg }
