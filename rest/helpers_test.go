package rest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/kbukum/dataprovider/jsonserver"
)

// recorder is an httptest backend that remembers "METHOD /path?query" for
// every request it serves.
type recorder struct {
	*httptest.Server
	mu       sync.Mutex
	requests []string
}

func newRecorder(t *testing.T, handler http.HandlerFunc) *recorder {
	t.Helper()
	rec := &recorder{}
	rec.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		line := r.Method + " " + r.URL.Path
		if r.URL.RawQuery != "" {
			line += "?" + r.URL.RawQuery
		}
		rec.mu.Lock()
		rec.requests = append(rec.requests, line)
		rec.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(rec.Close)
	return rec
}

func (r *recorder) Requests() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.requests...)
}

// newJSONServer starts an in-memory json-server seeded with sample data.
func newJSONServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(jsonserver.New(jsonserver.NewStore(jsonserver.SampleData())).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func newProvider(t *testing.T, url string, opts ...Option) *Provider {
	t.Helper()
	return newProviderWith(t, Config{Name: "test", URL: url}, opts...)
}

func newProviderWith(t *testing.T, cfg Config, opts ...Option) *Provider {
	t.Helper()
	p, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(t.Context()) })
	return p
}
