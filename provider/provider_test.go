package provider

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// testProvider implements the Provider interface for testing.
type testProvider struct {
	name      string
	available bool
}

func (p *testProvider) Name() string                       { return p.name }
func (p *testProvider) IsAvailable(_ context.Context) bool { return p.available }

// closingProvider records Close calls and fails when err is set.
type closingProvider struct {
	testProvider
	closed int
	err    error
}

func (p *closingProvider) Close(_ context.Context) error {
	p.closed++
	return p.err
}

func namedFactory(cfg map[string]any) (*testProvider, error) {
	name, _ := cfg["name"].(string)
	if name == "" {
		return nil, errors.New("name is required")
	}
	return &testProvider{name: name, available: true}, nil
}

func TestRegistryRegisterAndCreate(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	reg.RegisterFactory("test", namedFactory)

	p, err := reg.Create("test", map[string]any{"name": "a"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.Name() != "a" {
		t.Errorf("expected name 'a', got %q", p.Name())
	}
	if _, ok := reg.Get("a"); ok {
		t.Error("Create must not cache instances")
	}
}

func TestRegistryCreateUnregistered(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	reg.RegisterFactory("rest", namedFactory)

	_, err := reg.Create("missing", nil)
	if err == nil {
		t.Fatal("expected error for unregistered factory")
	}
	if !strings.Contains(err.Error(), "not registered") {
		t.Errorf("expected 'not registered' in error, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "rest") {
		t.Errorf("expected available kinds in error, got %q", err.Error())
	}
}

func TestRegistryBuildCaches(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	calls := 0
	reg.RegisterFactory("test", func(cfg map[string]any) (*testProvider, error) {
		calls++
		return namedFactory(cfg)
	})

	first, err := reg.Build("client-a", "test", map[string]any{"name": "client-a"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	second, err := reg.Build("client-a", "test", map[string]any{"name": "ignored"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if first != second {
		t.Error("expected Build to return the cached instance")
	}
	if calls != 1 {
		t.Errorf("expected factory to run once, ran %d times", calls)
	}
}

func TestRegistryBuildFactoryError(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	reg.RegisterFactory("test", namedFactory)

	_, err := reg.Build("broken", "test", map[string]any{})
	if err == nil {
		t.Fatal("expected factory error")
	}
	if !strings.Contains(err.Error(), `provider "broken"`) {
		t.Errorf("expected instance name in error, got %q", err.Error())
	}
	if _, ok := reg.Get("broken"); ok {
		t.Error("failed builds must not be cached")
	}
}

func TestRegistryKindsAndInstances(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	reg.RegisterFactory("beta", namedFactory)
	reg.RegisterFactory("alpha", namedFactory)
	reg.Set("zeta", &testProvider{name: "zeta"})
	reg.Set("eta", &testProvider{name: "eta"})

	kinds := reg.Kinds()
	if len(kinds) != 2 || kinds[0] != "alpha" || kinds[1] != "beta" {
		t.Errorf("expected sorted [alpha beta], got %v", kinds)
	}
	inst := reg.Instances()
	if len(inst) != 2 || inst[0] != "eta" || inst[1] != "zeta" {
		t.Errorf("expected sorted [eta zeta], got %v", inst)
	}
}

func TestRegistryClose(t *testing.T) {
	reg := NewRegistry[Provider]()
	a := &closingProvider{testProvider: testProvider{name: "a"}, err: errors.New("boom")}
	b := &closingProvider{testProvider: testProvider{name: "b"}}
	reg.Set("a", a)
	reg.Set("b", b)
	reg.Set("plain", &testProvider{name: "plain"})

	err := reg.Close(context.Background())
	if err == nil || !strings.Contains(err.Error(), `close provider "a": boom`) {
		t.Errorf("unexpected error %v", err)
	}
	if a.closed != 1 || b.closed != 1 {
		t.Errorf("closed a=%d b=%d, want 1 each", a.closed, b.closed)
	}
	if len(reg.Instances()) != 0 {
		t.Errorf("instances after Close = %v", reg.Instances())
	}

	if err := reg.Close(context.Background()); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if a.closed != 1 {
		t.Error("Close should not reach forgotten instances")
	}
}
