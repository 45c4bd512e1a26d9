package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/stockdesk/pkg/access"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" || !cfg.App.IsProd() {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}
	if cfg.Remote.Endpoint != "https://remote.example.com/graphql" {
		t.Fatalf("unexpected endpoint %q", cfg.Remote.Endpoint)
	}
	if cfg.Remote.RequestTimeout != 30*time.Second {
		t.Fatalf("expected default request timeout 30s, got %v", cfg.Remote.RequestTimeout)
	}
	if cfg.Remote.ProbeTimeout != 5*time.Second {
		t.Fatalf("expected default probe timeout 5s, got %v", cfg.Remote.ProbeTimeout)
	}
	if cfg.Remote.MaxErrorBody != 64<<10 {
		t.Fatalf("unexpected max error body %d", cfg.Remote.MaxErrorBody)
	}
	if len(cfg.Gateway.AllowedOrigins) != 1 || cfg.Gateway.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected origins %v", cfg.Gateway.AllowedOrigins)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvRemoteEndpoint); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvRemoteEndpoint, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_ParsesRoles(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvAccessRoles, "viewer:catalog.read,boss:*")
	t.Setenv(EnvDefaultRole, "viewer")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	policy, err := cfg.Access.Policy()
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	if !policy.Allows("boss", access.PermReportsRead) {
		t.Fatal("expected wildcard role to allow reports")
	}
	if policy.Allows("viewer", access.PermOrdersRead) {
		t.Fatal("viewer should only read the catalog")
	}
}

func TestValidate_AggregatesProblems(t *testing.T) {
	cfg := Config{
		Remote: RemoteConfig{Endpoint: "ftp://remote", RequestTimeout: 0, ProbeTimeout: time.Second},
		Access: AccessConfig{DefaultRole: "ghost"},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{EnvRemoteEndpoint, EnvRemoteTimeout, "ghost"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvPort, "8090")
	t.Setenv(EnvRemoteEndpoint, "https://remote.example.com/graphql")
}
