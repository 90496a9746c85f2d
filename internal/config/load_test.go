package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_NoConfig(t *testing.T) {
	tmp := t.TempDir()
	cfg, path, xe := LoadConfig(Options{WorkDir: tmp, Paths: &Paths{Dir: tmp}})
	if xe != nil {
		t.Fatalf("unexpected error: %v", xe)
	}
	if path != "" {
		t.Fatalf("expected empty path, got %q", path)
	}
	if cfg.Backend != "" {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfig_ExplicitConfigMissing(t *testing.T) {
	tmp := t.TempDir()
	_, _, xe := LoadConfig(Options{WorkDir: tmp, Paths: &Paths{Dir: tmp}, ConfigPath: "no_such.yaml"})
	if xe == nil {
		t.Fatal("expected error")
	}
	if xe.Code != "ERR_CFG_NOT_FOUND" {
		t.Fatalf("expected ERR_CFG_NOT_FOUND, got %s", xe.Code)
	}
}

func TestLoadConfig_WorkDirConfig(t *testing.T) {
	tmp := t.TempDir()
	path := writeConfig(t, tmp, `backend: file
format: json
log_level: debug
mcp:
  transport: streamable_http
  http:
    addr: 127.0.0.1:9000
    auth_token: keyring:mcp/token
`)

	file, cfgPath, xe := LoadConfig(Options{WorkDir: tmp, Paths: &Paths{Dir: t.TempDir()}})
	if xe != nil {
		t.Fatalf("unexpected error: %v", xe)
	}
	if cfgPath != path {
		t.Fatalf("expected path %q, got %q", path, cfgPath)
	}
	if file.Backend != "file" {
		t.Errorf("expected backend=file, got %q", file.Backend)
	}
	if file.Format != "json" {
		t.Errorf("expected format=json, got %q", file.Format)
	}
	if file.LogLevel != "debug" {
		t.Errorf("expected log_level=debug, got %q", file.LogLevel)
	}
	if file.MCP.Transport != "streamable_http" {
		t.Errorf("expected mcp.transport=streamable_http, got %q", file.MCP.Transport)
	}
	if file.MCP.HTTP.Addr != "127.0.0.1:9000" {
		t.Errorf("expected mcp.http.addr, got %q", file.MCP.HTTP.Addr)
	}
	if file.MCP.HTTP.AuthToken != "keyring:mcp/token" {
		t.Errorf("expected mcp.http.auth_token, got %q", file.MCP.HTTP.AuthToken)
	}
}

func TestLoadConfig_AppDirConfig(t *testing.T) {
	workDir := t.TempDir()
	appDir := filepath.Join(t.TempDir(), "keystore")
	path := writeConfig(t, appDir, "backend: native\n")

	file, cfgPath, xe := LoadConfig(Options{WorkDir: workDir, Paths: &Paths{Dir: appDir}})
	if xe != nil {
		t.Fatalf("unexpected error: %v", xe)
	}
	if cfgPath != path {
		t.Fatalf("expected path %q, got %q", path, cfgPath)
	}
	if file.Backend != "native" {
		t.Fatalf("expected backend=native, got %q", file.Backend)
	}
}

func TestLoadConfig_WorkDirTakesPrecedence(t *testing.T) {
	workDir := t.TempDir()
	appDir := t.TempDir()
	writeConfig(t, workDir, "backend: file\n")
	writeConfig(t, appDir, "backend: native\n")

	file, cfgPath, xe := LoadConfig(Options{WorkDir: workDir, Paths: &Paths{Dir: appDir}})
	if xe != nil {
		t.Fatalf("unexpected error: %v", xe)
	}
	if cfgPath != filepath.Join(workDir, ConfigFileName) {
		t.Fatalf("expected work dir config, got %q", cfgPath)
	}
	if file.Backend != "file" {
		t.Fatalf("expected backend from work dir, got %q", file.Backend)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmp := t.TempDir()
	writeConfig(t, tmp, `invalid: yaml: syntax: [`)

	_, _, xe := LoadConfig(Options{WorkDir: tmp, Paths: &Paths{Dir: tmp}})
	if xe == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if xe.Code != "ERR_CFG_INVALID" {
		t.Fatalf("expected ERR_CFG_INVALID, got %s", xe.Code)
	}
}

func TestLoadConfig_ExplicitRelativePath(t *testing.T) {
	tmp := t.TempDir()
	custom := filepath.Join(tmp, "custom.yaml")
	if err := os.WriteFile(custom, []byte("format: yaml\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	file, cfgPath, xe := LoadConfig(Options{WorkDir: tmp, ConfigPath: "custom.yaml"})
	if xe != nil {
		t.Fatalf("unexpected error: %v", xe)
	}
	if cfgPath != custom {
		t.Fatalf("expected path %q, got %q", custom, cfgPath)
	}
	if file.Format != "yaml" {
		t.Fatalf("expected format=yaml, got %q", file.Format)
	}
}
