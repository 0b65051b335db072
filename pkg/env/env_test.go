package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnvironment_Precedence(t *testing.T) {
	low := NewMapSource("low", map[string]string{"a": "low", "b": "low"})
	high := NewMapSource("high", map[string]string{"a": "high"})

	e := New(low)
	e.AddFirst(high)

	if v, _ := e.Property("a"); v != "high" {
		t.Errorf("a = %q, want high", v)
	}
	if v, _ := e.Property("b"); v != "low" {
		t.Errorf("b = %q, want low", v)
	}
	if _, ok := e.Property("missing.key"); ok {
		t.Error("missing.key should be absent")
	}
	if got := e.PropertyOrDefault("missing.key", "x"); got != "x" {
		t.Errorf("PropertyOrDefault = %q", got)
	}

	e.AddLast(NewMapSource("last", map[string]string{"c": "last"}))
	srcs := e.Sources()
	if len(srcs) != 3 || srcs[0].Name() != "high" || srcs[2].Name() != "last" {
		t.Errorf("unexpected source order")
	}
}

func TestSystemEnvironmentSource_Relaxed(t *testing.T) {
	vars := map[string]string{
		"SERVER_PORT":  "8080",
		"app.name":     "demo",
		"LOG_NO_COLOR": "true",
	}
	s := &SystemEnvironmentSource{lookup: func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}}

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"server.port", "8080", true},
		{"server-port", "8080", true},
		{"app.name", "demo", true},
		{"log.no-color", "true", true},
		{"missing.key", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := s.Property(tt.key)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Property(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFileSource_Flatten(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.toml")
	content := `
name = "demo"

[server]
port = 8080
enabled = true

[server.tls]
cert = "/etc/cert.pem"

[cluster]
peers = ["a", "b"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	fs, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}

	want := map[string]string{
		"name":             "demo",
		"server.port":      "8080",
		"server.enabled":   "true",
		"server.tls.cert":  "/etc/cert.pem",
		"cluster.peers[0]": "a",
		"cluster.peers[1]": "b",
	}
	for k, v := range want {
		if got, ok := fs.Property(k); !ok || got != v {
			t.Errorf("Property(%q) = %q, %v; want %q", k, got, ok, v)
		}
	}
	if len(fs.Keys()) != len(want) {
		t.Errorf("Keys() = %v", fs.Keys())
	}
}

func TestFileSource_ReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.toml")
	if err := os.WriteFile(path, []byte(`a = "1"`), 0o644); err != nil {
		t.Fatal(err)
	}
	fs, err := NewFileSource(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(`a = = broken`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := fs.Reload(); err == nil {
		t.Fatal("expected parse error")
	}
	if v, _ := fs.Property("a"); v != "1" {
		t.Errorf("a = %q after failed reload, want 1", v)
	}
}

func TestNewFileSource_Missing(t *testing.T) {
	if _, err := NewFileSource(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
