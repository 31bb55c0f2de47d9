package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/hanzimem/internal/queue"
)

func TestLoadFileMissingIsEmpty(t *testing.T) {
	fc, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if fc.Practice.BatchSize != nil {
		t.Error("missing file should resolve to empty config")
	}
}

func TestLoadLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[practice]
learner = "amy"
batch-size = 10
policy = "alternate"

[server]
listen = "127.0.0.1:9000"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HANZIMEM_BATCH_SIZE", "15")
	t.Setenv("HANZIMEM_DB", "/tmp/override.db")
	t.Setenv("HANZIMEM_LEARNER", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Learner != "amy" {
		t.Errorf("learner = %q, want amy from file", cfg.Learner)
	}
	if cfg.BatchSize != 15 {
		t.Errorf("batch size = %d, want env override 15", cfg.BatchSize)
	}
	if cfg.PoolWindow != queue.DefaultPoolWindow {
		t.Errorf("pool window = %d, want default %d", cfg.PoolWindow, queue.DefaultPoolWindow)
	}
	if cfg.DBPath != "/tmp/override.db" {
		t.Errorf("db path = %q, want env override", cfg.DBPath)
	}
	if cfg.ListenAddr != "127.0.0.1:9000" {
		t.Errorf("listen = %q, want file value", cfg.ListenAddr)
	}

	policy, err := cfg.OrderingPolicy()
	if err != nil {
		t.Fatalf("OrderingPolicy: %v", err)
	}
	if _, ok := policy.(queue.Alternate); !ok {
		t.Errorf("policy = %T, want Alternate", policy)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.BatchSize = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero batch size accepted")
	}

	cfg = Default()
	cfg.Policy = "shuffled"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown policy accepted")
	}
}

func TestDefaultPathHonorsEnv(t *testing.T) {
	t.Setenv("HANZIMEM_CONFIG", "/etc/hanzimem.toml")
	if got := DefaultPath(); got != "/etc/hanzimem.toml" {
		t.Errorf("DefaultPath = %q, want HANZIMEM_CONFIG value", got)
	}

	t.Setenv("HANZIMEM_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	want := filepath.Join("/xdg", "hanzimem", "config.toml")
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}
