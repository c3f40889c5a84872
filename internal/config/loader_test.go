package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bombs:\n  max_bombs: 3\n  range: 2\nplayer:\n  lives: 7\n")

	cfg, used, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if used != path {
		t.Errorf("Load() path = %q, expected %q", used, path)
	}
	if cfg.Bombs.MaxBombs != 3 || cfg.Bombs.Range != 2 || cfg.Player.Lives != 7 {
		t.Errorf("overrides not applied: %+v", cfg.Bombs)
	}
	// Untouched values keep their defaults
	if cfg.Bombs.FuseMS != 3000 || cfg.Grid.Rows != 11 {
		t.Errorf("defaults lost: fuse %d rows %d", cfg.Bombs.FuseMS, cfg.Grid.Rows)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() with missing file should fail")
	}
	if !strings.Contains(err.Error(), "failed to read config") {
		t.Errorf("Load() error = %v, expected read failure", err)
	}
}

func TestLoadFileRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed yaml", "grid: [1, 2\n", "failed to parse config"},
		{"invalid values", "grid:\n  rows: 4\n", "invalid config"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tc.body)
			_, err := LoadFile(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("LoadFile() error = %v, expected %q", err, tc.want)
			}
		})
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, used, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if used != "" {
		t.Errorf("Load() path = %q, expected embedded default", used)
	}
	if cfg != DefaultBombermanConfig() {
		t.Errorf("Load() = %+v, expected defaults", cfg)
	}
}

func TestLoadLocalConfigsDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, filepath.Join(dir, "configs"), "rules:\n  time_limit: 42\n")

	cfg, used, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if used != filepath.Join("configs", FileName) {
		t.Errorf("Load() path = %q, expected configs/%s", used, FileName)
	}
	if cfg.Rules.TimeLimit != 42 {
		t.Errorf("TimeLimit = %d, expected 42", cfg.Rules.TimeLimit)
	}
}

func TestMarshalRoundTripsDefaults(t *testing.T) {
	data, err := Marshal(DefaultBombermanConfig())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	path := writeConfig(t, t.TempDir(), string(data))
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg != DefaultBombermanConfig() {
		t.Error("marshalled defaults did not load back unchanged")
	}
}
