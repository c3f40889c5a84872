package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-bomber/internal/config"
)

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		difficulty string
		expected   string
		wantErr    bool
	}{
		{"default", nil, "", "bomberman", false},
		{"normal", nil, "normal", "bomberman", false},
		{"hard flag", nil, "hard", "bomberman_hard", false},
		{"fixed flag", nil, "fixed", "bomberman_fixed", false},
		{"explicit id", []string{"bomberman_easy"}, "hard", "bomberman_easy", false},
		{"unknown id", []string{"pong"}, "", "", true},
		{"unknown difficulty", nil, "insane", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagDifficulty = tt.difficulty
			defer func() { flagDifficulty = "" }()

			got, err := resolveMode(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveMode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("resolveMode() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestListCommand(t *testing.T) {
	var out bytes.Buffer
	listCmd.SetOut(&out)
	defer listCmd.SetOut(nil)

	runList(listCmd, nil)

	for _, want := range []string{"bomberman_hard", "Bomber (Easy)", "bomber play <id>"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("list output missing %q:\n%s", want, out.String())
		}
	}
}

func TestConfigInitWritesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bomberman.yaml")

	var out bytes.Buffer
	configInitCmd.SetOut(&out)
	defer configInitCmd.SetOut(nil)

	if err := configInitCmd.RunE(configInitCmd, []string{path}); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if _, err := config.LoadFile(path); err != nil {
		t.Errorf("LoadFile() of the written config error = %v", err)
	}

	// Refuses to overwrite without --force
	if err := configInitCmd.RunE(configInitCmd, []string{path}); err == nil {
		t.Error("second config init succeeded, expected an error")
	}

	flagConfigForce = true
	defer func() { flagConfigForce = false }()
	if err := os.WriteFile(path, []byte("player: {lives: 9}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := configInitCmd.RunE(configInitCmd, []string{path}); err != nil {
		t.Errorf("config init --force error = %v", err)
	}
}

func TestConfigCheck(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("player:\n  lives: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	configCheckCmd.SetOut(&out)
	defer configCheckCmd.SetOut(nil)

	if err := configCheckCmd.RunE(configCheckCmd, []string{bad}); err == nil {
		t.Error("config check accepted lives: 0")
	}

	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("player:\n  lives: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := configCheckCmd.RunE(configCheckCmd, []string{good}); err != nil {
		t.Errorf("config check error = %v", err)
	}
	if !strings.Contains(out.String(), "is valid") {
		t.Errorf("config check output = %q", out.String())
	}
}
