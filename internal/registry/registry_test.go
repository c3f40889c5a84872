package registry

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
)

type stubGame struct {
	id  string
	cfg config.BombermanConfig
}

func (g *stubGame) ID() string               { return g.id }
func (g *stubGame) Title() string            { return strings.ToUpper(g.id) }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Render(*core.Screen)      {}
func (g *stubGame) State() core.GameState    { return core.GameState{} }
func (g *stubGame) Step(core.InputFrame) core.StepResult {
	return core.StepResult{}
}
func (g *stubGame) Advance(core.InputFrame, time.Duration) core.StepResult {
	return core.StepResult{}
}

func TestRegisterCreateList(t *testing.T) {
	Register("zz_stub", func(cfg config.BombermanConfig) Game {
		return &stubGame{id: "zz_stub", cfg: cfg}
	})

	if !Exists("zz_stub") {
		t.Fatal("Exists() = false after Register")
	}

	cfg := config.DefaultBombermanConfig()
	cfg.Player.Lives = 9
	g, err := Create("zz_stub", cfg)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.(*stubGame).cfg.Player.Lives != 9 {
		t.Error("Create() did not pass the config to the factory")
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz_stub" {
			found = true
			if info.Title != "ZZ_STUB" {
				t.Errorf("Title = %q, expected ZZ_STUB", info.Title)
			}
		}
	}
	if !found {
		t.Error("List() does not contain registered mode")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does_not_exist", config.DefaultBombermanConfig()); err == nil {
		t.Error("Create() with unknown id should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func(config.BombermanConfig) Game { return &stubGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_dup", func(config.BombermanConfig) Game { return &stubGame{id: "zz_dup"} })
}
