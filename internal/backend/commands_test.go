package backend

import (
	"testing"

	"github.com/gridbatch/tracker/internal/config"
)

const missingCommand = "tracker-definitely-not-installed"

func TestCheckCommandsAllPresent(t *testing.T) {
	opts := Options{Name: "fit", Kind: KindLocal, RequiredCommands: []string{"sh"}}

	mode, err := opts.CheckCommands(config.ModeRun, nil)
	if err != nil {
		t.Fatalf("check commands: %v", err)
	}
	if mode != config.ModeRun {
		t.Errorf("mode changed: %s", mode)
	}
}

func TestCheckCommandsSkippedInTestMode(t *testing.T) {
	opts := Options{Name: "fit", Kind: KindSlurm, RequiredCommands: []string{missingCommand}}

	asked := false
	decide := func(string) bool {
		asked = true
		return false
	}

	mode, err := opts.CheckCommands(config.ModeTest, decide)
	if err != nil {
		t.Fatalf("check commands: %v", err)
	}
	if mode != config.ModeTest {
		t.Errorf("mode changed: %s", mode)
	}
	if asked {
		t.Error("decider consulted in test mode")
	}
}

func TestCheckCommandsMissingSwitchesToTestMode(t *testing.T) {
	opts := Options{Name: "fit", Kind: KindSlurm, RequiredCommands: []string{missingCommand}}

	mode, err := opts.CheckCommands(config.ModeRun, func(string) bool { return true })
	if err != nil {
		t.Fatalf("check commands: %v", err)
	}
	if mode != config.ModeTest {
		t.Errorf("expected switch to test mode, got %s", mode)
	}
}

func TestCheckCommandsMissingDeclinedFails(t *testing.T) {
	opts := Options{Name: "fit", Kind: KindSlurm, RequiredCommands: []string{missingCommand}}

	if _, err := opts.CheckCommands(config.ModeRun, func(string) bool { return false }); err == nil {
		t.Error("expected error for missing command")
	}
	if _, err := opts.CheckCommands(config.ModeRun, nil); err == nil {
		t.Error("expected error with nil decider")
	}
}
