package backend

import (
	"fmt"
	"log"
	"os/exec"

	"github.com/gridbatch/tracker/internal/config"
)

// Decider asks the operator a yes/no question, usually on the console.
type Decider func(question string) bool

// CheckCommands verifies every required command resolves on PATH. In test
// mode the check is skipped. On the first missing command the decider may
// downgrade the run to test mode (submission disabled); if it declines, the
// check fails. The possibly-updated mode is returned to the caller.
func (o *Options) CheckCommands(mode config.Mode, decide Decider) (config.Mode, error) {
	if mode.Test() {
		return mode, nil
	}
	for _, name := range o.RequiredCommands {
		if _, err := exec.LookPath(name); err == nil {
			continue
		}
		log.Printf("(%s) %s command not found: %q", o.Name, o.Kind, name)
		if decide != nil && decide(fmt.Sprintf("Switch to test mode (%s submission will not work)", o.Kind)) {
			return config.ModeTest, nil
		}
		return mode, fmt.Errorf("required command not found: %s", name)
	}
	return mode, nil
}
