package backend

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultShebang = "#!/bin/bash\n"

// guardBlock re-executes the whole script inside the container image unless
// the runtime's own sentinel variable shows it already runs in one.
func guardBlock(image string) string {
	return fmt.Sprintf("if [[ -z \"$APPTAINER_CONTAINER\" ]]\nthen\n  apptainer exec %s $0 $@\n  exit $?\nfi\n", image)
}

// PrepareScript finalizes the run script and writes it to
// <outputDir>/<name>. If RunScript names a readable file its contents are
// inlined first; a shebang line is prepended when missing; with a non-empty
// containerImage the isolation guard is injected after any scheduler
// directive lines. Afterwards RunScript holds the written path, and a second
// call fails with ErrAlreadyPrepared.
func (o *Options) PrepareScript(outputDir, containerImage string) error {
	if o.prepared {
		return ErrAlreadyPrepared
	}
	text := o.RunScript
	if info, err := os.Stat(text); err == nil && info.Mode().IsRegular() {
		data, err := os.ReadFile(text)
		if err != nil {
			return fmt.Errorf("read script template %s: %w", text, err)
		}
		text = string(data)
	}
	if !strings.HasPrefix(text, "#!") {
		text = defaultShebang + text
	}
	if containerImage != "" {
		text = injectGuard(text, guardBlock(containerImage), o.OptionsMarker)
	}
	path := filepath.Join(outputDir, o.Name)
	if err := os.WriteFile(path, []byte(text), 0o755); err != nil {
		return fmt.Errorf("write run script: %w", err)
	}
	o.RunScript = path
	o.prepared = true
	return nil
}

// Prepared reports whether the run script has been written out.
func (o *Options) Prepared() bool {
	return o.prepared
}

// injectGuard inserts block at the one position that runs after every
// scheduler directive line and before the first executable statement.
// A line counts as still inside the directive header while the remaining
// tail contains another "#<marker>" occurrence, so blank separator lines
// between directives do not end the header early.
func injectGuard(script, block, marker string) string {
	var head strings.Builder
	rest := script
	for {
		line, tail, _ := strings.Cut(rest, "\n")
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			// First executable statement: the guard must run before it.
			return head.String() + block + line + "\n" + tail
		}
		head.WriteString(line)
		head.WriteString("\n")
		if marker == "" || !strings.Contains(tail, "#"+marker) {
			// No directive lines ahead, insert right here.
			return head.String() + block + tail
		}
		rest = tail
	}
}
