package backend

import (
	"errors"
	"log"
)

type Kind string

const (
	KindBase  Kind = "base"
	KindSlurm Kind = "slurm"
	KindLocal Kind = "local"
)

var (
	// ErrKindMismatch is returned when Sync is handed defaults for a
	// different backend kind. The receiver is left untouched.
	ErrKindMismatch = errors.New("backend kind mismatch")

	// ErrAlreadyPrepared is returned when PrepareScript is called after the
	// run script has already transitioned from literal text to a file path.
	ErrAlreadyPrepared = errors.New("run script already prepared")
)

// Options is the configuration shared by every backend kind. RunScript is
// dual-state: literal script text (or a template path) until PrepareScript
// runs, the written script's path afterwards.
type Options struct {
	Kind             Kind     `yaml:"kind"`
	Name             string   `yaml:"name"`
	RunScript        string   `yaml:"run_script"`
	RunArgs          string   `yaml:"run_args"`
	OptionsMarker    string   `yaml:"options_marker"`
	RequiredCommands []string `yaml:"required_commands"`

	prepared bool
}

// Sync fills every empty field from other. Set fields are never
// overwritten, so repeated calls with the same defaults are no-ops.
func (o *Options) Sync(other *Options) error {
	if other == nil {
		return nil
	}
	if other.Kind != o.Kind {
		log.Printf("(%s) cannot sync %s backend from %s defaults", o.Name, o.Kind, other.Kind)
		return ErrKindMismatch
	}
	fill(&o.Name, other.Name)
	fill(&o.RunScript, other.RunScript)
	fill(&o.RunArgs, other.RunArgs)
	fill(&o.OptionsMarker, other.OptionsMarker)
	if len(o.RequiredCommands) == 0 && len(other.RequiredCommands) > 0 {
		o.RequiredCommands = append([]string(nil), other.RequiredCommands...)
	}
	return nil
}

func fill[T comparable](dst *T, src T) {
	var zero T
	if *dst == zero {
		*dst = src
	}
}
