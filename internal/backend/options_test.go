package backend

import (
	"errors"
	"reflect"
	"testing"
)

func TestSyncFillsEmptyFields(t *testing.T) {
	opts := Options{Kind: KindSlurm, Name: "analyze"}
	defaults := Options{
		Kind:             KindSlurm,
		Name:             "template",
		RunArgs:          "--partition=short",
		RequiredCommands: []string{"sbatch"},
	}

	if err := opts.Sync(&defaults); err != nil {
		t.Fatalf("sync: %v", err)
	}

	if opts.Name != "analyze" {
		t.Errorf("set field overwritten: got %q", opts.Name)
	}
	if opts.RunArgs != "--partition=short" {
		t.Errorf("expected run args filled, got %q", opts.RunArgs)
	}
	if len(opts.RequiredCommands) != 1 || opts.RequiredCommands[0] != "sbatch" {
		t.Errorf("expected required commands filled, got %v", opts.RequiredCommands)
	}
}

func TestSyncIdempotent(t *testing.T) {
	opts := Options{Kind: KindSlurm, Name: "analyze"}
	defaults := Options{Kind: KindSlurm, RunArgs: "--mem=4G", OptionsMarker: "SBATCH"}

	if err := opts.Sync(&defaults); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	once := opts
	if err := opts.Sync(&defaults); err != nil {
		t.Fatalf("second sync: %v", err)
	}

	if !reflect.DeepEqual(once, opts) {
		t.Errorf("second sync changed options: %+v vs %+v", once, opts)
	}
}

func TestSyncKindMismatch(t *testing.T) {
	opts := Options{Kind: KindSlurm, Name: "analyze", RunArgs: "--mem=4G"}
	before := opts
	defaults := Options{Kind: KindLocal, RunArgs: "--fast", RunScript: "echo hi"}

	err := opts.Sync(&defaults)
	if !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("expected ErrKindMismatch, got %v", err)
	}
	if !reflect.DeepEqual(before, opts) {
		t.Errorf("receiver changed on mismatch: %+v vs %+v", before, opts)
	}
}

func TestSyncNilIsNoop(t *testing.T) {
	opts := Options{Kind: KindLocal, Name: "analyze"}
	before := opts

	if err := opts.Sync(nil); err != nil {
		t.Fatalf("sync nil: %v", err)
	}
	if !reflect.DeepEqual(before, opts) {
		t.Errorf("receiver changed on nil sync")
	}
}

func TestNewSlurmDefaults(t *testing.T) {
	b := NewSlurm(Options{Name: "fit"})

	opts := b.Options()
	if opts.Kind != KindSlurm {
		t.Errorf("expected slurm kind, got %s", opts.Kind)
	}
	if opts.OptionsMarker != "SBATCH" {
		t.Errorf("expected SBATCH marker, got %q", opts.OptionsMarker)
	}
	if len(opts.RequiredCommands) == 0 {
		t.Error("expected required commands")
	}
}

func TestNewSlurmKeepsExplicitMarker(t *testing.T) {
	b := NewSlurm(Options{Name: "fit", OptionsMarker: "QOPT", RequiredCommands: []string{"qsub"}})

	opts := b.Options()
	if opts.OptionsMarker != "QOPT" {
		t.Errorf("explicit marker overwritten: %q", opts.OptionsMarker)
	}
	if len(opts.RequiredCommands) != 1 || opts.RequiredCommands[0] != "qsub" {
		t.Errorf("explicit commands overwritten: %v", opts.RequiredCommands)
	}
}
