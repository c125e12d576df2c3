package backend

// Directive marker and tooling of the slurm scheduler. Submission scripts
// carry their options as #SBATCH comment lines that must stay contiguous at
// the top of the file.
const slurmMarker = "SBATCH"

var slurmCommands = []string{"sbatch", "scancel", "squeue", "sacct"}

// Slurm prepares sbatch submission scripts. The scheduler interaction
// itself happens outside this package, so the capability set stays stubbed.
type Slurm struct {
	Stub
}

func NewSlurm(opts Options) *Slurm {
	opts.Kind = KindSlurm
	fill(&opts.OptionsMarker, slurmMarker)
	if len(opts.RequiredCommands) == 0 {
		opts.RequiredCommands = append([]string(nil), slurmCommands...)
	}
	return &Slurm{Stub{opts: opts}}
}
