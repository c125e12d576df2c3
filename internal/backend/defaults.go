package backend

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDefaults reads a YAML backend-defaults document. The result is meant
// to be used as a Sync source for backends of the same kind.
func LoadDefaults(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read defaults: %w", err)
	}
	return ParseDefaults(data)
}

func ParseDefaults(data []byte) (*Options, error) {
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("yaml parse: %w", err)
	}

	switch opts.Kind {
	case KindBase, KindSlurm, KindLocal:
	default:
		return nil, fmt.Errorf("unknown backend kind: %q", opts.Kind)
	}

	return &opts, nil
}
