package memory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// LoadSnapshot reads a working-memory snapshot from a YAML file. Used by the
// CLI to seed planning context; the library itself accepts snapshots from any
// source.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.WrapError(types.MEMORY_LOAD_FAILED,
			fmt.Sprintf("failed to read snapshot file: %s", path), err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, types.WrapError(types.MEMORY_LOAD_FAILED,
			fmt.Sprintf("failed to parse snapshot file: %s", path), err)
	}

	return &snap, nil
}
