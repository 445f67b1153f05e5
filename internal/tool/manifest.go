package tool

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// Manifest declares the tools to register, loaded from YAML.
type Manifest struct {
	Tools []ManifestEntry `yaml:"tools"`
}

// ManifestEntry configures one tool instance. Kind selects the builtin
// implementation; Config holds kind-specific settings decoded with
// mapstructure (durations accept Go syntax such as "5s").
type ManifestEntry struct {
	Kind   string         `yaml:"kind"`
	Config map[string]any `yaml:"config,omitempty"`
}

// LoadManifest reads a tool manifest from a YAML file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.WrapError(types.TOOL_MANIFEST_INVALID,
			fmt.Sprintf("failed to read manifest: %s", path), err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, types.WrapError(types.TOOL_MANIFEST_INVALID,
			fmt.Sprintf("failed to parse manifest: %s", path), err)
	}

	return &m, nil
}

// BuildTools instantiates the tools a manifest declares.
func BuildTools(m *Manifest) ([]Tool, error) {
	tools := make([]Tool, 0, len(m.Tools))

	for i, entry := range m.Tools {
		t, err := buildTool(entry)
		if err != nil {
			return nil, types.WrapError(types.TOOL_MANIFEST_INVALID,
				fmt.Sprintf("manifest entry %d (%s) is invalid", i, entry.Kind), err)
		}
		tools = append(tools, t)
	}

	return tools, nil
}

// RegisterManifest loads a manifest file and registers its tools.
func RegisterManifest(r Registry, path string) error {
	m, err := LoadManifest(path)
	if err != nil {
		return err
	}

	tools, err := BuildTools(m)
	if err != nil {
		return err
	}

	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return err
		}
	}

	return nil
}

// RegisterBuiltins registers the default tool set with zero configuration.
func RegisterBuiltins(r Registry) error {
	builtins := []Tool{
		NewEchoTool(EchoConfig{}),
		NewCalcTool(),
		NewWaitTool(WaitConfig{}),
	}

	for _, t := range builtins {
		if err := r.Register(t); err != nil {
			return err
		}
	}

	return nil
}

func buildTool(entry ManifestEntry) (Tool, error) {
	switch entry.Kind {
	case "echo":
		var cfg EchoConfig
		if err := decodeConfig(entry.Config, &cfg); err != nil {
			return nil, err
		}
		return NewEchoTool(cfg), nil

	case "calc":
		return NewCalcTool(), nil

	case "wait":
		var cfg WaitConfig
		if err := decodeConfig(entry.Config, &cfg); err != nil {
			return nil, err
		}
		return NewWaitTool(cfg), nil

	default:
		return nil, fmt.Errorf("unknown tool kind: %q", entry.Kind)
	}
}

// decodeConfig decodes a manifest config map into a typed struct with
// duration string support.
func decodeConfig(config map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     out,
		TagName:    "mapstructure",
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(config); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	return nil
}
