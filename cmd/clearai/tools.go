package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List registered tools",
	Long: `List the tools available to the planner: the builtin demo tools
plus anything registered from a manifest. The planner only binds actions
to tools on this list; proposals referencing anything else are dropped.`,
	Example: `  # Builtins only
  clearai tools

  # Include a manifest
  clearai tools --tools manifest.yaml --output json`,
	RunE: runToolsCmd,
}

var (
	toolsOutput   string
	toolsManifest string
)

func init() {
	toolsCmd.Flags().StringVarP(&toolsOutput, "output", "o", "text", "Output format: text, yaml, json")
	toolsCmd.Flags().StringVar(&toolsManifest, "tools", "", "Tool manifest YAML file to register")
}

func runToolsCmd(cmd *cobra.Command, args []string) error {
	registry, err := buildRegistry(toolsManifest)
	if err != nil {
		return err
	}

	descriptors := registry.GetAllTools()

	switch toolsOutput {
	case "json":
		return outputJSON(cmd, descriptors)
	case "yaml":
		return outputYAML(cmd, descriptors)
	case "text":
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", color.New(color.Bold).Sprintf("Tools (%d):", len(descriptors)))
		for _, d := range descriptors {
			fmt.Fprintf(out, "  %-8s %s\n", d.Name, d.Description)
		}
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (must be text, yaml, or json)", toolsOutput)
	}
}
