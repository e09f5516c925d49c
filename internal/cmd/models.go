package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skel-ai/go-responder/internal/capability"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List known model families and their capabilities",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	oracle := capability.NewStatic()
	for _, family := range oracle.Models() {
		d, ok := oracle.Lookup(family)
		if !ok {
			continue
		}
		var traits []string
		if d.Reasoning {
			traits = append(traits, "reasoning")
		}
		if capability.IsDeepResearch(family) {
			traits = append(traits, "deep-research")
		}
		if family == capability.ComputerUseModel {
			traits = append(traits, "computer-use")
		}
		fmt.Printf("%s\n", family)
		if len(traits) > 0 {
			fmt.Printf("  traits: %s\n", strings.Join(traits, ", "))
		}
		fmt.Printf("  tools: %s\n", joinSet(d.Tools))
		fmt.Printf("  parameters: %s\n", joinSet(d.Parameters))
	}
	return nil
}

func joinSet(set map[string]bool) string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
