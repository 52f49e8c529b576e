package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/promptcheck/internal/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List model aliases and known pricing",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Aliases:")
		aliases := llm.Aliases()
		providers := make([]string, 0, len(aliases))
		for p := range aliases {
			providers = append(providers, p)
		}
		sort.Strings(providers)
		for _, p := range providers {
			names := make([]string, 0, len(aliases[p]))
			for name := range aliases[p] {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "  %-11s  %-16s  %s\n", p, name, aliases[p][name])
			}
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-28s  %10s  %10s\n", "Model", "In $/MTok", "Out $/MTok")
		fmt.Fprintln(out, strings.Repeat("─", 52))
		for _, id := range llm.PricedModels() {
			c := llm.LookupCost(id)
			marker := ""
			if id == llm.DefaultAnthropicModel {
				marker = "  (default)"
			}
			fmt.Fprintf(out, "%-28s  %10.3f  %10.3f%s\n", id, c.InputPerMTok, c.OutputPerMTok, marker)
		}
	},
}
