package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "promptcheck",
	Short: "Grade student prompts against a rubric",
	Long: "promptcheck — serverless endpoint that sends a student-authored prompt to an LLM " +
		"and returns a rubric evaluation with segments, tips and an improved prompt.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lambdaCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(versionCmd)
}
