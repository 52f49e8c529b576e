package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [prompt...]",
	Short: "Evaluate one prompt and print the JSON result",
	Long: "Evaluate a student prompt once, the same way the endpoint does. " +
		"The prompt is taken from the arguments, or from stdin when no arguments are given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy, _ := cmd.Flags().GetString("strategy")
		pretty, _ := cmd.Flags().GetBool("pretty")

		prompt, err := readPrompt(args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		rt, err := bootstrap(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		body, err := json.Marshal(map[string]string{
			"student_prompt": prompt,
			"strategy":       strategy,
		})
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}

		resp := rt.handler.Handle(cmd.Context(), http.MethodPost, body)

		out := resp.Body
		if pretty {
			var buf bytes.Buffer
			if err := json.Indent(&buf, resp.Body, "", "  "); err == nil {
				out = buf.Bytes()
			}
		}

		if resp.Status != http.StatusOK {
			fmt.Fprintln(cmd.ErrOrStderr(), string(out))
			return fmt.Errorf("evaluation failed with status %d", resp.Status)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	evaluateCmd.Flags().String("strategy", "", "Rubric strategy: beginner_3w (default) or intermediate_kaf")
	evaluateCmd.Flags().Bool("pretty", false, "Indent the JSON output")
}

// readPrompt joins the arguments, or reads all of in when there are none.
// Stdin input loses one trailing newline only.
func readPrompt(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if f, ok := in.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no prompt given: pass it as arguments or pipe it on stdin")
		}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read prompt from stdin: %w", err)
	}
	s := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}
