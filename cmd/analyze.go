package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var analyzeShowClaims bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Verify a piece of text and print its trust score",
	Long:  "Runs the full verification pipeline on the given text (or stdin when no argument is given) and prints the result as JSON.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		if len(args) == 1 {
			text = args[0]
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return eris.Wrap(err, "read stdin")
			}
			text = string(data)
		}
		if strings.TrimSpace(text) == "" {
			return eris.New("no text to analyze")
		}

		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		summary, err := env.Orchestrator.Analyze(cmd.Context(), text)
		if err != nil {
			return err
		}

		out := json.NewEncoder(os.Stdout)
		out.SetIndent("", "  ")
		if err := out.Encode(summary); err != nil {
			return eris.Wrap(err, "encode summary")
		}

		if analyzeShowClaims {
			claims, err := env.Orchestrator.Claims(cmd.Context(), summary.AnalysisID)
			if err != nil {
				return err
			}
			if err := out.Encode(claims); err != nil {
				return eris.Wrap(err, "encode claims")
			}
		}

		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeShowClaims, "claims", false, "also print per-claim verdicts")
	rootCmd.AddCommand(analyzeCmd)
}
