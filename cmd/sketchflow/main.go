// Command sketchflow converts sketch images into diagram code using a
// multi-stage LLM pipeline.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sketchflow",
		Short: "Convert diagram sketches into Mermaid, draw.io or PlantUML code",
		Long: `sketchflow reads a sketch image, describes it with a vision model, and
generates diagram code in the requested format. Generated code is validated
and regenerated with correction feedback until it passes or the attempt
budget runs out.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(convertCmd(), resumeCmd())
	return root
}
