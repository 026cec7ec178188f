package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sketchflow/sketchflow/pkg/convert"
	"github.com/sketchflow/sketchflow/pkg/pipeline"
	"github.com/sketchflow/sketchflow/pkg/pipeline/config"
)

func resumeCmd() *cobra.Command {
	var (
		format         string
		configFile     string
		checkpointPath string
		output         string
	)

	cmd := &cobra.Command{
		Use:   "resume <job-id>",
		Short: "Resume an interrupted conversion from its latest checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID := args[0]

			f, err := convert.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if checkpointPath != "" {
				cfg = cfg.Merge(config.New(map[string]any{"checkpoint_path": checkpointPath}))
			}

			store, err := checkpointStore(cfg)
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("resume requires a checkpoint store, set --checkpoint or CHECKPOINT_PATH")
			}
			defer store.Close()

			p, err := convert.FromConfig(cfg,
				convert.WithRunOptions(pipeline.WithCheckpointStore(store)))
			if err != nil {
				return err
			}

			result, err := p.Resume(cmd.Context(), f, store, jobID)
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, []byte(result.Code+"\n"), 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				return nil
			}
			fmt.Println(result.Code)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "mermaid", "target format of the interrupted run")
	cmd.Flags().StringVar(&configFile, "config", "", "configuration file (yaml, toml or json)")
	cmd.Flags().StringVar(&checkpointPath, "checkpoint", "", "sqlite file for run checkpoints")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write diagram code to this file instead of stdout")

	return cmd
}
