package main

import (
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sketchflow/sketchflow/pkg/convert"
	"github.com/sketchflow/sketchflow/pkg/pipeline"
	"github.com/sketchflow/sketchflow/pkg/pipeline/checkpoint"
	"github.com/sketchflow/sketchflow/pkg/pipeline/config"
)

type convertFlags struct {
	image           string
	format          string
	notes           string
	output          string
	configFile      string
	visionModel     string
	generationModel string
	temperature     float64
	maxAttempts     int
	mmdcBin         string
	mmdcTimeout     time.Duration
	checkpointPath  string
	jobID           string
	jsonOut         bool
}

func convertCmd() *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a sketch image to diagram code",
		Example: `  sketchflow convert -i sketch.png -f mermaid
  sketchflow convert -i whiteboard.jpg -f drawio -o diagram.drawio
  sketchflow convert -i flow.png -f plantuml --notes "login flow, 3 services"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd, &flags)
		},
	}

	cmd.Flags().StringVarP(&flags.image, "image", "i", "", "sketch image file (png, jpeg, webp)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "mermaid", "target format: mermaid, drawio or plantuml")
	cmd.Flags().StringVar(&flags.notes, "notes", "", "hints about the sketch forwarded to the vision model")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write diagram code to this file instead of stdout")
	cmd.Flags().StringVar(&flags.configFile, "config", "", "configuration file (yaml, toml or json)")
	cmd.Flags().StringVar(&flags.visionModel, "vision-model", "", "model used to describe the sketch")
	cmd.Flags().StringVar(&flags.generationModel, "generation-model", "", "model used to generate diagram code")
	cmd.Flags().Float64Var(&flags.temperature, "temperature", 0, "sampling temperature for both models")
	cmd.Flags().IntVar(&flags.maxAttempts, "max-attempts", 0, "generation attempt budget")
	cmd.Flags().StringVar(&flags.mmdcBin, "mmdc-bin", "", "mermaid-cli binary used for validation")
	cmd.Flags().DurationVar(&flags.mmdcTimeout, "mmdc-timeout", 0, "mermaid-cli timeout")
	cmd.Flags().StringVar(&flags.checkpointPath, "checkpoint", "", "sqlite file for run checkpoints")
	cmd.Flags().StringVar(&flags.jobID, "job-id", "", "explicit job identifier")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "print the full result as JSON")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func runConvert(cmd *cobra.Command, flags *convertFlags) error {
	format, err := convert.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	image, err := os.ReadFile(flags.image)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	var opts []convert.Option
	store, err := checkpointStore(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		opts = append(opts, convert.WithRunOptions(pipeline.WithCheckpointStore(store)))
	}

	p, err := convert.FromConfig(cfg, opts...)
	if err != nil {
		return err
	}

	result, err := p.Convert(cmd.Context(), convert.Request{
		Image:     image,
		ImageMIME: imageMIME(flags.image),
		Format:    format,
		Notes:     flags.notes,
		JobID:     flags.jobID,
	})
	if err != nil {
		return err
	}
	return emit(flags, result)
}

// loadConfig layers file config, environment overrides, and explicitly set
// flags, in that order of increasing precedence.
func loadConfig(cmd *cobra.Command, flags *convertFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return config.Config{}, err
	}

	overrides := map[string]any{}
	set := func(flag, key string, val any) {
		if cmd.Flags().Changed(flag) {
			overrides[key] = val
		}
	}
	set("vision-model", "vision_model", flags.visionModel)
	set("generation-model", "generation_model", flags.generationModel)
	set("temperature", "temperature", flags.temperature)
	set("max-attempts", "max_attempts", flags.maxAttempts)
	set("mmdc-bin", "mmdc_bin", flags.mmdcBin)
	set("mmdc-timeout", "mmdc_timeout", flags.mmdcTimeout)
	set("checkpoint", "checkpoint_path", flags.checkpointPath)

	return cfg.Merge(config.New(overrides)), nil
}

func checkpointStore(cfg config.Config) (checkpoint.Store, error) {
	path := cfg.String("checkpoint_path", "")
	if path == "" {
		return nil, nil
	}
	store, err := checkpoint.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint store: %w", err)
	}
	return store, nil
}

func imageMIME(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "image/png"
}

func emit(flags *convertFlags, result *convert.Result) error {
	if flags.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if !result.ValidationPassed {
		fmt.Fprintf(os.Stderr, "warning: validation did not pass after %d attempts\n", result.Attempts)
		for _, issue := range result.Issues {
			fmt.Fprintln(os.Stderr, "  -", issue)
		}
	} else if result.ValidationSkipped {
		fmt.Fprintln(os.Stderr, "warning: validation skipped, code is unverified")
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, []byte(result.Code+"\n"), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s (%s, job %s)\n", flags.output, result.Format, result.JobID)
		return nil
	}
	fmt.Println(result.Code)
	return nil
}
