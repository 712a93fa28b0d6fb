package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/draycall/fbxbatch/internal/config"
	"github.com/draycall/fbxbatch/internal/engine"
	"github.com/draycall/fbxbatch/internal/host"
	"github.com/draycall/fbxbatch/internal/logging"
	"github.com/draycall/fbxbatch/internal/scene"
	"github.com/draycall/fbxbatch/internal/tui"
)

// RunParams holds the run command flags. Exported for testing.
type RunParams struct {
	Dir   string
	Files []string
	Sort  string

	NoClean bool
	NoMerge bool
	NoSave  bool
	NoTUI   bool
}

// NewRunCmd creates the "run" command: the full batch pipeline over a
// directory or an explicit file list.
func NewRunCmd() *cobra.Command {
	var params RunParams

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Batch import FBX files, clean and merge each scene",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeRun(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Dir, "dir", "", "directory to scan for *.fbx files")
	cmd.Flags().StringArrayVar(&params.Files, "file", nil, "FBX file to process (repeatable, overrides --dir)")
	cmd.Flags().StringVar(&params.Sort, "sort", "",
		"file order: alphabetical, sizeAscending, sizeDescending, none (default from config)")
	cmd.Flags().BoolVar(&params.NoClean, "no-clean", false, "keep lights, cameras and helpers")
	cmd.Flags().BoolVar(&params.NoMerge, "no-merge", false, "skip the material merge")
	cmd.Flags().BoolVar(&params.NoSave, "no-save", false, "do not save cleaned scenes")
	cmd.Flags().BoolVar(&params.NoTUI, "no-tui", false, "plain log output instead of the progress UI")

	return cmd
}

// GatherFiles resolves the input file list from the configured input
// mode and the run flags. Flag presence overrides the mode: --file
// forces file mode, --dir forces directory mode. Exported for testing.
func GatherFiles(cfg *config.Config, params RunParams) ([]string, error) {
	mode := cfg.Pipeline.Mode
	if len(params.Files) > 0 {
		mode = config.ModeFiles
	} else if params.Dir != "" {
		mode = config.ModeDirectory
	}

	switch mode {
	case config.ModeFiles:
		if len(params.Files) == 0 {
			return nil, errors.New("file mode: pass --file at least once")
		}
		return params.Files, nil
	case config.ModeDirectory:
		if params.Dir == "" {
			return nil, errors.New("directory mode: pass --dir")
		}
		paths, err := engine.ListFBXFiles(params.Dir)
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("no .fbx files found in %s", params.Dir)
		}
		return paths, nil
	default:
		return nil, fmt.Errorf("unknown input mode %q", mode)
	}
}

// buildOptions merges config defaults with the command flags.
func buildOptions(cfg *config.Config, params RunParams) engine.Options {
	sortMode := engine.SortMode(cfg.Pipeline.SortMode)
	if params.Sort != "" {
		sortMode = engine.SortMode(params.Sort)
	}
	return engine.Options{
		SortMode:         sortMode,
		CleanAfterImport: cfg.Pipeline.CleanAfterImport && !params.NoClean,
		MergeAfterClean:  cfg.Pipeline.MergeAfterClean && !params.NoMerge,
		SaveCleanedFiles: cfg.Pipeline.SaveCleanedFiles && !params.NoSave,
	}
}

// requiredCapabilities lists the host routines a run needs. The saver is
// only required when cleaned scenes will be written.
func requiredCapabilities(opts engine.Options) []scene.Capability {
	caps := []scene.Capability{scene.CapabilityGraph, scene.CapabilityMesh, scene.CapabilityImporter}
	if opts.SaveCleanedFiles {
		caps = append(caps, scene.CapabilitySaver)
	}
	return caps
}

// executeRun drives the batch pipeline, either under the progress TUI or
// with plain log output.
func executeRun(cmd *cobra.Command, params RunParams) error {
	cfg := config.GetGlobal()
	paths, err := GatherFiles(cfg, params)
	if err != nil {
		return err
	}

	opts := buildOptions(cfg, params)
	log := logging.FromContext(cmd.Context())

	h := host.New(logging.ComponentLogger(log, "host"))
	if err := scene.CheckCapabilities(h, requiredCapabilities(opts)); err != nil {
		return err
	}

	importer := engine.NewImporter(h, logging.ComponentLogger(log, "engine"))

	var status *engine.ImportStatus
	if params.NoTUI || !isTerminal(os.Stdout) {
		status, err = runPlain(cmd.Context(), importer, paths, opts)
	} else {
		status, err = runWithTUI(cmd.Context(), importer, paths, opts)
	}
	if err != nil {
		return err
	}

	printRunSummary(cmd, status)
	return nil
}

// runPlain runs the pipeline with log-only progress. Interrupt signals
// cancel the run at the next file boundary.
func runPlain(
	ctx context.Context,
	importer *engine.Importer,
	paths []string,
	opts engine.Options,
) (*engine.ImportStatus, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	importer.WithProgress(func(ev engine.ProgressEvent) {
		logger.Info().
			Int("index", ev.Index).
			Int("total", ev.Total).
			Str("file", ev.File).
			Msg("file done")
	})
	return importer.Run(ctx, paths, opts)
}

// runWithTUI runs the pipeline in a goroutine and renders progress with
// the Bubble Tea model. Cancel keys cancel the run context.
func runWithTUI(
	ctx context.Context,
	importer *engine.Importer,
	paths []string,
	opts engine.Options,
) (*engine.ImportStatus, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tea.Msg, 1)
	importer.WithProgress(func(ev engine.ProgressEvent) {
		events <- tui.FileMsg(ev)
	})

	go func() {
		status, err := importer.Run(ctx, paths, opts)
		events <- tui.RunDoneMsg{Status: status, Err: err}
	}()

	model := tui.NewRunModel(len(paths), events, cancel)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, err
	}

	runModel, ok := final.(*tui.RunModel)
	if !ok {
		return nil, errors.New("unexpected TUI model type")
	}
	if runModel.Err != nil {
		return nil, runModel.Err
	}
	return runModel.Status, nil
}

// printRunSummary writes the final counts and any per-file failures.
func printRunSummary(cmd *cobra.Command, status *engine.ImportStatus) {
	out := cmd.OutOrStdout()
	state := "completed"
	if status.Cancelled {
		state = "cancelled"
	}
	fmt.Fprintf(out, "run %s: %d succeeded, %d failed of %d files in %s\n",
		state, status.SuccessCount, status.FailedCount, status.TotalFiles, status.Elapsed)

	for _, res := range status.Results {
		if !res.OK {
			fmt.Fprintf(out, "  failed: %s: %s\n", res.Path, res.Err)
		}
	}
}
