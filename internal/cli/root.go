// Package cli wires the fbxbatch commands: run, clean and merge.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/draycall/fbxbatch/internal/config"
	"github.com/draycall/fbxbatch/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// logResult holds the active log sink so closeLogging can release it
// from both the post-run hook and Execute's error path.
var logResult *logging.Result //nolint:gochecknoglobals // lifetime matches the process

// closeLogging releases the log sink. Safe to call more than once.
func closeLogging() error {
	if logResult == nil {
		return nil
	}
	err := logResult.Close()
	logResult = nil
	return err
}

// Execute builds the root command and runs it. The log sink is released
// here rather than only in PersistentPostRunE, which cobra skips when a
// command fails.
func Execute(ver string) error {
	err := NewRootCmd(ver).Execute()
	if closeErr := closeLogging(); err == nil {
		err = closeErr
	}
	return err
}

// NewRootCmd creates the root Cobra command for the fbxbatch CLI. It
// wires up configuration loading, logging and the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fbxbatch",
		Short: "Batch FBX import, cleanup and material merge",
		Long: `fbxbatch imports FBX files in bulk, strips non-geometry objects
(lights, cameras, helpers, curves) and merges the remaining meshes by
material to reduce object count for downstream engines.`,
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			if configPath == "" {
				configPath = config.DefaultPath()
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			config.SetGlobal(cfg)

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return closeLogging()
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file path (default ~/.fbxbatch/config.yaml)")
	cmd.AddCommand(NewRunCmd(), NewCleanCmd(), NewMergeCmd())

	return cmd
}

const rootCmdExample = `  # Import every FBX in a directory, clean and merge each scene
  fbxbatch run --dir ./assets

  # Explicit file list, largest files first, keep lights and cameras
  fbxbatch run --file a.fbx --file b.fbx --sort sizeDescending --no-clean

  # Strip non-geometry objects from one file
  fbxbatch clean scene.fbx

  # Merge one file's geometry by material and save the result
  fbxbatch merge scene.fbx --save`
