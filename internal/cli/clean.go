package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/draycall/fbxbatch/internal/engine"
	"github.com/draycall/fbxbatch/internal/host"
	"github.com/draycall/fbxbatch/internal/logging"
	"github.com/draycall/fbxbatch/internal/scene"
)

// NewCleanCmd creates the "clean" command: load one file and strip its
// non-geometry objects.
func NewCleanCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "clean <file.fbx>",
		Short: "Strip lights, cameras, helpers and curves from one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeClean(cmd, args[0], save)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "save the cleaned scene next to the input")
	return cmd
}

// executeClean imports path, runs the cleaner and reports the result.
func executeClean(cmd *cobra.Command, path string, save bool) error {
	log := logging.FromContext(cmd.Context())
	h := host.New(logging.ComponentLogger(log, "host"))

	required := []scene.Capability{scene.CapabilityGraph, scene.CapabilityImporter}
	if save {
		required = append(required, scene.CapabilitySaver)
	}
	if err := scene.CheckCapabilities(h, required); err != nil {
		return err
	}

	graph := h.Graph()
	before := len(graph.Objects())
	if err := h.Importer().Import(cmd.Context(), path); err != nil {
		return err
	}
	if len(graph.Objects()) <= before {
		return engine.ErrNoObjectsImported
	}

	cleaner := engine.NewCleaner(graph, logging.ComponentLogger(log, "engine"))
	report, err := cleaner.Clean()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "cleaned %s: %d deleted, %d kept, %d ignored\n",
		path, report.DeletedCount, len(report.Kept), report.IgnoredCount)

	if save {
		out := engine.SavePathFor(path, engine.SaveExtension)
		if err := h.Saver().Save(graph, out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", out)
	}
	return nil
}
