package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/draycall/fbxbatch/internal/engine"
	"github.com/draycall/fbxbatch/internal/host"
	"github.com/draycall/fbxbatch/internal/logging"
	"github.com/draycall/fbxbatch/internal/scene"
)

// NewMergeCmd creates the "merge" command: load one file and merge its
// geometry by material.
func NewMergeCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "merge <file.fbx>",
		Short: "Merge one file's geometry into a single mesh per material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeMerge(cmd, args[0], save)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "save the merged scene next to the input")
	return cmd
}

// executeMerge imports path, merges the scene's geometry and reports per
// material.
func executeMerge(cmd *cobra.Command, path string, save bool) error {
	log := logging.FromContext(cmd.Context())
	h := host.New(logging.ComponentLogger(log, "host"))

	required := []scene.Capability{scene.CapabilityGraph, scene.CapabilityMesh, scene.CapabilityImporter}
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

	merger := engine.NewMerger(graph, h.Mesh(), logging.ComponentLogger(log, "engine"))
	report, err := merger.Merge(cmd.Context(), graph.Objects())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, g := range report.Groups {
		note := ""
		if g.Skipped {
			note = " (skipped: conversion failed)"
		}
		fmt.Fprintf(out, "  %s: %d objects%s\n", g.Material, g.ObjectCount, note)
	}
	fmt.Fprintf(out, "merged %d objects into %d (batch size %d) in %s\n",
		report.TotalValid, report.ResultCount, report.BatchSize, report.Elapsed)

	if save {
		outPath := engine.SavePathFor(path, engine.SaveExtension)
		if err := h.Saver().Save(graph, outPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "saved %s\n", outPath)
	}
	return nil
}
