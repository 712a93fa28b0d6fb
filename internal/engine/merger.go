package engine

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/draycall/fbxbatch/internal/engine/batch"
	"github.com/draycall/fbxbatch/internal/scene"
)

// Merge input errors. Both are reported to the operator and leave the
// scene untouched.
var (
	ErrEmptySelection = errors.New("nothing selected and no objects supplied")
	ErrNoGeometry     = errors.New("no geometry objects to merge")
)

// mergedNamePrefix is prepended to the material name when naming results.
const mergedNamePrefix = "Merged_"

// Batch size tiers for the adaptive policy.
const (
	hugeSceneThreshold  = 5000
	largeSceneThreshold = 2000
	smallSceneThreshold = 500

	hugeSceneBatch    = 10
	largeSceneBatch   = 15
	defaultSceneBatch = 25
	smallSceneBatch   = 50
)

// BatchSizeFor picks the attach batch size from the total count of
// objects that carry a material. Bigger scenes get smaller batches to
// bound peak memory growth per attach cycle.
func BatchSizeFor(count int) int {
	switch {
	case count > hugeSceneThreshold:
		return hugeSceneBatch
	case count > largeSceneThreshold:
		return largeSceneBatch
	case count < smallSceneThreshold:
		return smallSceneBatch
	default:
		return defaultSceneBatch
	}
}

// MaterialGroup is an ordered set of objects sharing one material, built
// once per merge invocation.
type MaterialGroup struct {
	MaterialID   string
	MaterialName string
	Objects      []scene.Object
}

// GroupByMaterial partitions objs into material groups, preserving the
// first-seen order of materials. Objects without a material are skipped
// entirely. A slice, not a map, keeps the output deterministic across
// runs.
func GroupByMaterial(graph scene.Graph, objs []scene.Object) []*MaterialGroup {
	var groups []*MaterialGroup
	index := make(map[string]*MaterialGroup)

	for _, obj := range objs {
		id := obj.MaterialID()
		if id == "" {
			continue
		}

		group, ok := index[id]
		if !ok {
			name := id
			if mat, found := graph.MaterialByID(id); found && mat.Name != "" {
				name = mat.Name
			}
			group = &MaterialGroup{MaterialID: id, MaterialName: name}
			index[id] = group
			groups = append(groups, group)
		}
		group.Objects = append(group.Objects, obj)
	}
	return groups
}

// GroupReport describes one merged material group.
type GroupReport struct {
	Material    string
	ObjectCount int
	// Skipped is set when the group's accumulator could not be
	// converted and the group was left unmerged.
	Skipped bool
}

// MergeReport summarizes one merge invocation.
type MergeReport struct {
	Groups       []GroupReport
	TotalValid   int
	ResultCount  int
	BatchSize    int
	AttachErrors int
	Elapsed      time.Duration
}

// Merger combines geometry objects into one mesh per material.
type Merger struct {
	graph scene.Graph
	mesh  scene.MeshEditor
	log   zerolog.Logger
}

// NewMerger creates a merger over graph using mesh for the destructive
// operations.
func NewMerger(graph scene.Graph, mesh scene.MeshEditor, logger zerolog.Logger) *Merger {
	return &Merger{graph: graph, mesh: mesh, log: logger}
}

// Merge combines objs into one mesh per material. A nil or empty objs
// falls back to the current selection. The final result set is selected
// in the scene as the observable side effect; the returned error covers
// only the early empty-input cases.
//
// Per invocation the flow is Init, Filtering, Grouping, BatchSizing, one
// merge pass per group, Reporting. Conversion failure skips a whole
// group; an individual attach failure skips only that object.
func (m *Merger) Merge(ctx context.Context, objs []scene.Object) (*MergeReport, error) {
	start := time.Now()

	if len(objs) == 0 {
		objs = m.graph.Selection()
	}
	if len(objs) == 0 {
		return nil, ErrEmptySelection
	}

	var geometry []scene.Object
	for _, obj := range objs {
		if obj.Superclass() == scene.SuperclassGeometry {
			geometry = append(geometry, obj)
		}
	}
	if len(geometry) == 0 {
		return nil, ErrNoGeometry
	}

	groups := GroupByMaterial(m.graph, geometry)
	valid := 0
	for _, g := range groups {
		valid += len(g.Objects)
	}
	batchSize := BatchSizeFor(valid)

	m.log.Info().
		Int("objects", valid).
		Int("materials", len(groups)).
		Int("batch_size", batchSize).
		Msg("merging geometry by material")

	report := &MergeReport{TotalValid: valid, BatchSize: batchSize}
	var results []scene.Object

	for _, group := range groups {
		merged, skipped := m.mergeGroup(ctx, group, batchSize, report)
		if skipped {
			report.Groups = append(report.Groups, GroupReport{
				Material:    group.MaterialName,
				ObjectCount: len(group.Objects),
				Skipped:     true,
			})
			continue
		}
		results = append(results, merged)
		report.Groups = append(report.Groups, GroupReport{
			Material:    group.MaterialName,
			ObjectCount: len(group.Objects),
		})
	}

	report.ResultCount = len(results)
	report.Elapsed = time.Since(start)
	m.graph.Select(results)

	m.log.Info().
		Int("results", report.ResultCount).
		Int("attach_errors", report.AttachErrors).
		Dur("elapsed", report.Elapsed).
		Msg("merge complete")
	return report, nil
}

// mergeGroup merges one material group and returns the resulting object.
// skipped is true when the accumulator could not be converted to an
// editable mesh, in which case the group's objects are left unmerged.
func (m *Merger) mergeGroup(
	ctx context.Context,
	group *MaterialGroup,
	batchSize int,
	report *MergeReport,
) (scene.Object, bool) {
	// Cancellation is observed between files, never mid-merge: a group
	// that has started runs to completion so the scene is never left
	// with a renamed accumulator missing its members.
	ctx = context.WithoutCancel(ctx)

	mergedName := mergedNamePrefix + group.MaterialName

	if len(group.Objects) == 1 {
		only := group.Objects[0]
		only.SetName(mergedName)
		return only, false
	}

	acc, err := m.mesh.ConvertToMesh(ctx, group.Objects[0])
	if err != nil {
		m.log.Warn().
			Err(err).
			Str("material", group.MaterialName).
			Int("objects", len(group.Objects)).
			Msg("cannot convert accumulator, leaving group unmerged")
		return nil, true
	}

	rest := group.Objects[1:]
	processor, procErr := batch.NewProcessor[scene.Object](batchSize)
	if procErr != nil {
		// Batch sizes come from the fixed policy, all >= 1.
		m.log.Error().Err(procErr).Msg("invalid batch size")
		return nil, true
	}
	processor = processor.WithProgress(func(progress *batch.Progress) {
		snap := progress.Snapshot()
		m.log.Debug().
			Str("material", group.MaterialName).
			Int("batch", snap.ProcessedBatches).
			Int("total_batches", snap.TotalBatches).
			Float64("percent", snap.PercentComplete).
			Msg("attach batch done")
	})

	err = processor.Process(ctx, rest, func(ctx context.Context, items []scene.Object, index int) error {
		for _, src := range items {
			if attachErr := m.mesh.Attach(ctx, acc, src); attachErr != nil {
				report.AttachErrors++
				m.log.Warn().
					Err(attachErr).
					Str("object", src.Name()).
					Str("material", group.MaterialName).
					Int("batch", index).
					Msg("attach failed, skipping object")
			}
		}
		return nil
	})
	if err != nil {
		// Unreachable with a detached context and a nil-returning
		// callback, but an aborted loop must not be reported as merged.
		m.log.Error().
			Err(err).
			Str("material", group.MaterialName).
			Msg("attach loop aborted, leaving group unmerged")
		return nil, true
	}

	acc.SetName(mergedName)
	if err := m.graph.SetMaterial(acc, group.MaterialID); err != nil {
		m.log.Warn().
			Err(err).
			Str("material", group.MaterialName).
			Msg("could not reassign group material")
	}
	return acc, false
}
