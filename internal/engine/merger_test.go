package engine

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draycall/fbxbatch/internal/host"
	"github.com/draycall/fbxbatch/internal/scene"
)

func TestBatchSizeFor(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{100, 50},
		{499, 50},
		{500, 25},
		{600, 25},
		{2000, 25},
		{2001, 15},
		{2500, 15},
		{5000, 15},
		{5001, 10},
		{6000, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BatchSizeFor(tt.count), "count=%d", tt.count)
	}
}

func TestGroupByMaterial(t *testing.T) {
	s := host.NewMemScene()
	s.AddMaterial("Wood", "Wood")
	s.AddMaterial("Metal", "Metal")

	w1 := s.AddObject("plank", scene.KindMesh, "Wood")
	m1 := s.AddObject("bolt", scene.KindMesh, "Metal")
	w2 := s.AddObject("beam", scene.KindMesh, "Wood")
	s.AddObject("untextured", scene.KindMesh, "")

	groups := GroupByMaterial(s, s.Objects())
	require.Len(t, groups, 2)

	// First-seen material order is preserved.
	assert.Equal(t, "Wood", groups[0].MaterialName)
	assert.Equal(t, "Metal", groups[1].MaterialName)
	assert.Equal(t, []scene.Object{w1, w2}, groups[0].Objects)
	assert.Equal(t, []scene.Object{m1}, groups[1].Objects)

	// Every materialed object lands in exactly one group.
	seen := map[string]int{}
	for _, g := range groups {
		for _, obj := range g.Objects {
			seen[obj.ID()]++
		}
	}
	assert.Len(t, seen, 3)
	for id, n := range seen {
		assert.Equal(t, 1, n, "object %s", id)
	}
}

func TestMerger_Merge(t *testing.T) {
	newScene := func() *host.MemScene {
		s := host.NewMemScene()
		s.AddMaterial("Wood", "Wood")
		s.AddMaterial("Metal", "Metal")
		return s
	}

	t.Run("MergesByMaterial", func(t *testing.T) {
		s := newScene()
		s.AddObject("plank", scene.KindMesh, "Wood")
		s.AddObject("beam", scene.KindMesh, "Wood")
		s.AddObject("bolt", scene.KindMesh, "Metal")

		merger := NewMerger(s, s, zerolog.Nop())
		report, err := merger.Merge(context.Background(), s.Objects())
		require.NoError(t, err)

		assert.Equal(t, 3, report.TotalValid)
		assert.Equal(t, 2, report.ResultCount)
		assert.Equal(t, 50, report.BatchSize)

		require.Len(t, s.Objects(), 2)
		names := []string{s.Objects()[0].Name(), s.Objects()[1].Name()}
		assert.ElementsMatch(t, []string{"Merged_Wood", "Merged_Metal"}, names)

		// The result set is selected as the observable side effect.
		assert.Len(t, s.Selection(), 2)
	})

	t.Run("SingletonGroupRenamedOnly", func(t *testing.T) {
		s := newScene()
		bolt := s.AddObject("bolt", scene.KindMesh, "Metal")

		merger := NewMerger(s, s, zerolog.Nop())
		report, err := merger.Merge(context.Background(), s.Objects())
		require.NoError(t, err)

		assert.Equal(t, 1, report.ResultCount)
		assert.Equal(t, "Merged_Metal", bolt.Name())
		// No conversion happened; the object was emitted as-is.
		assert.False(t, bolt.Editable())
	})

	t.Run("SkipsMaterialLessObjects", func(t *testing.T) {
		s := newScene()
		s.AddObject("plank", scene.KindMesh, "Wood")
		naked := s.AddObject("untextured", scene.KindMesh, "")

		merger := NewMerger(s, s, zerolog.Nop())
		report, err := merger.Merge(context.Background(), s.Objects())
		require.NoError(t, err)

		assert.Equal(t, 1, report.TotalValid)
		assert.Equal(t, 1, report.ResultCount)
		assert.Equal(t, "untextured", naked.Name())
		assert.Len(t, s.Objects(), 2)
	})

	t.Run("FiltersNonGeometry", func(t *testing.T) {
		s := newScene()
		s.AddObject("plank", scene.KindMesh, "Wood")
		s.AddObject("key_light", scene.KindLight, "Wood")

		merger := NewMerger(s, s, zerolog.Nop())
		report, err := merger.Merge(context.Background(), s.Objects())
		require.NoError(t, err)
		assert.Equal(t, 1, report.TotalValid)
	})

	t.Run("EmptyInputFallsBackToSelection", func(t *testing.T) {
		s := newScene()
		plank := s.AddObject("plank", scene.KindMesh, "Wood")
		s.Select([]scene.Object{plank})

		merger := NewMerger(s, s, zerolog.Nop())
		report, err := merger.Merge(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, report.ResultCount)
	})

	t.Run("EmptySelectionIsError", func(t *testing.T) {
		s := newScene()
		merger := NewMerger(s, s, zerolog.Nop())
		_, err := merger.Merge(context.Background(), nil)
		assert.ErrorIs(t, err, ErrEmptySelection)
	})

	t.Run("NoGeometryIsError", func(t *testing.T) {
		s := newScene()
		light := s.AddObject("key_light", scene.KindLight, "")

		merger := NewMerger(s, s, zerolog.Nop())
		_, err := merger.Merge(context.Background(), []scene.Object{light})
		assert.ErrorIs(t, err, ErrNoGeometry)
	})

	t.Run("ConversionFailureSkipsGroup", func(t *testing.T) {
		s := newScene()
		s.FailConvert = map[string]bool{"plank": true}
		plank := s.AddObject("plank", scene.KindMesh, "Wood")
		beam := s.AddObject("beam", scene.KindMesh, "Wood")
		s.AddObject("bolt", scene.KindMesh, "Metal")

		merger := NewMerger(s, s, zerolog.Nop())
		report, err := merger.Merge(context.Background(), s.Objects())
		require.NoError(t, err)

		// The Wood group is left unmerged; Metal still merges.
		assert.Equal(t, 1, report.ResultCount)
		require.Len(t, report.Groups, 2)
		assert.True(t, report.Groups[0].Skipped)
		assert.False(t, report.Groups[1].Skipped)
		assert.Equal(t, "plank", plank.Name())
		assert.Equal(t, "beam", beam.Name())
		assert.Len(t, s.Objects(), 3)
	})

	t.Run("CancelledContextStillCompletesGroup", func(t *testing.T) {
		s := newScene()
		s.AddObject("plank", scene.KindMesh, "Wood")
		s.AddObject("beam", scene.KindMesh, "Wood")
		s.AddObject("board", scene.KindMesh, "Wood")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		merger := NewMerger(s, s, zerolog.Nop())
		report, err := merger.Merge(ctx, s.Objects())
		require.NoError(t, err)

		// A started group runs to completion: every member is attached,
		// not just renamed away.
		assert.Equal(t, 1, report.ResultCount)
		assert.Equal(t, 0, report.AttachErrors)
		require.Len(t, report.Groups, 1)
		assert.False(t, report.Groups[0].Skipped)

		require.Len(t, s.Objects(), 1)
		merged := s.Objects()[0].(*host.MemObject)
		assert.Equal(t, "Merged_Wood", merged.Name())
		assert.Equal(t, 3, merged.Faces())
	})

	t.Run("AttachFailureSkipsObjectOnly", func(t *testing.T) {
		s := newScene()
		s.FailAttach = map[string]bool{"beam": true}
		s.AddObject("plank", scene.KindMesh, "Wood")
		beam := s.AddObject("beam", scene.KindMesh, "Wood")
		s.AddObject("board", scene.KindMesh, "Wood")

		merger := NewMerger(s, s, zerolog.Nop())
		report, err := merger.Merge(context.Background(), s.Objects())
		require.NoError(t, err)

		assert.Equal(t, 1, report.ResultCount)
		assert.Equal(t, 1, report.AttachErrors)

		// The merged mesh exists and the failed object survives
		// unmerged.
		require.Len(t, s.Objects(), 2)
		assert.Equal(t, "Merged_Wood", s.Objects()[0].Name())
		assert.Equal(t, "beam", beam.Name())
	})
}
