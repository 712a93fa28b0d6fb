package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draycall/fbxbatch/internal/host"
	"github.com/draycall/fbxbatch/internal/scene"
)

// fakeImporter populates the scene per file from a script: each entry
// lists the objects a file produces, or an error string.
type fakeImporter struct {
	graph   *host.MemScene
	scripts map[string]fileScript
}

type fileScript struct {
	err     string
	objects []scriptObject
}

type scriptObject struct {
	name     string
	kind     scene.Kind
	material string
}

func (f *fakeImporter) Import(_ context.Context, path string) error {
	script, ok := f.scripts[path]
	if !ok {
		return nil // imports nothing: the delta check flags the file
	}
	if script.err != "" {
		return errors.New(script.err)
	}
	for _, o := range script.objects {
		if o.material != "" {
			f.graph.AddMaterial(o.material, o.material)
		}
		f.graph.AddObject(o.name, o.kind, o.material)
	}
	return nil
}

// fakeSaver records save requests.
type fakeSaver struct {
	paths []string
	err   error
}

func (f *fakeSaver) Save(_ scene.Graph, path string) error {
	if f.err != nil {
		return f.err
	}
	f.paths = append(f.paths, path)
	return nil
}

// testHost bundles a MemScene with scripted collaborators.
type testHost struct {
	graph    *host.MemScene
	importer *fakeImporter
	saver    *fakeSaver
}

func newTestHost(scripts map[string]fileScript) *testHost {
	graph := host.NewMemScene()
	return &testHost{
		graph:    graph,
		importer: &fakeImporter{graph: graph, scripts: scripts},
		saver:    &fakeSaver{},
	}
}

func (h *testHost) Graph() scene.Graph       { return h.graph }
func (h *testHost) Mesh() scene.MeshEditor   { return h.graph }
func (h *testHost) Importer() scene.Importer { return h.importer }
func (h *testHost) Saver() scene.Saver       { return h.saver }
func (h *testHost) APIVersion() string       { return "2.0.0" }

// meshWith returns a scripted mesh object.
func meshWith(name, material string) scriptObject {
	return scriptObject{name: name, kind: scene.KindMesh, material: material}
}

func TestImporter_Run(t *testing.T) {
	t.Run("NoFiles", func(t *testing.T) {
		h := newTestHost(nil)
		importer := NewImporter(h, zerolog.Nop())
		_, err := importer.Run(context.Background(), nil, Options{})
		assert.ErrorIs(t, err, ErrNoFiles)
	})

	t.Run("CountsAlwaysAddUp", func(t *testing.T) {
		h := newTestHost(map[string]fileScript{
			"a.fbx": {objects: []scriptObject{meshWith("a", "Wood")}},
			"b.fbx": {err: "corrupt header"},
			"c.fbx": {}, // parses but adds nothing
			"d.fbx": {objects: []scriptObject{meshWith("d", "Wood")}},
		})
		importer := NewImporter(h, zerolog.Nop())
		status, err := importer.Run(context.Background(),
			[]string{"a.fbx", "b.fbx", "c.fbx", "d.fbx"}, Options{})
		require.NoError(t, err)

		assert.Equal(t, 2, status.SuccessCount)
		assert.Equal(t, 2, status.FailedCount)
		assert.Equal(t, status.Processed(), status.TotalFiles)
		assert.False(t, status.Cancelled)

		require.Len(t, status.Results, 4)
		assert.True(t, status.Results[0].OK)
		assert.Equal(t, "corrupt header", status.Results[1].Err)
		assert.Equal(t, ErrNoObjectsImported.Error(), status.Results[2].Err)
	})

	t.Run("SortAppliedBeforeProcessing", func(t *testing.T) {
		h := newTestHost(map[string]fileScript{
			"B.fbx": {objects: []scriptObject{meshWith("b", "")}},
			"a.fbx": {objects: []scriptObject{meshWith("a", "")}},
		})
		var order []string
		importer := NewImporter(h, zerolog.Nop()).
			WithProgress(func(ev ProgressEvent) { order = append(order, ev.File) })

		_, err := importer.Run(context.Background(),
			[]string{"B.fbx", "a.fbx"}, Options{SortMode: SortAlphabetical})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.fbx", "B.fbx"}, order)
	})

	t.Run("SizeSortUsesSizer", func(t *testing.T) {
		h := newTestHost(map[string]fileScript{
			"small.fbx": {objects: []scriptObject{meshWith("s", "")}},
			"big.fbx":   {objects: []scriptObject{meshWith("b", "")}},
		})
		sizes := map[string]int64{"small.fbx": 10, "big.fbx": 4096}

		var order []string
		importer := NewImporter(h, zerolog.Nop()).
			WithSizer(func(path string) (int64, error) { return sizes[path], nil }).
			WithProgress(func(ev ProgressEvent) { order = append(order, ev.File) })

		_, err := importer.Run(context.Background(),
			[]string{"small.fbx", "big.fbx"}, Options{SortMode: SortSizeDescending})
		require.NoError(t, err)
		assert.Equal(t, []string{"big.fbx", "small.fbx"}, order)
	})

	t.Run("CancelledAfterSecondFile", func(t *testing.T) {
		scripts := map[string]fileScript{}
		paths := []string{"1.fbx", "2.fbx", "3.fbx", "4.fbx", "5.fbx"}
		for _, p := range paths {
			scripts[p] = fileScript{objects: []scriptObject{meshWith(p, "")}}
		}
		h := newTestHost(scripts)

		ctx, cancel := context.WithCancel(context.Background())
		importer := NewImporter(h, zerolog.Nop()).
			WithProgress(func(ev ProgressEvent) {
				if ev.Index == 2 {
					cancel()
				}
			})

		status, err := importer.Run(ctx, paths, Options{})
		require.NoError(t, err)

		assert.True(t, status.Cancelled)
		assert.Equal(t, 2, status.Processed())
		assert.Equal(t, 2, status.SuccessCount)
	})

	t.Run("EndToEndCleanAndMerge", func(t *testing.T) {
		perFile := []scriptObject{
			meshWith("plank", "Wood"),
			meshWith("beam", "Wood"),
			meshWith("bolt", "Metal"),
			{name: "key_light", kind: scene.KindLight},
			{name: "cam", kind: scene.KindCamera},
			{name: "rig", kind: scene.KindHelper},
		}
		h := newTestHost(map[string]fileScript{
			"a.fbx": {objects: perFile},
			"b.fbx": {objects: perFile},
			"c.fbx": {objects: perFile},
		})

		importer := NewImporter(h, zerolog.Nop())
		status, err := importer.Run(context.Background(),
			[]string{"c.fbx", "a.fbx", "b.fbx"},
			Options{
				SortMode:         SortAlphabetical,
				CleanAfterImport: true,
				MergeAfterClean:  true,
				SaveCleanedFiles: true,
			})
		require.NoError(t, err)

		assert.Equal(t, 3, status.SuccessCount)
		assert.Equal(t, 0, status.FailedCount)

		// After the last file the scene holds only the merged meshes.
		objects := h.graph.Objects()
		require.Len(t, objects, 2)
		names := []string{objects[0].Name(), objects[1].Name()}
		assert.ElementsMatch(t, []string{"Merged_Wood", "Merged_Metal"}, names)
		for _, obj := range objects {
			assert.NotEqual(t, scene.KindLight, obj.Kind())
			assert.NotEqual(t, scene.KindCamera, obj.Kind())
			assert.NotEqual(t, scene.KindHelper, obj.Kind())
		}

		// One cleaned scene saved per file, sibling path with the fixed
		// extension.
		assert.Equal(t, []string{"a.gltf", "b.gltf", "c.gltf"}, h.saver.paths)
	})

	t.Run("SaveFailureMarksFile", func(t *testing.T) {
		h := newTestHost(map[string]fileScript{
			"a.fbx": {objects: []scriptObject{meshWith("a", "Wood")}},
		})
		h.saver.err = errors.New("disk full")

		importer := NewImporter(h, zerolog.Nop())
		status, err := importer.Run(context.Background(), []string{"a.fbx"},
			Options{CleanAfterImport: true, SaveCleanedFiles: true})
		require.NoError(t, err)
		assert.Equal(t, 1, status.FailedCount)
		assert.Contains(t, status.Results[0].Err, "disk full")
	})
}
