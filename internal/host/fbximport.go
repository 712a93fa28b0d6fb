package host

import (
	"context"
	"fmt"

	"github.com/binzume/modelconv/fbx"
	"github.com/rs/zerolog"

	"github.com/draycall/fbxbatch/internal/scene"
)

// fbxClassKinds maps FBX model classes to scene kinds. Classes not listed
// come through as KindOther and are ignored by the cleaner.
var fbxClassKinds = map[string]scene.Kind{
	"Mesh":         scene.KindMesh,
	"Light":        scene.KindLight,
	"Camera":       scene.KindCamera,
	"Null":         scene.KindDummy,
	"LimbNode":     scene.KindHelper,
	"Line":         scene.KindCurve,
	"NurbsCurve":   scene.KindNURBS,
	"NurbsSurface": scene.KindNURBS,
	"Shape":        scene.KindShape,
}

// FBXImporter loads FBX files into a MemScene. It maps each FBX model
// node to one scene object and registers material bindings keyed by
// material name, which is the merge grouping key downstream.
type FBXImporter struct {
	graph *MemScene
	log   zerolog.Logger
}

// NewFBXImporter returns an importer that populates graph.
func NewFBXImporter(graph *MemScene, logger zerolog.Logger) *FBXImporter {
	return &FBXImporter{graph: graph, log: logger}
}

// Import implements scene.Importer. A parse failure is returned as an
// error; success is observed by the caller through the object-count
// delta, matching the host-import contract.
func (im *FBXImporter) Import(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := fbx.Load(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	added := 0
	objects := doc.RawNode.FindChild("Objects")
	for _, node := range objects.GetChildren() {
		if node.Name != "Model" {
			continue
		}

		model, ok := doc.ObjectByID[node.Attr(0).ToInt64(0)].(*fbx.Model)
		if !ok {
			continue
		}

		class := node.Attr(2).ToString()
		kind, found := fbxClassKinds[class]
		if !found {
			kind = scene.KindOther
		}

		materialID := ""
		for _, ref := range model.FindRefs("Material") {
			mat, isMat := ref.(*fbx.Material)
			if !isMat || mat.Name() == "" {
				continue
			}
			im.registerMaterial(mat.Name())
			materialID = mat.Name()
			break
		}

		im.graph.AddObject(model.Name(), kind, materialID)
		added++
	}

	im.log.Debug().Str("file", path).Int("models", added).Msg("fbx document imported")
	return nil
}

// registerMaterial ensures the named material exists in the graph. FBX
// materials are keyed by name here; that name is also the merge grouping
// key downstream.
func (im *FBXImporter) registerMaterial(name string) {
	if _, ok := im.graph.MaterialByID(name); !ok {
		im.graph.AddMaterial(name, name)
	}
}
