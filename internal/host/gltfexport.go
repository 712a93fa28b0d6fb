package host

import (
	"fmt"

	"github.com/qmuntal/gltf"

	"github.com/draycall/fbxbatch/internal/scene"
)

// GLTFSaver writes the current scene as a glTF document. Only the node
// hierarchy and names are emitted: the save-cleaned-files step exists to
// hand the reduced object set to downstream tooling, which re-resolves
// geometry from its own sources.
type GLTFSaver struct{}

// NewGLTFSaver returns a saver.
func NewGLTFSaver() *GLTFSaver {
	return &GLTFSaver{}
}

// Save implements scene.Saver.
func (sv *GLTFSaver) Save(g scene.Graph, path string) error {
	doc := gltf.NewDocument()

	for _, obj := range g.Objects() {
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)))
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: obj.Name()})
	}

	if err := gltf.Save(doc, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
