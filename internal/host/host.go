package host

import (
	"github.com/rs/zerolog"

	"github.com/draycall/fbxbatch/internal/scene"
)

// apiVersion is the version this reference host reports to the engine's
// capability check.
const apiVersion = "2.1.0"

// Host bundles the reference collaborators into a scene.Host.
type Host struct {
	graph    *MemScene
	importer scene.Importer
	saver    scene.Saver
}

// New creates a reference host with an empty scene, the FBX importer and
// the glTF saver.
func New(logger zerolog.Logger) *Host {
	graph := NewMemScene()
	return &Host{
		graph:    graph,
		importer: NewFBXImporter(graph, logger),
		saver:    NewGLTFSaver(),
	}
}

// Scene returns the concrete in-memory scene, for callers that need the
// test hooks or helpers beyond the scene.Graph contract.
func (h *Host) Scene() *MemScene { return h.graph }

// Graph implements scene.Host.
func (h *Host) Graph() scene.Graph { return h.graph }

// Mesh implements scene.Host.
func (h *Host) Mesh() scene.MeshEditor { return h.graph }

// Importer implements scene.Host.
func (h *Host) Importer() scene.Importer { return h.importer }

// Saver implements scene.Host.
func (h *Host) Saver() scene.Saver { return h.saver }

// APIVersion implements scene.Host.
func (h *Host) APIVersion() string { return apiVersion }
