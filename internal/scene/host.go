package scene

import "context"

// Graph is the scene-graph surface the engine mutates. Implementations
// are single-writer: the engine issues one operation at a time and never
// calls Graph methods concurrently.
type Graph interface {
	// Objects returns all live objects in the scene, in a stable order.
	Objects() []Object

	// Selection returns the currently selected objects.
	Selection() []Object

	// Select replaces the current selection.
	Select(objs []Object)

	// Delete removes the given objects from the scene in one batch.
	Delete(objs []Object) error

	// ResetWorkspace clears the scene back to an empty state.
	ResetWorkspace() error

	// MaterialByID resolves a material reference.
	MaterialByID(id string) (Material, bool)

	// SetMaterial assigns the material with the given ID to obj.
	SetMaterial(obj Object, materialID string) error
}

// MeshEditor performs the destructive geometry operations the merger
// needs. Both operations can fail per object; failures are reported, not
// raised, so the caller can skip and continue.
type MeshEditor interface {
	// ConvertToMesh converts obj to an editable mesh representation and
	// returns the (possibly replaced) handle.
	ConvertToMesh(ctx context.Context, obj Object) (Object, error)

	// Attach merges source into target. On success source is removed
	// from the scene and target absorbs its geometry.
	Attach(ctx context.Context, target, source Object) error
}

// Importer loads a file into the scene. The primitive gives no explicit
// success signal beyond its error: callers infer success by observing the
// scene object-count delta.
type Importer interface {
	Import(ctx context.Context, path string) error
}

// Saver writes the current scene to a file.
type Saver interface {
	Save(g Graph, path string) error
}

// Host bundles every collaborator the pipeline depends on, plus the host
// API version used by the capability check.
type Host interface {
	Graph() Graph
	Mesh() MeshEditor
	Importer() Importer
	Saver() Saver

	// APIVersion reports the host API semver, validated once before a
	// run against the range the engine supports.
	APIVersion() string
}
