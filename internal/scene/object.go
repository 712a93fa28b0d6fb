// Package scene defines the data model and host-facing contracts the
// fbxbatch engine operates on.
//
// The engine never talks to a concrete scene graph directly; it depends
// on the interfaces in this package, which a host implementation (see
// internal/host) satisfies. This keeps classification, grouping and
// batching testable without any content-creation application present.
package scene

// Kind tags a scene object with its node type.
type Kind int

// Object kinds recognized by the cleaner and merger.
const (
	KindOther Kind = iota
	KindMesh
	KindLight
	KindCamera
	KindHelper
	KindSpaceWarp
	KindCurve
	KindNURBS
	KindShape
	KindDummy
	KindPoint
	KindSubEntity
	KindGroup
)

// kindNames maps kinds to their display names.
var kindNames = map[Kind]string{
	KindOther:     "other",
	KindMesh:      "mesh",
	KindLight:     "light",
	KindCamera:    "camera",
	KindHelper:    "helper",
	KindSpaceWarp: "spacewarp",
	KindCurve:     "curve",
	KindNURBS:     "nurbs",
	KindShape:     "shape",
	KindDummy:     "dummy",
	KindPoint:     "point",
	KindSubEntity: "subentity",
	KindGroup:     "group",
}

// String returns the display name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "other"
}

// Superclass is the coarse object category the merger filters on.
type Superclass int

// Superclasses recognized by the engine.
const (
	SuperclassOther Superclass = iota
	SuperclassGeometry
	SuperclassShape
	SuperclassLight
	SuperclassCamera
	SuperclassHelper
	SuperclassSpaceWarp
)

// Material is a named appearance definition. Objects referencing the same
// material ID are considered mergeable together.
type Material struct {
	ID   string
	Name string
}

// Object is a handle to a scene-graph node. The scene graph owns the
// object; the engine only references it transiently during a pass.
type Object interface {
	// ID returns the stable identity of the object within its graph.
	ID() string

	// Name returns the current object name.
	Name() string

	// SetName renames the object.
	SetName(name string)

	// Kind returns the node type tag.
	Kind() Kind

	// Superclass returns the coarse category.
	Superclass() Superclass

	// MaterialID returns the assigned material ID, or "" when the
	// object has no material.
	MaterialID() string
}
