package engine

import (
	"github.com/rs/zerolog"

	"github.com/draycall/fbxbatch/internal/scene"
)

// CleanAction is the three-way classification of a scene object.
type CleanAction int

const (
	// ActionIgnore leaves the object untouched and excludes it from the
	// returned geometry set.
	ActionIgnore CleanAction = iota
	// ActionDelete marks the object for removal.
	ActionDelete
	// ActionKeep retains the object and returns it for merging.
	ActionKeep
)

// ClassifyObject applies the fixed cleanup predicate. Lights, cameras,
// helpers, space warps, curve and NURBS variants, dummies, points,
// sub-entities and non-mesh shapes are deleted; renderable geometry is
// kept; anything else (groups, unknown nodes) is ignored.
func ClassifyObject(obj scene.Object) CleanAction {
	switch obj.Kind() {
	case scene.KindLight, scene.KindCamera, scene.KindHelper, scene.KindSpaceWarp,
		scene.KindCurve, scene.KindNURBS, scene.KindDummy, scene.KindPoint,
		scene.KindSubEntity:
		return ActionDelete
	case scene.KindShape:
		// Shapes survive only when they are already closed polygonal
		// meshes, which report the geometry superclass.
		if obj.Superclass() == scene.SuperclassGeometry {
			return ActionKeep
		}
		return ActionDelete
	}

	if obj.Superclass() == scene.SuperclassGeometry {
		return ActionKeep
	}
	return ActionIgnore
}

// CleanReport summarizes one cleaner pass.
type CleanReport struct {
	// Kept is the retained geometry, in scene order, for downstream
	// merging.
	Kept []scene.Object

	DeletedCount int
	IgnoredCount int
}

// Cleaner removes non-geometry objects from a scene.
type Cleaner struct {
	graph scene.Graph
	log   zerolog.Logger
}

// NewCleaner creates a cleaner over graph.
func NewCleaner(graph scene.Graph, logger zerolog.Logger) *Cleaner {
	return &Cleaner{graph: graph, log: logger}
}

// Clean classifies every scene object, deletes the unwanted set in one
// batch call and returns the retained geometry. No object is both
// deleted and retained.
func (c *Cleaner) Clean() (*CleanReport, error) {
	report := &CleanReport{}
	var doomed []scene.Object

	for _, obj := range c.graph.Objects() {
		switch ClassifyObject(obj) {
		case ActionDelete:
			doomed = append(doomed, obj)
		case ActionKeep:
			report.Kept = append(report.Kept, obj)
		case ActionIgnore:
			report.IgnoredCount++
		}
	}

	if len(doomed) > 0 {
		if err := c.graph.Delete(doomed); err != nil {
			return nil, err
		}
	}
	report.DeletedCount = len(doomed)

	c.log.Info().
		Int("deleted", report.DeletedCount).
		Int("kept", len(report.Kept)).
		Int("ignored", report.IgnoredCount).
		Msg("scene cleaned")
	return report, nil
}
