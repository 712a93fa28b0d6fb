// Package host provides the reference host implementation for fbxbatch:
// an in-memory scene graph, an FBX-backed importer and a glTF saver.
//
// The original tool ran inside a content-creation application and used
// its scene directly. This package stands in for that application so the
// pipeline is runnable and testable standalone; any other host can be
// plugged in by satisfying the interfaces in internal/scene.
package host

import (
	"context"
	"fmt"

	"github.com/draycall/fbxbatch/internal/scene"
)

// MemObject is a scene object held by MemScene.
type MemObject struct {
	id         string
	name       string
	kind       scene.Kind
	materialID string

	// editable reports whether the object has been converted to an
	// editable mesh representation.
	editable bool

	// faces approximates the geometry payload so attach operations have
	// an observable effect.
	faces int
}

// ID implements scene.Object.
func (o *MemObject) ID() string { return o.id }

// Name implements scene.Object.
func (o *MemObject) Name() string { return o.name }

// SetName implements scene.Object.
func (o *MemObject) SetName(name string) { o.name = name }

// Kind implements scene.Object.
func (o *MemObject) Kind() scene.Kind { return o.kind }

// MaterialID implements scene.Object.
func (o *MemObject) MaterialID() string { return o.materialID }

// Editable reports whether the object is in editable-mesh form.
func (o *MemObject) Editable() bool { return o.editable }

// Faces returns the accumulated face count.
func (o *MemObject) Faces() int { return o.faces }

// Superclass derives the coarse category from the object kind.
func (o *MemObject) Superclass() scene.Superclass {
	switch o.kind {
	case scene.KindMesh:
		return scene.SuperclassGeometry
	case scene.KindShape, scene.KindCurve, scene.KindNURBS:
		return scene.SuperclassShape
	case scene.KindLight:
		return scene.SuperclassLight
	case scene.KindCamera:
		return scene.SuperclassCamera
	case scene.KindHelper, scene.KindDummy, scene.KindPoint:
		return scene.SuperclassHelper
	case scene.KindSpaceWarp:
		return scene.SuperclassSpaceWarp
	default:
		return scene.SuperclassOther
	}
}

// MemScene is an in-memory scene graph implementing scene.Graph and
// scene.MeshEditor. It is single-writer, like the host scene model it
// stands in for.
type MemScene struct {
	objects   []*MemObject
	selection []*MemObject
	materials map[string]scene.Material
	nextID    int

	// FailConvert and FailAttach inject per-object failures by name.
	// They exist for tests exercising the skip-and-continue paths.
	FailConvert map[string]bool
	FailAttach  map[string]bool
}

// NewMemScene returns an empty scene.
func NewMemScene() *MemScene {
	return &MemScene{materials: make(map[string]scene.Material)}
}

// AddObject creates an object with the given name, kind and material ID
// (empty for none) and adds it to the scene.
func (s *MemScene) AddObject(name string, kind scene.Kind, materialID string) *MemObject {
	s.nextID++
	obj := &MemObject{
		id:         fmt.Sprintf("obj-%04d", s.nextID),
		name:       name,
		kind:       kind,
		materialID: materialID,
		faces:      1,
	}
	s.objects = append(s.objects, obj)
	return obj
}

// AddMaterial registers a material so MaterialByID can resolve it.
func (s *MemScene) AddMaterial(id, name string) {
	s.materials[id] = scene.Material{ID: id, Name: name}
}

// Objects implements scene.Graph.
func (s *MemScene) Objects() []scene.Object {
	out := make([]scene.Object, len(s.objects))
	for i, o := range s.objects {
		out[i] = o
	}
	return out
}

// Selection implements scene.Graph.
func (s *MemScene) Selection() []scene.Object {
	out := make([]scene.Object, len(s.selection))
	for i, o := range s.selection {
		out[i] = o
	}
	return out
}

// Select implements scene.Graph.
func (s *MemScene) Select(objs []scene.Object) {
	s.selection = s.selection[:0]
	for _, o := range objs {
		if mo, ok := o.(*MemObject); ok && s.contains(mo) {
			s.selection = append(s.selection, mo)
		}
	}
}

// Delete implements scene.Graph. The whole set is removed in one pass.
func (s *MemScene) Delete(objs []scene.Object) error {
	doomed := make(map[string]bool, len(objs))
	for _, o := range objs {
		doomed[o.ID()] = true
	}
	s.objects = filterOut(s.objects, doomed)
	s.selection = filterOut(s.selection, doomed)
	return nil
}

// ResetWorkspace implements scene.Graph.
func (s *MemScene) ResetWorkspace() error {
	s.objects = nil
	s.selection = nil
	return nil
}

// MaterialByID implements scene.Graph.
func (s *MemScene) MaterialByID(id string) (scene.Material, bool) {
	m, ok := s.materials[id]
	return m, ok
}

// SetMaterial implements scene.Graph.
func (s *MemScene) SetMaterial(obj scene.Object, materialID string) error {
	mo, ok := obj.(*MemObject)
	if !ok || !s.contains(mo) {
		return fmt.Errorf("object %s is not part of this scene", obj.ID())
	}
	if _, known := s.materials[materialID]; !known {
		return fmt.Errorf("unknown material %q", materialID)
	}
	mo.materialID = materialID
	return nil
}

// ConvertToMesh implements scene.MeshEditor.
func (s *MemScene) ConvertToMesh(_ context.Context, obj scene.Object) (scene.Object, error) {
	mo, ok := obj.(*MemObject)
	if !ok || !s.contains(mo) {
		return nil, fmt.Errorf("object %s is not part of this scene", obj.ID())
	}
	if s.FailConvert[mo.name] {
		return nil, fmt.Errorf("cannot convert %q to editable mesh", mo.name)
	}
	mo.editable = true
	mo.kind = scene.KindMesh
	return mo, nil
}

// Attach implements scene.MeshEditor. On success the source object is
// consumed: removed from the scene with its faces absorbed by target.
func (s *MemScene) Attach(_ context.Context, target, source scene.Object) error {
	tgt, ok := target.(*MemObject)
	if !ok || !s.contains(tgt) {
		return fmt.Errorf("attach target %s is not part of this scene", target.ID())
	}
	src, ok := source.(*MemObject)
	if !ok || !s.contains(src) {
		return fmt.Errorf("attach source %s is not part of this scene", source.ID())
	}
	if !tgt.editable {
		return fmt.Errorf("attach target %q is not an editable mesh", tgt.name)
	}
	if s.FailAttach[src.name] {
		return fmt.Errorf("attach of %q failed", src.name)
	}

	tgt.faces += src.faces
	return s.Delete([]scene.Object{src})
}

// contains reports whether obj is live in the scene.
func (s *MemScene) contains(obj *MemObject) bool {
	for _, o := range s.objects {
		if o == obj {
			return true
		}
	}
	return false
}

// filterOut returns objs without the entries whose ID is in doomed.
func filterOut(objs []*MemObject, doomed map[string]bool) []*MemObject {
	kept := objs[:0]
	for _, o := range objs {
		if !doomed[o.ID()] {
			kept = append(kept, o)
		}
	}
	return kept
}
