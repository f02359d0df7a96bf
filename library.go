package tamarack

import "fmt"

// Library is an explicitly owned store of prototype node subtrees, keyed by
// name. Loaders register assembled models once; scenes then clone instances
// out of it. There is deliberately no package-level library: construct one
// and pass it to whatever loads scenes, so tests and multiple scenes stay
// isolated.
type Library struct {
	models map[string]*Node
}

// NewLibrary creates an empty model library.
func NewLibrary() *Library {
	return &Library{models: make(map[string]*Node)}
}

// Register stores proto as the prototype for name, replacing any previous
// entry. The library takes no ownership of proto's place in a scene — a
// registered prototype should stay detached. Panics on a nil or disposed
// prototype.
func (l *Library) Register(name string, proto *Node) {
	if proto == nil {
		panic("tamarack: cannot register nil prototype")
	}
	if proto.IsDisposed() {
		panic(fmt.Sprintf("tamarack: cannot register disposed prototype %q", name))
	}
	l.models[name] = proto
}

// Clone returns a deep copy of the named prototype with fresh node IDs.
// Meshes are shared between clones (they are immutable); materials are
// copied so highlighting one instance never touches another.
func (l *Library) Clone(name string) (*Node, error) {
	proto, ok := l.models[name]
	if !ok {
		return nil, fmt.Errorf("tamarack: unknown model %q", name)
	}
	return cloneSubtree(proto), nil
}

// Evict removes the named prototype. Returns false if it was not present.
func (l *Library) Evict(name string) bool {
	if _, ok := l.models[name]; !ok {
		return false
	}
	delete(l.models, name)
	return true
}

// Clear removes all prototypes.
func (l *Library) Clear() {
	clear(l.models)
}

// Len returns the number of registered prototypes.
func (l *Library) Len() int {
	return len(l.models)
}

// cloneSubtree deep-copies a node and its descendants.
func cloneSubtree(src *Node) *Node {
	dst := &Node{
		Name:       src.Name,
		Position:   src.Position,
		Rotation:   src.Rotation,
		Scale:      src.Scale,
		Visible:    src.Visible,
		Selectable: src.Selectable,
		Mesh:       src.Mesh,
		UserData:   src.UserData,
	}
	dst.ID = nextNodeID()
	dst.transformDirty = true
	if src.Material != nil {
		mat := *src.Material
		dst.Material = &mat
	}
	for _, child := range src.children {
		c := cloneSubtree(child)
		c.Parent = dst
		dst.children = append(dst.children, c)
	}
	return dst
}
