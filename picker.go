package tamarack

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// --- Entity resolution ---

// ResolveSelectable walks from the struck node upward through parent links
// until it finds a node flagged Selectable. Returns nil when no ancestor
// (including n itself) is selectable — a normal negative outcome, not an
// error: not every surface a ray can strike maps to a pickable entity.
func ResolveSelectable(n *Node) *Node {
	for p := n; p != nil; p = p.Parent {
		if p.Selectable {
			return p
		}
	}
	if n != nil && globalDebug {
		debugf("no selectable ancestor for node %q (ID %d)", n.Name, n.ID)
	}
	return nil
}

// --- Events ---

// SelectionEvent is delivered to selection listeners after a completed
// selection transition. Node is nil on deselection.
type SelectionEvent struct {
	// Node is the newly selected entity, or nil.
	Node *Node
	// Name is Node's name, or "" on deselection.
	Name string
	// Previous is the entity that was selected before this transition, or nil.
	Previous *Node
}

type selectionHandler struct {
	id uint32
	fn func(SelectionEvent)
}

// CallbackHandle allows removing a registered selection callback.
type CallbackHandle struct {
	id     uint32
	picker *Picker
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.picker == nil {
		return
	}
	s := h.picker.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = selectionHandler{}
			h.picker.handlers = s[:len(s)-1]
			return
		}
	}
}

// --- Appearance snapshot ---

// savedMaterial is one material-bearing node's pre-highlight appearance.
type savedMaterial struct {
	node     *Node
	material Material
}

// appearanceSnapshot holds the selected entity's saved appearance. A single
// slot, owned exclusively by the Picker: at most one entity is ever
// highlighted, so a multi-entry map could only accumulate stale saves.
type appearanceSnapshot struct {
	node  *Node
	saved []savedMaterial
}

// --- Picker ---

// Picker is the selection and highlight manager. It is a two-state machine:
// no selection, or exactly one selected entity whose subtree carries the
// highlight appearance. Every transition restores the previously selected
// entity's saved appearance before a new highlight is applied, so at most
// one entity is ever highlighted.
//
// All methods must be called from the same goroutine that mutates the scene;
// a pick runs to completion synchronously and no partial transition is
// observable from listeners.
type Picker struct {
	// Highlight is the appearance applied to selected entities.
	Highlight HighlightStyle

	// DeselectOnRepick makes picking the currently selected entity deselect
	// it. Off by default: a repeated pick of the same entity is a no-op,
	// which avoids stacking appearance snapshots.
	DeselectOnRepick bool

	selected *Node
	snapshot *appearanceSnapshot

	handlers []selectionHandler
	nextID   uint32

	pulseTween *gween.Tween
	pulseDim   bool // current tween runs bright -> dim
}

// NewPicker creates a Picker with the default highlight style.
func NewPicker() *Picker {
	return &Picker{Highlight: DefaultHighlight}
}

// Selected returns the currently selected entity, or nil.
func (p *Picker) Selected() *Node {
	return p.selected
}

// OnSelectionChanged registers a callback fired once per completed selection
// transition, after all appearance mutations for that transition are applied.
// A panicking listener is recovered and logged; it cannot corrupt selection
// state or suppress delivery to other listeners.
func (p *Picker) OnSelectionChanged(fn func(SelectionEvent)) CallbackHandle {
	p.nextID++
	id := p.nextID
	p.handlers = append(p.handlers, selectionHandler{id: id, fn: fn})
	return CallbackHandle{id: id, picker: p}
}

// Apply resolves the nearest hit to a selectable entity and runs the
// selection transition for it. An empty hit list (or hits with no selectable
// ancestor) deselects. Returns the entity selected after the transition.
func (p *Picker) Apply(hits []Hit) *Node {
	var target *Node
	if len(hits) > 0 {
		target = ResolveSelectable(hits[0].Node)
	}
	p.Select(target)
	return p.selected
}

// Select runs the selection state machine for the resolved target entity.
// A nil target deselects. Selecting the already selected entity is a no-op
// (no snapshot re-save, no duplicate event) unless DeselectOnRepick is set.
func (p *Picker) Select(target *Node) {
	if target == p.selected {
		if target == nil {
			return // idle pick on empty space: no transition, no event
		}
		if !p.DeselectOnRepick {
			return
		}
		target = nil
	}

	prev := p.selected

	// Restore must run to completion before the next highlight is applied,
	// so an observer never sees two highlighted entities.
	if prev != nil {
		p.restore()
		p.selected = nil
	}

	if target != nil {
		p.highlight(target)
		p.selected = target
	}

	var name string
	if target != nil {
		name = target.Name
	}
	p.emit(SelectionEvent{Node: target, Name: name, Previous: prev})
}

// Deselect clears the current selection, restoring its appearance.
// Equivalent to Select(nil).
func (p *Picker) Deselect() {
	p.Select(nil)
}

// --- Highlight application ---

// highlight saves and replaces the appearance of every material-bearing node
// in the entity's subtree. The whole entity highlights as a unit, not just
// the struck solid. Nodes without a material are skipped silently; nodes
// with malformed material values are skipped with a diagnostic. Neither
// aborts the transition or the highlighting of siblings.
func (p *Picker) highlight(entity *Node) {
	snap := &appearanceSnapshot{node: entity}
	p.saveAndApply(entity, snap)
	p.snapshot = snap

	if p.Highlight.Pulse {
		p.startPulse()
	} else {
		p.pulseTween = nil
	}
}

func (p *Picker) saveAndApply(n *Node, snap *appearanceSnapshot) {
	if n.Material != nil {
		switch {
		case n.disposed:
			debugf("skipping disposed node %q during highlight", n.Name)
		case !n.Material.valid():
			debugf("skipping node %q during highlight: malformed material", n.Name)
		default:
			snap.saved = append(snap.saved, savedMaterial{node: n, material: *n.Material})
			n.Material.Emissive = p.Highlight.Emissive
		}
	}
	for _, child := range n.children {
		p.saveAndApply(child, snap)
	}
}

// restore writes every saved appearance back and discards the snapshot.
// Nodes disposed or stripped of their material while selected are skipped.
func (p *Picker) restore() {
	if p.snapshot == nil {
		return
	}
	for _, entry := range p.snapshot.saved {
		if entry.node.disposed || entry.node.Material == nil {
			debugf("skipping node %q during restore", entry.node.Name)
			continue
		}
		*entry.node.Material = entry.material
	}
	p.snapshot = nil
	p.pulseTween = nil
}

// --- Pulse animation ---

const defaultPulsePeriod = 1.2

// pulseDimFactor is the glow brightness at the dim end of the pulse.
const pulseDimFactor = 0.35

func (p *Picker) startPulse() {
	period := p.Highlight.PulsePeriod
	if period <= 0 {
		period = defaultPulsePeriod
	}
	p.pulseTween = gween.New(1, pulseDimFactor, period/2, ease.InOutSine)
	p.pulseDim = true
}

// update advances the highlight pulse. Called from Scene.Update; a no-op
// when nothing is selected or the style has no pulse.
func (p *Picker) update(dt float32) {
	if p.pulseTween == nil || p.snapshot == nil {
		return
	}
	k, done := p.pulseTween.Update(dt)
	glow := p.Highlight.scaled(k)
	for _, entry := range p.snapshot.saved {
		if entry.node.disposed || entry.node.Material == nil {
			continue
		}
		entry.node.Material.Emissive = glow
	}
	if done {
		// Flip direction for the other half of the cycle.
		period := p.Highlight.PulsePeriod
		if period <= 0 {
			period = defaultPulsePeriod
		}
		if p.pulseDim {
			p.pulseTween = gween.New(pulseDimFactor, 1, period/2, ease.InOutSine)
		} else {
			p.pulseTween = gween.New(1, pulseDimFactor, period/2, ease.InOutSine)
		}
		p.pulseDim = !p.pulseDim
	}
}

// --- Event dispatch ---

// emit dispatches from a snapshot of the handler list: a listener may call
// CallbackHandle.Remove while the event fires, which shifts the live slice in
// place. Removal takes effect for subsequent events; every handler registered
// when the transition completed still receives this one.
func (p *Picker) emit(ev SelectionEvent) {
	handlers := append([]selectionHandler(nil), p.handlers...)
	for _, h := range handlers {
		callListener(h.fn, ev)
	}
}

// callListener isolates listener panics: selection state is already
// consistent by the time listeners run, and one broken subscriber must not
// prevent delivery to the rest.
func callListener(fn func(SelectionEvent), ev SelectionEvent) {
	defer func() {
		if r := recover(); r != nil {
			warnf("selection listener panicked: %v", r)
		}
	}()
	fn(ev)
}
