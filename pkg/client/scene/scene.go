// Package scene mirrors the HUD scene graph a server draws on a client.
// Elements are kept by name and resolved to screen rectangles on demand.
package scene

import (
	"sort"
	"sync"

	"statushud/pkg/hud"
)

// Rect is a screen rectangle with a top-left origin.
type Rect struct {
	X, Y, W, H float64
}

// Node is an element with its resolved screen rectangle.
type Node struct {
	Element hud.Element
	Rect    Rect
	Depth   int
}

type entry struct {
	element hud.Element
	seq     uint64
}

// Tree holds the elements currently drawn for one user. It is safe for
// concurrent use: the network loop writes while the renderer reads.
type Tree struct {
	Width, Height float64

	mu      sync.RWMutex
	entries map[string]*entry
	nextSeq uint64
}

func NewTree(width, height float64) *Tree {
	return &Tree{
		Width:   width,
		Height:  height,
		entries: make(map[string]*entry),
	}
}

// Draw adds elements. An element whose name is already present replaces it
// and drops the old element's children.
func (t *Tree) Draw(elements []hud.Element) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range elements {
		if e.Name == "" {
			continue
		}
		if _, ok := t.entries[e.Name]; ok {
			t.destroyLocked(e.Name)
		}
		t.nextSeq++
		t.entries[e.Name] = &entry{element: e.Clone(), seq: t.nextSeq}
	}
}

// Destroy removes name and every element below it. Unknown names are ignored.
func (t *Tree) Destroy(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.destroyLocked(name)
}

func (t *Tree) destroyLocked(name string) {
	if _, ok := t.entries[name]; !ok {
		return
	}
	delete(t.entries, name)
	for child, e := range t.entries {
		if e.element.Parent == name {
			t.destroyLocked(child)
		}
	}
}

// Clear drops everything, as when the connection is lost.
func (t *Tree) Clear() {
	t.mu.Lock()
	t.entries = make(map[string]*entry)
	t.mu.Unlock()
}

func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Get returns a copy of the named element.
func (t *Tree) Get(name string) (hud.Element, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[name]
	if !ok {
		return hud.Element{}, false
	}
	return e.element.Clone(), true
}

// Nodes resolves every element whose ancestry reaches the screen, parents
// before children and siblings in draw order.
func (t *Tree) Nodes() []Node {
	t.mu.RLock()
	defer t.mu.RUnlock()

	children := make(map[string][]*entry)
	var roots []*entry
	for _, e := range t.entries {
		if _, ok := t.entries[e.element.Parent]; ok {
			children[e.element.Parent] = append(children[e.element.Parent], e)
		} else {
			roots = append(roots, e)
		}
	}
	bySeq := func(list []*entry) {
		sort.Slice(list, func(i, j int) bool { return list[i].seq < list[j].seq })
	}
	bySeq(roots)

	var out []Node
	var walk func(e *entry, parent box, depth int)
	walk = func(e *entry, parent box, depth int) {
		b := parent.place(e.element.Rect)
		out = append(out, Node{Element: e.element.Clone(), Rect: b.screen(t.Height), Depth: depth})
		kids := children[e.element.Name]
		bySeq(kids)
		for _, k := range kids {
			walk(k, b, depth+1)
		}
	}
	screen := box{maxX: t.Width, maxY: t.Height}
	for _, r := range roots {
		walk(r, screen, 0)
	}
	return out
}

// box is a rectangle in bottom-left origin coordinates.
type box struct {
	minX, minY, maxX, maxY float64
}

func (b box) place(r hud.RectTransform) box {
	w, h := b.maxX-b.minX, b.maxY-b.minY
	return box{
		minX: b.minX + r.AnchorMin.X*w + r.OffsetMin.X,
		minY: b.minY + r.AnchorMin.Y*h + r.OffsetMin.Y,
		maxX: b.minX + r.AnchorMax.X*w + r.OffsetMax.X,
		maxY: b.minY + r.AnchorMax.Y*h + r.OffsetMax.Y,
	}
}

func (b box) screen(height float64) Rect {
	return Rect{
		X: b.minX,
		Y: height - b.maxY,
		W: b.maxX - b.minX,
		H: b.maxY - b.minY,
	}
}
