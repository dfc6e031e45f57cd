package render

import (
	"sort"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Node is anything that can be drawn inside the content root. Nodes draw in
// virtual units onto an image the size of the virtual resolution; the game
// scales and centers that image.
type Node interface {
	Draw(dst *ebiten.Image)
}

// NodeFunc adapts a function to the Node interface.
type NodeFunc func(dst *ebiten.Image)

// Draw calls f(dst).
func (f NodeFunc) Draw(dst *ebiten.Image) { f(dst) }

// NodeID identifies an attached node.
type NodeID uint64

// ContentRoot is the scaled, centered region that downstream code attaches
// its content to. Its identity is stable for the lifetime of a Game.
type ContentRoot struct {
	mu     sync.RWMutex
	nextID NodeID
	nodes  map[NodeID]Node
}

func newContentRoot() *ContentRoot {
	return &ContentRoot{nodes: make(map[NodeID]Node)}
}

// Attach adds n as a child of the root. Children draw in attach order.
func (cr *ContentRoot) Attach(n Node) NodeID {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.nextID++
	cr.nodes[cr.nextID] = n
	return cr.nextID
}

// Detach removes the child with the given id. It reports whether the child existed.
func (cr *ContentRoot) Detach(id NodeID) bool {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	if _, ok := cr.nodes[id]; !ok {
		return false
	}
	delete(cr.nodes, id)
	return true
}

// Len returns the number of attached children.
func (cr *ContentRoot) Len() int {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	return len(cr.nodes)
}

// children returns the attached nodes in attach order.
func (cr *ContentRoot) children() []Node {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	ids := make([]NodeID, 0, len(cr.nodes))
	for id := range cr.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, cr.nodes[id])
	}
	return out
}

// draw renders every child onto dst.
func (cr *ContentRoot) draw(dst *ebiten.Image) {
	for _, n := range cr.children() {
		n.Draw(dst)
	}
}
