//go:build !noebiten

package render

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestContentRootAttachDetach(t *testing.T) {
	cr := newContentRoot()

	a := cr.Attach(NodeFunc(func(*ebiten.Image) {}))
	b := cr.Attach(NodeFunc(func(*ebiten.Image) {}))
	if a == b {
		t.Fatalf("Attach returned duplicate id %d", a)
	}
	if cr.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cr.Len())
	}

	if !cr.Detach(a) {
		t.Error("Detach(a) = false, want true")
	}
	if cr.Detach(a) {
		t.Error("second Detach(a) = true, want false")
	}
	if cr.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cr.Len())
	}
}

func TestContentRootDrawOrder(t *testing.T) {
	cr := newContentRoot()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		cr.Attach(NodeFunc(func(*ebiten.Image) { order = append(order, i) }))
	}

	cr.draw(ebiten.NewImage(4, 4))

	if len(order) != 5 {
		t.Fatalf("drew %d nodes, want 5", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Errorf("order[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestContentRootIDsNotReused(t *testing.T) {
	cr := newContentRoot()

	a := cr.Attach(NodeFunc(func(*ebiten.Image) {}))
	cr.Detach(a)
	b := cr.Attach(NodeFunc(func(*ebiten.Image) {}))
	if b == a {
		t.Errorf("id %d reused after Detach", a)
	}
}
