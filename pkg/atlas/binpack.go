package atlas

// none marks a missing child in the node arena.
const none = -1

// node is one rectangle of the free-space partition. A used node has been
// split: its top-left corner holds a placed block, and right and down
// index the remaining free space beside and below it.
type node struct {
	x, y, w, h  int
	used        bool
	right, down int
}

// binTree is a binary partition of the canvas stored as an arena. Children
// are addressed by index so traversal order, and therefore placement, is
// fully deterministic.
type binTree struct {
	nodes []node
	root  int
}

func newBinTree(w, h int) *binTree {
	t := &binTree{}
	t.root = t.add(node{w: w, h: h, right: none, down: none})
	return t
}

func (t *binTree) add(n node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *binTree) size() Size {
	r := t.nodes[t.root]
	return Size{Width: r.w, Height: r.h}
}

// find returns the first free node, searching right before down, that can
// hold a w x h block, or none.
func (t *binTree) find(i, w, h int) int {
	if i == none {
		return none
	}
	n := t.nodes[i]
	if n.used {
		if r := t.find(n.right, w, h); r != none {
			return r
		}
		return t.find(n.down, w, h)
	}
	if w <= n.w && h <= n.h {
		return i
	}
	return none
}

// split places a w x h block in the top-left corner of node i and returns
// its position.
func (t *binTree) split(i, w, h int) (int, int) {
	n := t.nodes[i]
	down := t.add(node{x: n.x, y: n.y + h, w: n.w, h: n.h - h, right: none, down: none})
	right := t.add(node{x: n.x + w, y: n.y, w: n.w - w, h: h, right: none, down: none})
	n.used, n.down, n.right = true, down, right
	t.nodes[i] = n
	return n.x, n.y
}

// insert places a block without growing the tree.
func (t *binTree) insert(w, h int) (x, y int, ok bool) {
	i := t.find(t.root, w, h)
	if i == none {
		return 0, 0, false
	}
	x, y = t.split(i, w, h)
	return x, y, true
}

// grow extends the canvas by one block so that it stays roughly square,
// preferring to widen a tall canvas and to heighten a wide one. A block can
// only be added beside the canvas when it is no taller than the canvas, and
// only below it when it is no wider.
func (t *binTree) grow(w, h int) bool {
	r := t.nodes[t.root]
	canDown := w <= r.w
	canRight := h <= r.h
	shouldRight := canRight && r.h >= r.w+w
	shouldDown := canDown && r.w >= r.h+h

	switch {
	case shouldRight:
		t.growRight(w)
	case shouldDown:
		t.growDown(h)
	case canRight:
		t.growRight(w)
	case canDown:
		t.growDown(h)
	default:
		return false
	}
	return true
}

func (t *binTree) growRight(w int) {
	old := t.nodes[t.root]
	strip := t.add(node{x: old.w, y: 0, w: w, h: old.h, right: none, down: none})
	t.root = t.add(node{w: old.w + w, h: old.h, used: true, down: t.root, right: strip})
}

func (t *binTree) growDown(h int) {
	old := t.nodes[t.root]
	strip := t.add(node{x: 0, y: old.h, w: old.w, h: h, right: none, down: none})
	t.root = t.add(node{w: old.w, h: old.h + h, used: true, down: strip, right: t.root})
}
