// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package rbtree

// Tree is a partially persistent ordered set of int32 keys, implemented as
// a red-black tree whose every pointer and color mutation is tagged with a
// version. The zero value is not ready to use; construct one
// with New.
//
// A Tree must not be copied by value: a copy shares the original's arena
// and registry pointers, so mutations through either copy change the same
// nodes and the same version counter. Use a pointer.
type Tree struct {
	arena *arena
	reg   *registry
}

// New returns an empty Tree at version 0.
func New() *Tree {
	return &Tree{arena: newArena(), reg: newRegistry()}
}

// CurrentVersion returns the version of the most recently completed
// mutation, or 0 if none has happened yet.
func (t *Tree) CurrentVersion() int {
	return t.reg.currentVersion()
}

// Insert adds key to the set.
//
// Precondition: key must not already be present. Inserting a key that is
// already present is a precondition violation and panics, matching the
// reference's abort-on-duplicate behaviour.
func (t *Tree) Insert(key Key) {
	v := t.reg.advance()

	var p *Node
	n := t.reg.rootAt(v)
	for n != nil {
		p = n
		switch {
		case key < n.key:
			n = n.left(v)
		case key > n.key:
			n = n.right(v)
		default:
			panic("rbtree: duplicate insert of an existing key")
		}
	}

	z := t.arena.new(kindInternal, key)
	z.original.color = Red

	if p == nil {
		t.reg.setRoot(z, v)
	} else if key < p.key {
		t.arena.setField(p, fieldLeft, z, Black, v)
		t.arena.setField(z, fieldParent, p, Black, v)
	} else {
		t.arena.setField(p, fieldRight, z, Black, v)
		t.arena.setField(z, fieldParent, p, Black, v)
	}

	t.insertFixup(z, v)
}

// insertFixup restores RB-1/RB-2 after Insert attached z as a Red leaf,
// following the textbook parent/grandparent/uncle case analysis,
// recursing on the grandparent in the recoloring case.
func (t *Tree) insertFixup(z *Node, v int) {
	p := z.parent(v)
	if p == nil {
		t.arena.setField(z, fieldColor, nil, Black, v)
		return
	}
	if p.isBlack(v) {
		return
	}

	g := p.parent(v)
	if g == nil {
		t.arena.setField(p, fieldColor, nil, Black, v)
		return
	}

	u := uncle(p, v)
	if isRedOf(u, v) {
		t.arena.setField(p, fieldColor, nil, Black, v)
		t.arena.setField(g, fieldColor, nil, Red, v)
		t.arena.setField(u, fieldColor, nil, Black, v)
		t.insertFixup(g, v)
		return
	}

	if p.isLeftChildOf(g, v) {
		if z.isRightChildOf(p, v) {
			t.rotateLeft(p, v)
			p, z = z, p
		}
		t.rotateRight(g, v)
	} else {
		if z.isLeftChildOf(p, v) {
			t.rotateRight(p, v)
			p, z = z, p
		}
		t.rotateLeft(g, v)
	}
	t.arena.setField(p, fieldColor, nil, Black, v)
	t.arena.setField(g, fieldColor, nil, Red, v)
}

// Remove deletes key from the set. It is a no-op, and does not advance the
// version, if key is absent.
func (t *Tree) Remove(key Key) {
	cur := t.reg.currentVersion()
	n := t.search(key, cur)
	if n == nil {
		return
	}

	v := t.reg.advance()

	var moved *Node
	var deletedWasBlack bool

	nLeft, nRight := n.left(v), n.right(v)
	if nLeft != nil && nRight != nil {
		s := minimum(nRight, v)

		if s.right(v) == nil {
			nilMarker := t.arena.new(kindNil, 0)
			t.arena.setField(s, fieldRight, nilMarker, Black, v)
			t.arena.setField(nilMarker, fieldParent, s, Black, v)
		}
		oldSRight := s.right(v)

		if s != nRight {
			sParent := s.parent(v)
			t.swapParentsChild(sParent, s, oldSRight, v)

			t.arena.setField(s, fieldRight, nRight, Black, v)
			t.arena.setField(nRight, fieldParent, s, Black, v)
		}

		nParent := n.parent(v)
		t.swapParentsChild(nParent, n, s, v)

		nLeftNow := n.left(v)
		t.arena.setField(s, fieldLeft, nLeftNow, Black, v)
		if nLeftNow != nil {
			t.arena.setField(nLeftNow, fieldParent, s, Black, v)
		}

		deletedWasBlack = s.isBlack(v)
		t.arena.setField(s, fieldColor, nil, n.color(v), v)

		moved = oldSRight
	} else {
		deletedWasBlack = n.isBlack(v)
		moved = t.removeWithZeroOrOneChild(n, v)
	}

	if deletedWasBlack {
		t.removeFixup(moved, v)
	}

	if moved != nil && moved.isNil() {
		mp := moved.parent(v)
		t.swapParentsChild(mp, moved, nil, v)
	}
}

// removeWithZeroOrOneChild excises n, which has at most one child, from
// the tree and returns the node that moved up into its place: its single
// child if it has one, a fresh Nil marker if n is Black and childless (to
// carry the double-black weight into remove-fixup), or nil if n is a Red
// leaf (no fixup needed).
func (t *Tree) removeWithZeroOrOneChild(n *Node, v int) *Node {
	nParent := n.parent(v)

	switch {
	case n.left(v) != nil:
		child := n.left(v)
		t.swapParentsChild(nParent, n, child, v)
		return child
	case n.right(v) != nil:
		child := n.right(v)
		t.swapParentsChild(nParent, n, child, v)
		return child
	default:
		var repl *Node
		if n.isBlack(v) {
			repl = t.arena.new(kindNil, 0)
		}
		t.swapParentsChild(nParent, n, repl, v)
		return repl
	}
}

// removeFixup restores RB-1/RB-2/RB-3 after excising a Black node, walking
// x's double-black weight up the tree through the standard case analysis.
// x is never nil: the only case that would hand removeFixup a nil x
// (a Red leaf removal) never sets deletedWasBlack.
func (t *Tree) removeFixup(x *Node, v int) {
	p := x.parent(v)
	if p == nil {
		t.arena.setField(x, fieldColor, nil, Black, v)
		return
	}

	isLeft := x.isLeftChildOf(p, v)
	sib := x.sibling(v)

	if isRedOf(sib, v) {
		t.arena.setField(sib, fieldColor, nil, Black, v)
		t.arena.setField(p, fieldColor, nil, Red, v)
		if isLeft {
			t.rotateLeft(p, v)
		} else {
			t.rotateRight(p, v)
		}
		sib = x.sibling(v)
	}

	if isBlackOf(sib.left(v), v) && isBlackOf(sib.right(v), v) {
		t.arena.setField(sib, fieldColor, nil, Red, v)
		if isRedOf(p, v) {
			t.arena.setField(p, fieldColor, nil, Black, v)
			return
		}
		t.removeFixup(p, v)
		return
	}

	if isLeft && isBlackOf(sib.right(v), v) {
		t.arena.setField(sib.left(v), fieldColor, nil, Black, v)
		t.arena.setField(sib, fieldColor, nil, Red, v)
		t.rotateRight(sib, v)
		sib = p.right(v)
	} else if !isLeft && isBlackOf(sib.left(v), v) {
		t.arena.setField(sib.right(v), fieldColor, nil, Black, v)
		t.arena.setField(sib, fieldColor, nil, Red, v)
		t.rotateLeft(sib, v)
		sib = p.left(v)
	}

	t.arena.setField(sib, fieldColor, nil, p.color(v), v)
	t.arena.setField(p, fieldColor, nil, Black, v)
	if isLeft {
		t.arena.setField(sib.right(v), fieldColor, nil, Black, v)
		t.rotateLeft(p, v)
	} else {
		t.arena.setField(sib.left(v), fieldColor, nil, Black, v)
		t.rotateRight(p, v)
	}
}

// swapParentsChild re-links newTop into oldChild's slot under oldParent,
// updating the registry's root if oldParent is absent. This is the single
// relinking primitive both rotations and remove's excision route through.
func (t *Tree) swapParentsChild(oldParent, oldChild, newTop *Node, v int) {
	if oldParent == nil {
		t.reg.setRoot(newTop, v)
	} else if oldChild.isLeftChildOf(oldParent, v) {
		t.arena.setField(oldParent, fieldLeft, newTop, Black, v)
	} else {
		t.arena.setField(oldParent, fieldRight, newTop, Black, v)
	}

	if newTop != nil {
		t.arena.setField(newTop, fieldParent, oldParent, Black, v)
	}
}

// rotateLeft performs the classical left rotation around n, with every
// pointer assignment routed through setField at v.
func (t *Tree) rotateLeft(n *Node, v int) {
	p := n.parent(v)
	r := n.right(v)
	rl := r.left(v)

	t.arena.setField(n, fieldRight, rl, Black, v)
	if rl != nil {
		t.arena.setField(rl, fieldParent, n, Black, v)
	}

	t.swapParentsChild(p, n, r, v)

	t.arena.setField(r, fieldLeft, n, Black, v)
	t.arena.setField(n, fieldParent, r, Black, v)
}

// rotateRight is the mirror image of rotateLeft.
func (t *Tree) rotateRight(n *Node, v int) {
	p := n.parent(v)
	l := n.left(v)
	lr := l.right(v)

	t.arena.setField(n, fieldLeft, lr, Black, v)
	if lr != nil {
		t.arena.setField(lr, fieldParent, n, Black, v)
	}

	t.swapParentsChild(p, n, l, v)

	t.arena.setField(l, fieldRight, n, Black, v)
	t.arena.setField(n, fieldParent, l, Black, v)
}
