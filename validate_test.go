// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package rbtree

import (
	"errors"
	"testing"
)

func TestValidateEmptyTree(t *testing.T) {
	t.Parallel()
	tree := New()
	if err := tree.Validate(0); err != nil {
		t.Fatalf("Validate(0) on empty tree: %v", err)
	}
}

func TestValidateDetectsRedRedViolation(t *testing.T) {
	t.Parallel()

	tree := New()
	v := tree.reg.advance()

	root := tree.arena.new(kindInternal, 10)
	root.original.color = Black
	tree.reg.setRoot(root, v)

	child := tree.arena.new(kindInternal, 20)
	child.original.color = Red
	tree.arena.setField(root, fieldRight, child, Black, v)
	tree.arena.setField(child, fieldParent, root, Black, v)

	grandchild := tree.arena.new(kindInternal, 30)
	grandchild.original.color = Red
	tree.arena.setField(child, fieldRight, grandchild, Black, v)
	tree.arena.setField(grandchild, fieldParent, child, Black, v)

	err := tree.Validate(v)
	if err == nil {
		t.Fatal("Validate did not detect Red-Red violation")
	}
	if !errors.Is(err, ErrRedRedViolation) {
		t.Fatalf("Validate error = %v, want wrapping ErrRedRedViolation", err)
	}
}

func TestValidateDetectsBSTViolation(t *testing.T) {
	t.Parallel()

	tree := New()
	v := tree.reg.advance()

	root := tree.arena.new(kindInternal, 10)
	root.original.color = Black
	tree.reg.setRoot(root, v)

	// Planted on the wrong side: 5 belongs left of 10, not right.
	bad := tree.arena.new(kindInternal, 5)
	bad.original.color = Black
	tree.arena.setField(root, fieldRight, bad, Black, v)
	tree.arena.setField(bad, fieldParent, root, Black, v)

	err := tree.Validate(v)
	if err == nil {
		t.Fatal("Validate did not detect BST violation")
	}
	if !errors.Is(err, ErrBSTOrder) {
		t.Fatalf("Validate error = %v, want wrapping ErrBSTOrder", err)
	}
}

// TestValidateChecksReturnPointersAndModLogOnOrdinaryTree guards against
// Validate silently skipping invariants R and V on a tree built entirely
// through the public API: both must hold, and Validate at the current
// version must report no error.
func TestValidateChecksReturnPointersAndModLogOnOrdinaryTree(t *testing.T) {
	t.Parallel()

	tree := New()
	for _, k := range []Key{50, 30, 70, 20, 40, 60, 80} {
		tree.Insert(k)
	}

	if err := tree.Validate(tree.CurrentVersion()); err != nil {
		t.Fatalf("Validate on ordinary tree: %v", err)
	}
}

func TestValidateDetectsReturnPointerViolation(t *testing.T) {
	t.Parallel()

	tree := New()
	v := tree.reg.advance()

	root := tree.arena.new(kindInternal, 10)
	root.original.color = Black
	tree.reg.setRoot(root, v)

	child := tree.arena.new(kindInternal, 20)
	child.original.color = Red
	tree.arena.setField(root, fieldRight, child, Black, v)
	tree.arena.setField(child, fieldParent, root, Black, v)

	// Corrupt the return pointer directly: root.right(v) still reports
	// child, but root.returnRight no longer agrees.
	root.returnRight = nil

	err := tree.Validate(v)
	if err == nil {
		t.Fatal("Validate did not detect return-pointer violation")
	}
	if !errors.Is(err, ErrReturnPointerStale) {
		t.Fatalf("Validate error = %v, want wrapping ErrReturnPointerStale", err)
	}
}

func TestValidateSkipsReturnPointerCheckOnHistoricalVersion(t *testing.T) {
	t.Parallel()

	tree := New()
	tree.Insert(10)
	tree.Insert(20)
	v1 := tree.CurrentVersion()
	tree.Insert(5)

	// v1 is no longer the current version, so the return-pointer caches
	// (which only ever describe the current state) are not expected to
	// match what left/right/parent report at v1; only current-version
	// checks enforce R.
	if err := tree.Validate(v1); err != nil {
		t.Fatalf("Validate(v1) on historical version: %v", err)
	}
}

func TestValidateDetectsModLogVersionRegression(t *testing.T) {
	t.Parallel()

	tree := New()
	v := tree.reg.advance()

	root := tree.arena.new(kindInternal, 10)
	root.original.color = Black
	tree.reg.setRoot(root, v)
	tree.arena.setField(root, fieldColor, nil, Black, v)

	// Directly append an out-of-order entry, bypassing setField. It keeps the
	// root Black so that the RB-1 check does not report first.
	root.mods = append(root.mods, modEntry{f: fieldColor, color: Black, version: v - 1})

	err := tree.Validate(v)
	if err == nil {
		t.Fatal("Validate did not detect mod-log version regression")
	}
	if !errors.Is(err, ErrModLogVersionOrder) {
		t.Fatalf("Validate error = %v, want wrapping ErrModLogVersionOrder", err)
	}
}
