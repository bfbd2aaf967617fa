// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package rbtree

import "github.com/pkg/errors"

// Sentinel errors returned (wrapped) by Validate, one per structural
// invariant a well-formed tree must hold at every reachable version.
var (
	ErrRootNotBlack       = errors.New("rbtree: RB-1 violated: root is not Black")
	ErrRedRedViolation    = errors.New("rbtree: RB-2 violated: Red node has a Red child")
	ErrBlackHeight        = errors.New("rbtree: RB-3 violated: unequal Black heights")
	ErrBSTOrder           = errors.New("rbtree: BST invariant violated: key out of order")
	ErrModLogOverflow     = errors.New("rbtree: L invariant violated: mod log exceeds MOD_LIMIT")
	ErrModLogVersionOrder = errors.New("rbtree: V invariant violated: mod log versions not non-decreasing")
	ErrReturnPointerStale = errors.New("rbtree: R invariant violated: return pointer does not match current field")
)

// Validate walks root_at(v) and reports the first structural invariant
// violation found among RB-1, RB-2, RB-3, BST, L and V. It returns nil if
// the tree at v is well formed.
//
// Invariant R (return-pointer consistency) is checked in addition whenever
// v is the tree's current version: R describes only the current state, not
// historical ones, so it is meaningless to assert against an older v.
//
// Validate is a diagnostic used by tests and by callers auditing a batch
// of mutations; it is not on any hot path and allocates freely.
func (t *Tree) Validate(v int) error {
	root := t.reg.rootAt(v)
	if root == nil {
		return nil
	}

	if root.isRed(v) {
		return errors.Wrapf(ErrRootNotBlack, "key=%d", root.key)
	}

	checkR := v == t.reg.currentVersion()
	_, err := validateNode(root, v, nil, nil, checkR)
	return err
}

// validateNode recursively checks n against the lo/hi open-interval bound
// (BST), the Red-Red rule (RB-2), the mod-log bound (L), the mod-log
// version ordering (V), and, when checkR is set, the return-pointer
// invariant (R). It returns the Black-height of n's subtree so the caller
// can enforce RB-3.
func validateNode(n *Node, v int, lo, hi *Key, checkR bool) (int, error) {
	if n == nil {
		return 1, nil
	}

	if lo != nil && n.key <= *lo {
		return 0, errors.Wrapf(ErrBSTOrder, "key=%d not > lower bound %d", n.key, *lo)
	}
	if hi != nil && n.key >= *hi {
		return 0, errors.Wrapf(ErrBSTOrder, "key=%d not < upper bound %d", n.key, *hi)
	}

	if len(n.mods) > ModLimit {
		return 0, errors.Wrapf(ErrModLogOverflow, "key=%d mods=%d", n.key, len(n.mods))
	}
	if err := checkModLogVersions(n); err != nil {
		return 0, err
	}

	left, right := n.left(v), n.right(v)

	if n.isRed(v) {
		if isRedOf(left, v) || isRedOf(right, v) {
			return 0, errors.Wrapf(ErrRedRedViolation, "key=%d", n.key)
		}
	}

	if checkR {
		if err := checkReturnPointers(n, v); err != nil {
			return 0, err
		}
	}

	leftHeight, err := validateNode(left, v, lo, &n.key, checkR)
	if err != nil {
		return 0, err
	}
	rightHeight, err := validateNode(right, v, &n.key, hi, checkR)
	if err != nil {
		return 0, err
	}
	if leftHeight != rightHeight {
		return 0, errors.Wrapf(ErrBlackHeight, "key=%d left=%d right=%d", n.key, leftHeight, rightHeight)
	}

	height := leftHeight
	if n.isBlack(v) {
		height++
	}
	return height, nil
}

// checkModLogVersions asserts invariant V: within n's modification log,
// versions are non-decreasing from oldest to newest entry.
func checkModLogVersions(n *Node) error {
	for i := 1; i < len(n.mods); i++ {
		if n.mods[i].version < n.mods[i-1].version {
			return errors.Wrapf(ErrModLogVersionOrder, "key=%d mods[%d].version=%d < mods[%d].version=%d",
				n.key, i, n.mods[i].version, i-1, n.mods[i-1].version)
		}
	}
	return nil
}

// checkReturnPointers asserts invariant R at the current version: n's
// return pointers are direct caches of n's own current Left/Right/Parent
// field values (see fatnode.go's setField, which writes both the field's
// mod-log entry and its return-pointer cache together), so they must agree
// with what the versioned accessors report at v.
func checkReturnPointers(n *Node, v int) error {
	if l := n.left(v); n.returnLeft != l {
		return errors.Wrapf(ErrReturnPointerStale, "key=%d returnLeft stale", n.key)
	}
	if r := n.right(v); n.returnRight != r {
		return errors.Wrapf(ErrReturnPointerStale, "key=%d returnRight stale", n.key)
	}
	if p := n.parent(v); n.returnParent != p {
		return errors.Wrapf(ErrReturnPointerStale, "key=%d returnParent stale", n.key)
	}
	return nil
}
