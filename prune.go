// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package rbtree

import "github.com/bits-and-blooms/bitset"

// PruneBefore computes which arena slots are unreachable from every
// version in [cutoff, CurrentVersion()] and therefore safe to discard if
// the caller never intends to query versions older than cutoff again.
// This library does not itself reclaim memory; it only identifies what
// could be.
//
// The returned BitSet has one bit per arena index, set for every node
// that is NOT reachable from any retained version. Reachability is
// computed by walking root_at(v) for every v in the retained range and
// unioning the visited arena indices; a node still referenced only by a
// successor chain or mod-log entry from a retained version counts as
// reachable because resolveForRead/readField may still need to visit it.
//
// PruneBefore does no mutation; it is safe to call at any time and does
// not advance the version counter.
func (t *Tree) PruneBefore(cutoff int) *bitset.BitSet {
	n := uint(len(t.arena.nodes))
	reachable := bitset.New(n)

	cur := t.reg.currentVersion()
	if cutoff < 0 {
		cutoff = 0
	}

	for v := cutoff; v <= cur; v++ {
		t.inOrder(v, func(node *Node, _ int) {
			markReachable(reachable, node)
		})
	}

	prunable := bitset.New(n)
	for i := uint(0); i < n; i++ {
		if !reachable.Test(i) {
			prunable.Set(i)
		}
	}
	return prunable
}

// markReachable marks node and every node on its successor chain:
// overflow can leave a newer node reachable only via an older node's
// successor pointer, and fatnode.go's resolveForRead dereferences it for a
// query at or after the older node's last modification version.
func markReachable(b *bitset.BitSet, node *Node) {
	for node != nil {
		idx := uint(node.idx)
		if b.Test(idx) {
			return
		}
		b.Set(idx)
		node = node.successor
	}
}
