// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package rbtree provides a partially persistent ordered set of int32 keys,
// backed by a red-black tree whose every pointer and color mutation is
// tagged with a version instead of being overwritten in place.
//
// Persistence is implemented with the node-copying / fat-node technique of
// Driscoll, Sarnak, Sleator and Tarjan: each node carries a small bounded
// log of (field, value, version) modifications plus return pointers back to
// its current neighbours. A mutation never rewrites a field; it appends to
// the log. Reads at an older version scan the log for the newest entry at
// or before that version, falling back to the node's original snapshot.
// When a node's log saturates, a successor node is materialised and the
// neighbours' return pointers are redirected to it.
//
// Every insert, and every remove of a present key, advances a single global
// version counter; removing an absent key leaves it unchanged.
// Queries accept a version argument and see the tree exactly as it stood
// immediately after that version's mutation completed; version 0 is always
// the empty tree, and a version newer than the latest mutation clamps to
// the latest state.
//
// The tree does not support duplicate keys, non-integer keys, range
// queries, concurrent writers, or durability to stable storage.
package rbtree
