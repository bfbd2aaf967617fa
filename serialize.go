// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package rbtree

import (
	"bufio"
	"fmt"
	"io"
)

// Dump writes the tree as it stood at version v to w as a single line: an
// in-order sequence of "key,depth,colour" triples separated by single
// spaces and terminated by a newline (colour is "N" for Black, "R" for
// Red; the root is at depth 0).
//
// Dump uses a buffered writer fed by a recursive in-order walk, with the
// formatting pulled out of the traversal so the two concerns stay
// independent.
func (t *Tree) Dump(v int, w io.Writer) error {
	bw := bufio.NewWriter(w)

	first := true
	var walkErr error
	t.inOrder(v, func(n *Node, depth int) {
		if walkErr != nil {
			return
		}
		if !first {
			if walkErr = bw.WriteByte(' '); walkErr != nil {
				return
			}
		}
		first = false
		_, walkErr = fmt.Fprintf(bw, "%d,%d,%s", n.key, depth, n.color(v))
	})
	if walkErr != nil {
		return walkErr
	}

	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	return bw.Flush()
}
