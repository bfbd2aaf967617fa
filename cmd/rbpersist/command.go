// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arborist/rbtree"
)

// infinito is the file-mode sentinel for rbtree.MaxKey.
const infinito = "Infinito"

// runFile reads whitespace-tokenised commands from in, one per line, and
// writes query results to out. It stops at the first empty line and
// returns nil, or stops at the first wrong-arity, unparseable or unknown
// command and returns an error describing it; these input errors never
// reach the underlying tree.
func runFile(in io.Reader, out io.Writer) error {
	tree := rbtree.New()

	scanner := bufio.NewScanner(in)
	w := bufio.NewWriter(out)
	defer w.Flush()

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			return scanner.Err()
		}

		fields := strings.Fields(line)
		cmd := fields[0]

		switch cmd {
		case "INC":
			if len(fields) != 2 {
				return reportArity(cmd, 2, len(fields))
			}
			key, err := parseKey(fields[1])
			if err != nil {
				return reportParse(fields[1], err)
			}
			tree.Insert(key)

		case "REM":
			if len(fields) != 2 {
				return reportArity(cmd, 2, len(fields))
			}
			key, err := parseKey(fields[1])
			if err != nil {
				return reportParse(fields[1], err)
			}
			tree.Remove(key)

		case "SUC":
			if len(fields) != 3 {
				return reportArity(cmd, 3, len(fields))
			}
			key, err := parseKey(fields[1])
			if err != nil {
				return reportParse(fields[1], err)
			}
			version, err := strconv.Atoi(fields[2])
			if err != nil {
				return reportParse(fields[2], err)
			}
			result := tree.Successor(key, version)
			if result == rbtree.MaxKey {
				fmt.Fprintln(w, infinito)
			} else {
				fmt.Fprintln(w, result)
			}

		case "IMP":
			if len(fields) != 2 {
				return reportArity(cmd, 2, len(fields))
			}
			version, err := strconv.Atoi(fields[1])
			if err != nil {
				return reportParse(fields[1], err)
			}
			if err := tree.Dump(version, w); err != nil {
				return err
			}

		default:
			return fmt.Errorf("rbpersist: unknown command %q, aborting", cmd)
		}
	}

	return scanner.Err()
}

func parseKey(s string) (rbtree.Key, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return rbtree.Key(n), nil
}

func reportArity(cmd string, want, got int) error {
	return fmt.Errorf("rbpersist: %s expects %d tokens, got %d, aborting", cmd, want, got)
}

func reportParse(tok string, err error) error {
	return fmt.Errorf("rbpersist: cannot parse %q: %w, aborting", tok, err)
}
