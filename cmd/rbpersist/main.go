// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command rbpersist drives a partially persistent rbtree.Tree from a file
// of INC/REM/SUC/IMP commands, writing the resulting query output to a
// second file.
package main

import (
	"log"
	"os"
	"time"
)

func main() {
	log.SetFlags(log.Lmicroseconds)

	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <input_path> <output_path>", os.Args[0])
	}

	in, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("open input: %v", err)
	}
	defer in.Close()

	out, err := os.Create(os.Args[2])
	if err != nil {
		log.Fatalf("open output: %v", err)
	}
	defer out.Close()

	log.Printf("processing %s -> %s", os.Args[1], os.Args[2])
	ts := time.Now()

	if err := runFile(in, out); err != nil {
		log.Fatal(err)
	}

	log.Printf("done in %v", time.Since(ts))
}
