//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/sh"
)

// Stats prints a JSON line with source, test, package, and doc counts.
func Stats() error {
	counts := map[string]int{}
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != "." && (strings.HasPrefix(d.Name(), ".") || strings.HasPrefix(d.Name(), "_") || path == binaryDir || path == "magefiles") {
				return filepath.SkipDir
			}
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		switch {
		case strings.HasSuffix(path, "_test.go"):
			counts["go_loc_test"] += bytes.Count(data, []byte("\n"))
		case strings.HasSuffix(path, ".go"):
			counts["go_loc_prod"] += bytes.Count(data, []byte("\n"))
		case filepath.Dir(path) == "." && strings.HasSuffix(path, ".md"):
			counts["doc_wc"] += words(data)
		}
		return nil
	})
	if err != nil {
		return err
	}
	counts["go_loc"] = counts["go_loc_prod"] + counts["go_loc_test"]

	out, err := sh.Output(binGo, "list", "./...")
	if err != nil {
		return err
	}
	counts["go_packages"] = len(strings.Fields(out))

	line, err := json.Marshal(counts)
	if err != nil {
		return err
	}
	fmt.Println(string(line))
	return nil
}

func words(data []byte) int {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Split(bufio.ScanWords)
	n := 0
	for sc.Scan() {
		n++
	}
	return n
}
