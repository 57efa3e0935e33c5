// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sbinet/npyio"
)

// readVector loads a vector of float64s from path: a .npy array of
// any shape (flattened), or newline-separated numbers otherwise.
func readVector(path string) ([]float64, error) {
	if strings.HasSuffix(path, ".npy") {
		return readNpy(path)
	}
	return readText(path)
}

func readNpy(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	n := 1
	for _, d := range r.Header.Descr.Shape {
		n *= d
	}
	xs := make([]float64, n)
	if err := r.Read(&xs); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return xs, nil
}

func readText(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	var xs []float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		l := strings.TrimSpace(scanner.Text())
		if l == "" {
			continue
		}
		value, err := strconv.ParseFloat(l, 64)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		xs = append(xs, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return xs, nil
}

// writeNpy writes a vector of float64s to path as a 1-D .npy array.
func writeNpy(path string, xs []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := npyio.Write(f, xs); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
