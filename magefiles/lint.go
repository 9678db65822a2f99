// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import "github.com/magefile/mage/sh"

const binLint = "golangci-lint"

// Lint runs golangci-lint over the module and, with the mage tag, over
// these build targets.
func Lint() error {
	if err := sh.RunV(binLint, "run", "./..."); err != nil {
		return err
	}
	return sh.RunV(binLint, "run", "--build-tags", "mage", "./magefiles")
}
