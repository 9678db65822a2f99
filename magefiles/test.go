// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const coverProfile = "coverage.out"

// Test groups test targets (all, unit, cover).
type Test mg.Namespace

// All runs every test with the race detector, bypassing the test cache.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-v", "-race", "-count=1", "./...")
}

// Unit runs every test once, using the test cache.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "./...")
}

// Cover runs all tests and writes a coverage profile, then prints the
// per-function summary.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverProfile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverProfile)
}

// Magefiles runs the tests of the build targets themselves, which need the
// mage build tag.
func (Test) Magefiles() error {
	return sh.RunV(binGo, "test", "-tags", "mage", "./magefiles")
}
