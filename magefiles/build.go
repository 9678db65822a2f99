// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binGit     = "git"
	binaryName = "garage"
	binaryDir  = "bin"
	cmdDir     = "./cmd/garage"
	versionVar = "github.com/mesh-intelligence/garage/internal/cli.Version"

	// configDir is what garage creates in the working directory when run
	// from the repository without --config-dir.
	configDir = ".garage"
)

// leftoverPatterns match collection files and temp files left at the
// repository root by manual runs.
var leftoverPatterns = []string{"*.db", "*.db-journal", ".vehicles-*.tmp"}

// Build compiles the garage binary to bin/, stamping the version from the
// nearest git tag when there is one.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if v := gitVersion(); v != "" {
		args = append(args, "-ldflags", fmt.Sprintf("-X %s=%s", versionVar, v))
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// gitVersion returns the tag-based version without its leading "v", or ""
// outside a git checkout.
func gitVersion() string {
	out, err := sh.Output(binGit, "describe", "--tags", "--always", "--dirty")
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.TrimSpace(out), "v")
}

// Clean removes build artifacts, the coverage profile, and the config
// directory and collection files left behind by local runs.
func Clean() error {
	targets, err := cleanTargets(".")
	if err != nil {
		return err
	}
	for _, target := range targets {
		if err := os.RemoveAll(target); err != nil {
			return err
		}
	}
	return sh.RunV(binGo, "clean")
}

// cleanTargets lists the paths under root that Clean removes. Only paths
// that exist are returned.
func cleanTargets(root string) ([]string, error) {
	var targets []string
	for _, name := range []string{binaryDir, coverProfile, configDir} {
		path := filepath.Join(root, name)
		if _, err := os.Lstat(path); err == nil {
			targets = append(targets, path)
		}
	}
	for _, pattern := range leftoverPatterns {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, err
		}
		targets = append(targets, matches...)
	}
	return targets, nil
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
