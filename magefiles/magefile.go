// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

// Package main provides build targets for the garage project using Mage.
//
// Usage:
//
//	mage build          Compile garage binary to bin/, stamped with the git version
//	mage test:all       Run all tests
//	mage test:unit      Run tests without the race detector or cache bypass
//	mage test:cover     Run all tests and write coverage.out
//	mage test:magefiles Run the tests of these build targets
//	mage lint           Run golangci-lint, build targets included
//	mage clean          Remove build artifacts, .garage, and *.db leftovers
//	mage install        Install garage to GOPATH/bin
//	mage stats          Print Go LOC and documentation word counts
package main
