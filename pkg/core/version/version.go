// ============================================================================
// logchain - Severity Dispatch Chain
// ============================================================================
//
// Package:     version
// Description: Build version information
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package version

import "fmt"

// Set via -ldflags "-X github.com/msto63/logchain/pkg/core/version.Version=..."
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String returns the full version line printed by "logchain version"
func String() string {
	return fmt.Sprintf("logchain %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
