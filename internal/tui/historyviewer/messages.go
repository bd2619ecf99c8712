// ============================================================================
// logchain - Severity Dispatch Chain
// ============================================================================
//
// Package:     historyviewer
// Description: Message types for async operations in the history viewer
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package historyviewer

import (
	"time"

	"github.com/msto63/logchain/internal/store"
)

// entriesLoadedMsg is sent when history entries are loaded from the store
type entriesLoadedMsg struct {
	entries []*store.Entry
	err     error
}

// statsLoadedMsg is sent when per-severity counts are loaded
type statsLoadedMsg struct {
	bySeverity map[string]int64
	err        error
}

// tickMsg is used for periodic reloads
type tickMsg time.Time
