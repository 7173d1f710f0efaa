package ui

import "ramos/internal/services"

// branchesLoadedMsg carries the result of a completed load cycle
type branchesLoadedMsg struct {
	result services.LoadResult
}

// loadFailedMsg carries a load error for display
type loadFailedMsg struct {
	err error
}

// cacheCleanedMsg reports a manual cache sweep
type cacheCleanedMsg struct {
	removed int
	err     error
}

// statusClearedMsg clears the transient status line
type statusClearedMsg struct{}
