package guide

import "github.com/abhisek/caseguide/internal/content"

// ReloadMsg carries a guide reloaded from disk, or the error that stopped
// the reload. The screen keeps its current content on error.
type ReloadMsg struct {
	Guide *content.Guide
	Err   error
}
