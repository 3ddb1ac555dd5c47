// Package source provides member-fetch adapters for the layout pipeline.
//
// The layout engine performs no I/O; it is handed a member list that some
// external, independently-retryable step fetched. This package is that
// step made concrete: one read call against the site's store (a JSON file
// export, the site's REST endpoint, or the MongoDB collection behind it),
// returning the flat member array. A late-arriving empty array is a valid
// result ("nothing to lay out"), never an error.
package source

import (
	"context"

	"github.com/arborgraph/arbor/pkg/family"
)

// Source fetches the full member list in one read call.
type Source interface {
	// Fetch returns every member record. An empty (or nil) slice with a
	// nil error means there is nothing to lay out.
	Fetch(ctx context.Context) ([]family.Member, error)

	// Description identifies the source for logging and cache keys,
	// e.g. "file:members.json" or "mongo:family/members".
	Description() string
}
