// Package match retrieves the ranked list of cases similar to a submitted
// case. Results are read-only projections, refetched per view and never
// cached across calls.
package match

import (
	"context"
	"fmt"

	"github.com/linka-app/linka/internal/api"
)

// DefaultLimit is the API-side default result bound. CLI callers typically
// pass a smaller limit of 3.
const DefaultLimit = api.DefaultMatchLimit

// SimilarFetcher is the slice of the gateway the resolver needs.
type SimilarFetcher interface {
	SimilarCases(ctx context.Context, caseID, limit int) ([]api.SimilarCase, error)
}

// Resolver fetches similar-case matches for a case.
type Resolver struct {
	client SimilarFetcher
}

// NewResolver creates a resolver over the given gateway.
func NewResolver(client SimilarFetcher) *Resolver {
	return &Resolver{client: client}
}

// Fetch returns the ranked similar cases for caseID, bounded by limit.
// A non-positive limit falls back to DefaultLimit. The error is one of the
// gateway taxonomy: api.ErrNoBackend, api.ErrUnauthenticated, or an upstream
// failure carrying the backend status.
func (r *Resolver) Fetch(ctx context.Context, caseID, limit int) ([]api.SimilarCase, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	matches, err := r.client.SimilarCases(ctx, caseID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch matches for case %d: %w", caseID, err)
	}
	return matches, nil
}

// JoinTarget returns the case id whose group session a "join" on the given
// match leads to. Joining is purely a navigation concern: the group itself is
// resolved or created only when the chat session starts.
func JoinTarget(m api.SimilarCase) int {
	return m.CaseID
}
