package match

import (
	"context"
	"errors"
	"testing"

	"github.com/linka-app/linka/internal/api"
)

type fakeSimilar struct {
	calls     int
	lastCase  int
	lastLimit int
	result    []api.SimilarCase
	err       error
}

func (f *fakeSimilar) SimilarCases(ctx context.Context, caseID, limit int) ([]api.SimilarCase, error) {
	f.calls++
	f.lastCase = caseID
	f.lastLimit = limit
	return f.result, f.err
}

func TestFetchPassesThroughResults(t *testing.T) {
	for _, count := range []int{0, 1, 3} {
		fake := &fakeSimilar{result: make([]api.SimilarCase, count)}
		resolver := NewResolver(fake)

		matches, err := resolver.Fetch(context.Background(), 12, 3)
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if len(matches) != count {
			t.Errorf("len(matches) = %d, want %d", len(matches), count)
		}
		if fake.calls != 1 {
			t.Errorf("calls = %d, want 1", fake.calls)
		}
		if fake.lastCase != 12 || fake.lastLimit != 3 {
			t.Errorf("forwarded (%d, %d), want (12, 3)", fake.lastCase, fake.lastLimit)
		}
	}
}

func TestFetchDefaultsLimit(t *testing.T) {
	fake := &fakeSimilar{}
	resolver := NewResolver(fake)
	if _, err := resolver.Fetch(context.Background(), 5, 0); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if fake.lastLimit != DefaultLimit {
		t.Errorf("limit = %d, want %d", fake.lastLimit, DefaultLimit)
	}
}

func TestFetchWrapsError(t *testing.T) {
	fake := &fakeSimilar{err: api.ErrUnauthenticated}
	resolver := NewResolver(fake)
	_, err := resolver.Fetch(context.Background(), 5, 3)
	if !errors.Is(err, api.ErrUnauthenticated) {
		t.Fatalf("expected wrapped ErrUnauthenticated, got %v", err)
	}
}

func TestJoinTarget(t *testing.T) {
	if got := JoinTarget(api.SimilarCase{CaseID: 99}); got != 99 {
		t.Errorf("JoinTarget = %d", got)
	}
}
