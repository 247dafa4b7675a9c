package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/curator/pkg/domain"
	"github.com/umputun/curator/pkg/vector"
)

//go:generate moq -out mocks/content_store.go -pkg mocks -skip-ensure -fmt goimports . ContentStore
//go:generate moq -out mocks/vector_searcher.go -pkg mocks -skip-ensure -fmt goimports . VectorSearcher

// ContentStore selects processed content items
type ContentStore interface {
	QueryProcessed(ctx context.Context, f domain.FilterCriteria) ([]domain.ContentItem, error)
}

// VectorSearcher ranks content items by similarity to a text
type VectorSearcher interface {
	Search(ctx context.Context, q vector.Query) ([]vector.Match, error)
}

// Retriever picks candidate articles for a user
type Retriever struct {
	content         ContentStore
	searcher        VectorSearcher // optional, no topic narrowing if nil
	poolSize        int
	defaultMaxItems int
	now             func() time.Time
}

// NewRetriever makes a retriever. searcher may be nil.
func NewRetriever(content ContentStore, searcher VectorSearcher, poolSize, defaultMaxItems int) *Retriever {
	if poolSize <= 0 {
		poolSize = 50
	}
	if defaultMaxItems <= 0 {
		defaultMaxItems = 10
	}
	return &Retriever{content: content, searcher: searcher, poolSize: poolSize, defaultMaxItems: defaultMaxItems, now: time.Now}
}

// Candidates returns at most maxItems processed articles matching the preferences.
// The pool is the most recent matching articles within the delivery window; with topics
// it's narrowed by similarity and padded with the most recent leftovers.
func (r *Retriever) Candidates(ctx context.Context, prefs domain.Preferences) ([]domain.ContentItem, error) {
	criteria := domain.ToFilterCriteria(prefs, r.now().UTC())
	criteria.Limit = r.poolSize
	maxItems := criteria.MaxItems
	if maxItems <= 0 {
		maxItems = r.defaultMaxItems
	}

	pool, err := r.content.QueryProcessed(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("query content for user %d: %w", prefs.UserID, err)
	}
	if len(pool) == 0 {
		return nil, ErrNoCandidates
	}

	if len(criteria.Topics) == 0 || r.searcher == nil {
		return head(pool, maxItems), nil
	}

	narrowed, err := r.narrow(ctx, pool, criteria.Topics, maxItems)
	if err != nil {
		lgr.Printf("[WARN] %v for user %d, using most recent items", err, prefs.UserID)
		return head(pool, maxItems), nil
	}
	return narrowed, nil
}

// narrow keeps pool items found by similarity search, in pool order, then pads with the rest of the pool
func (r *Retriever) narrow(ctx context.Context, pool []domain.ContentItem, topics []string, maxItems int) ([]domain.ContentItem, error) {
	ids := make([]int64, len(pool))
	for i, item := range pool {
		ids[i] = item.ID
	}

	matches, err := r.searcher.Search(ctx, vector.Query{Text: strings.Join(topics, " "), Limit: 2 * maxItems, RestrictTo: ids})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVectorSearch, err)
	}

	relevant := make(map[int64]bool, maxItems)
	for _, m := range head(matches, maxItems) {
		relevant[m.ItemID] = true
	}

	res := make([]domain.ContentItem, 0, maxItems)
	for _, item := range pool {
		if relevant[item.ID] {
			res = append(res, item)
		}
	}
	for _, item := range pool {
		if len(res) >= maxItems {
			break
		}
		if !relevant[item.ID] {
			res = append(res, item)
		}
	}
	return head(res, maxItems), nil
}

func head[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
