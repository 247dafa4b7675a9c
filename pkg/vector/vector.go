// Package vector ranks content items by semantic similarity to a text query.
// Article vectors are produced ahead of time by Index and kept in the store,
// query vectors are computed on demand and cached.
package vector

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-pkgz/lgr"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/umputun/curator/pkg/domain"
	"github.com/umputun/curator/pkg/textproc"
)

//go:generate moq -out mocks/embedder.go -pkg mocks -skip-ensure -fmt goimports . Embedder
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Embedder turns texts into embedding vectors
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Store keeps article vectors per embedding model
type Store interface {
	GetEmbeddings(ctx context.Context, model string, ids []int64) (map[int64][]float32, error)
	SaveEmbedding(ctx context.Context, itemID int64, model string, vector []float32) error
}

// Query is a similarity search request. Only items listed in RestrictTo are considered.
type Query struct {
	Text       string
	Limit      int
	RestrictTo []int64
}

// Match is a search result, higher Score is more similar
type Match struct {
	ItemID int64
	Score  float64
}

// Params for NewSearcher
type Params struct {
	Embedder  Embedder
	Store     Store
	Model     string
	CacheSize int
	MaxChars  int
}

// Searcher embeds queries and ranks stored article vectors by cosine similarity
type Searcher struct {
	embedder Embedder
	store    Store
	model    string
	maxChars int
	cache    *lru.Cache[string, []float32]
}

// NewSearcher makes a searcher with a query embedding cache
func NewSearcher(p Params) (*Searcher, error) {
	if p.Embedder == nil || p.Store == nil {
		return nil, errors.New("embedder and store are required")
	}
	if p.CacheSize <= 0 {
		p.CacheSize = 1000
	}
	if p.MaxChars <= 0 {
		p.MaxChars = 4000
	}
	cache, err := lru.New[string, []float32](p.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("make query cache: %w", err)
	}
	return &Searcher{embedder: p.Embedder, store: p.Store, model: p.Model, maxChars: p.MaxChars, cache: cache}, nil
}

// Search returns up to q.Limit items from q.RestrictTo ordered by similarity to q.Text.
// Items without a stored vector are skipped. Equal scores keep RestrictTo order.
func (s *Searcher) Search(ctx context.Context, q Query) ([]Match, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" || len(q.RestrictTo) == 0 || q.Limit <= 0 {
		return []Match{}, nil
	}

	queryVec, err := s.queryVector(ctx, text)
	if err != nil {
		return nil, err
	}

	vectors, err := s.store.GetEmbeddings(ctx, s.model, q.RestrictTo)
	if err != nil {
		return nil, fmt.Errorf("load item vectors: %w", err)
	}

	matches := make([]Match, 0, len(vectors))
	seen := make(map[int64]bool, len(q.RestrictTo))
	for _, id := range q.RestrictTo {
		vec, ok := vectors[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		matches = append(matches, Match{ItemID: id, Score: cosine(queryVec, vec)})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > q.Limit {
		matches = matches[:q.Limit]
	}
	return matches, nil
}

// Index embeds the items and stores their vectors, returns number of indexed items
func (s *Searcher) Index(ctx context.Context, items []domain.ContentItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = s.itemText(item)
	}

	vecs, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed %d items: %w", len(items), err)
	}
	if len(vecs) != len(items) {
		return 0, fmt.Errorf("embedder returned %d vectors for %d items", len(vecs), len(items))
	}

	indexed := 0
	for i, item := range items {
		if err := s.store.SaveEmbedding(ctx, item.ID, s.model, vecs[i]); err != nil {
			return indexed, fmt.Errorf("save vector of item %d: %w", item.ID, err)
		}
		indexed++
	}
	lgr.Printf("[DEBUG] indexed %d items with model %s", indexed, s.model)
	return indexed, nil
}

func (s *Searcher) queryVector(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := s.cache.Get(text); ok {
		return vec, nil
	}
	vecs, err := s.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vecs) != 1 || len(vecs[0]) == 0 {
		return nil, errors.New("embedder returned no query vector")
	}
	s.cache.Add(text, vecs[0])
	return vecs[0], nil
}

// itemText is what gets embedded for an article, title first
func (s *Searcher) itemText(item domain.ContentItem) string {
	text := strings.TrimSpace(item.Title + "\n\n" + item.Text())
	return textproc.Truncate(text, s.maxChars)
}

// cosine returns cosine similarity of two vectors, 0 for mismatched or zero vectors
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
