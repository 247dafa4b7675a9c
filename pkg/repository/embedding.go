package repository

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// EmbeddingRepository stores article embedding vectors per embedding model
type EmbeddingRepository struct {
	db *sqlx.DB
}

// NewEmbeddingRepository creates a new embedding repository
func NewEmbeddingRepository(db *sqlx.DB) *EmbeddingRepository {
	return &EmbeddingRepository{db: db}
}

// SaveEmbedding stores the vector of a content item, replacing an existing one for the same model
func (r *EmbeddingRepository) SaveEmbedding(ctx context.Context, itemID int64, model string, vector []float32) error {
	query := `
		INSERT INTO content_embeddings (content_item_id, model, vector, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(content_item_id, model) DO UPDATE SET vector = excluded.vector, created_at = excluded.created_at
	`
	blob := encodeVector(vector)
	return newRetrier().Do(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, query, itemID, model, blob, time.Now().UTC()); err != nil {
			return classify(fmt.Errorf("save embedding for %d: %w", itemID, err))
		}
		return nil
	}, errCritical)
}

// GetEmbeddings returns vectors of the given items for the model. Items without a vector are absent from the map.
func (r *EmbeddingRepository) GetEmbeddings(ctx context.Context, model string, ids []int64) (map[int64][]float32, error) {
	res := make(map[int64][]float32, len(ids))
	if len(ids) == 0 {
		return res, nil
	}

	query, args, err := sq.Select("content_item_id", "vector").
		From("content_embeddings").
		Where(sq.Eq{"model": model, "content_item_id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build embeddings query: %w", err)
	}

	var recs []struct {
		ID     int64  `db:"content_item_id"`
		Vector []byte `db:"vector"`
	}
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("get embeddings: %w", err)
	}
	for _, rec := range recs {
		vec, err := decodeVector(rec.Vector)
		if err != nil {
			return nil, fmt.Errorf("decode embedding of %d: %w", rec.ID, err)
		}
		res[rec.ID] = vec
	}
	return res, nil
}

// encodeVector packs float32 values as little-endian bytes
func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("invalid vector size %d", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}
