package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/oklog/ulid/v2"

	"github.com/umputun/curator/pkg/domain"
)

// ErrSummaryNotFound returned when a summary doesn't exist
var ErrSummaryNotFound = errors.New("summary not found")

// SummaryRepository handles generated digests
type SummaryRepository struct {
	db *sqlx.DB
}

// summarySQL represents a summary for SQL operations
type summarySQL struct {
	ID              string     `db:"id"`
	UserID          int64      `db:"user_id"`
	Title           string     `db:"title"`
	Text            string     `db:"summary_text"`
	Type            string     `db:"summary_type"`
	Prompt          string     `db:"generation_prompt"`
	Model           string     `db:"llm_model"`
	WordCount       int        `db:"word_count"`
	ReadTimeMinutes int        `db:"read_time_minutes"`
	IsRead          bool       `db:"is_read"`
	ReadAt          *time.Time `db:"read_at"`
	CreatedAt       time.Time  `db:"created_at"`
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *sqlx.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// SaveSummary stores the draft and its content item links in a single transaction.
// Nothing is stored if any part fails.
func (r *SummaryRepository) SaveSummary(ctx context.Context, draft *domain.SummaryDraft) (*domain.Summary, error) {
	rec := summarySQL{
		ID:              ulid.Make().String(),
		UserID:          draft.UserID,
		Title:           draft.Title,
		Text:            draft.Text,
		Type:            string(draft.Type),
		Prompt:          joinPrompt(draft.SystemPrompt, draft.UserPrompt),
		Model:           draft.Model,
		WordCount:       draft.WordCount,
		ReadTimeMinutes: draft.ReadTimeMinutes,
		CreatedAt:       time.Now().UTC(),
	}

	err := newRetrier().Do(ctx, func() error {
		return classify(r.insertSummary(ctx, &rec, draft.ContentItemIDs))
	}, errCritical)
	if err != nil {
		return nil, fmt.Errorf("save summary: %w", err)
	}

	res := r.toDomain(&rec)
	res.ContentItemIDs = append([]int64(nil), draft.ContentItemIDs...)
	return &res, nil
}

func (r *SummaryRepository) insertSummary(ctx context.Context, rec *summarySQL, itemIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `
		INSERT INTO summaries (id, user_id, title, summary_text, summary_type, generation_prompt,
			llm_model, word_count, read_time_minutes, is_read, created_at)
		VALUES (:id, :user_id, :title, :summary_text, :summary_type, :generation_prompt,
			:llm_model, :word_count, :read_time_minutes, 0, :created_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}

	for pos, itemID := range itemIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO summary_items (summary_id, content_item_id, position) VALUES (?, ?, ?)",
			rec.ID, itemID, pos); err != nil {
			return fmt.Errorf("link content item %d: %w", itemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetSummary retrieves a summary with its content item IDs, returns ErrSummaryNotFound if missing
func (r *SummaryRepository) GetSummary(ctx context.Context, id string) (*domain.Summary, error) {
	var rec summarySQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM summaries WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSummaryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}

	links, err := r.itemLinks(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	res := r.toDomain(&rec)
	res.ContentItemIDs = links[id]
	return &res, nil
}

// ListSummaries returns summaries of the user, newest first
func (r *SummaryRepository) ListSummaries(ctx context.Context, userID int64, limit int) ([]domain.Summary, error) {
	qb := sq.Select("*").From("summaries").Where(sq.Eq{"user_id": userID}).OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build summaries query: %w", err)
	}

	var recs []summarySQL
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}

	ids := make([]string, len(recs))
	for i, rec := range recs {
		ids[i] = rec.ID
	}
	links, err := r.itemLinks(ctx, ids)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Summary, len(recs))
	for i := range recs {
		res[i] = r.toDomain(&recs[i])
		res[i].ContentItemIDs = links[recs[i].ID]
	}
	return res, nil
}

// LatestSummaryTime returns creation time of the newest summary of the user, zero time if there is none
func (r *SummaryRepository) LatestSummaryTime(ctx context.Context, userID int64) (time.Time, error) {
	var ts time.Time
	err := r.db.GetContext(ctx, &ts,
		"SELECT created_at FROM summaries WHERE user_id = ? ORDER BY created_at DESC LIMIT 1", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get latest summary time: %w", err)
	}
	return ts, nil
}

// MarkRead flags the summary as read
func (r *SummaryRepository) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE summaries SET is_read = 1, read_at = ? WHERE id = ?", time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("mark summary read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get affected rows: %w", err)
	}
	if n == 0 {
		return ErrSummaryNotFound
	}
	return nil
}

// DeleteOlderThan removes summaries created before the cutoff and returns how many were deleted
func (r *SummaryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := newRetrier().Do(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return classify(fmt.Errorf("begin transaction: %w", err))
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		if _, err = tx.ExecContext(ctx,
			"DELETE FROM summary_items WHERE summary_id IN (SELECT id FROM summaries WHERE created_at < ?)",
			cutoff.UTC()); err != nil {
			return classify(fmt.Errorf("delete summary items: %w", err))
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM summaries WHERE created_at < ?", cutoff.UTC())
		if err != nil {
			return classify(fmt.Errorf("delete summaries: %w", err))
		}
		if deleted, err = res.RowsAffected(); err != nil {
			return classify(fmt.Errorf("get affected rows: %w", err))
		}
		return classify(tx.Commit())
	}, errCritical)
	if err != nil {
		return 0, fmt.Errorf("delete old summaries: %w", err)
	}
	return deleted, nil
}

// Stats aggregates summary activity for the last days before now
func (r *SummaryRepository) Stats(ctx context.Context, now time.Time, days int) (*domain.SummaryStats, error) {
	since := now.AddDate(0, 0, -days).UTC()

	var totals struct {
		Total    int     `db:"total"`
		Users    int     `db:"users"`
		AvgWords float64 `db:"avg_words"`
		Read     int     `db:"read_count"`
	}
	query := `
		SELECT COUNT(*) AS total,
			COUNT(DISTINCT user_id) AS users,
			COALESCE(AVG(word_count), 0.0) AS avg_words,
			COALESCE(SUM(is_read), 0) AS read_count
		FROM summaries WHERE created_at >= ?
	`
	if err := r.db.GetContext(ctx, &totals, query, since); err != nil {
		return nil, fmt.Errorf("get summary totals: %w", err)
	}

	var avgItems float64
	query = `
		SELECT COALESCE(AVG(cnt), 0.0) FROM (
			SELECT COUNT(si.content_item_id) AS cnt FROM summaries s
			LEFT JOIN summary_items si ON si.summary_id = s.id
			WHERE s.created_at >= ?
			GROUP BY s.id
		)
	`
	if err := r.db.GetContext(ctx, &avgItems, query, since); err != nil {
		return nil, fmt.Errorf("get average items: %w", err)
	}

	return &domain.SummaryStats{
		PeriodDays:      days,
		TotalSummaries:  totals.Total,
		AvgContentItems: avgItems,
		AvgWordCount:    totals.AvgWords,
		UniqueUsers:     totals.Users,
		ReadSummaries:   totals.Read,
	}, nil
}

// itemLinks loads content item IDs of the summaries, ordered by position
func (r *SummaryRepository) itemLinks(ctx context.Context, summaryIDs []string) (map[string][]int64, error) {
	res := make(map[string][]int64, len(summaryIDs))
	if len(summaryIDs) == 0 {
		return res, nil
	}
	query, args, err := sq.Select("summary_id", "content_item_id").
		From("summary_items").
		Where(sq.Eq{"summary_id": summaryIDs}).
		OrderBy("summary_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build summary items query: %w", err)
	}

	var recs []struct {
		SummaryID string `db:"summary_id"`
		ItemID    int64  `db:"content_item_id"`
	}
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("get summary items: %w", err)
	}
	for _, rec := range recs {
		res[rec.SummaryID] = append(res[rec.SummaryID], rec.ItemID)
	}
	return res, nil
}

// toDomain converts the SQL record to a domain summary
func (r *SummaryRepository) toDomain(rec *summarySQL) domain.Summary {
	return domain.Summary{
		ID:              rec.ID,
		UserID:          rec.UserID,
		Title:           rec.Title,
		Text:            rec.Text,
		Type:            domain.SummaryType(rec.Type),
		Prompt:          rec.Prompt,
		Model:           rec.Model,
		WordCount:       rec.WordCount,
		ReadTimeMinutes: rec.ReadTimeMinutes,
		IsRead:          rec.IsRead,
		ReadAt:          rec.ReadAt,
		CreatedAt:       rec.CreatedAt,
	}
}

// joinPrompt keeps both prompts in the stored generation prompt
func joinPrompt(system, user string) string {
	return strings.TrimSpace(system + "\n\n" + user)
}
