package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/curator/pkg/domain"
)

// ContentRepository handles websites and scraped content items
type ContentRepository struct {
	db *sqlx.DB
}

// contentItemSQL represents a content item for SQL operations
type contentItemSQL struct {
	ID             int64      `db:"id"`
	WebsiteID      int64      `db:"website_id"`
	SourceName     string     `db:"source_name"`
	Title          string     `db:"title"`
	Content        string     `db:"content"`
	CleanedContent string     `db:"cleaned_content"`
	URL            string     `db:"url"`
	Author         string     `db:"author"`
	Category       string     `db:"category"`
	Language       string     `db:"language"`
	PublishedAt    *time.Time `db:"published_at"`
	ScrapedAt      time.Time  `db:"scraped_at"`
	WordCount      int        `db:"word_count"`
	Processed      bool       `db:"processed"`
}

// itemColumns are selected for every content item query. Category falls back to the website category.
var itemColumns = []string{
	"c.id", "c.website_id", "COALESCE(w.name, '') AS source_name", "c.title", "c.content",
	"c.cleaned_content", "c.url", "c.author", "COALESCE(NULLIF(c.category, ''), w.category, '') AS category",
	"c.language", "c.published_at", "c.scraped_at", "c.word_count", "c.processed",
}

// NewContentRepository creates a new content repository
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// UpsertWebsite creates the website or updates name and category of an existing one, sets its ID
func (r *ContentRepository) UpsertWebsite(ctx context.Context, site *domain.Website) error {
	if site.CreatedAt.IsZero() {
		site.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO websites (url, name, category, active, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET name = excluded.name, category = excluded.category, active = excluded.active
		RETURNING id
	`
	var id int64
	if err := r.db.GetContext(ctx, &id, query, site.URL, site.Name, site.Category, site.Active, site.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("upsert website %s: %w", site.URL, err)
	}
	site.ID = id
	return nil
}

// CreateContentItem inserts a content item and sets its ID
func (r *ContentRepository) CreateContentItem(ctx context.Context, item *domain.ContentItem) error {
	if item.ScrapedAt.IsZero() {
		item.ScrapedAt = time.Now()
	}
	rec := contentItemSQL{
		WebsiteID:      item.WebsiteID,
		Title:          item.Title,
		Content:        item.Content,
		CleanedContent: item.CleanedContent,
		URL:            item.URL,
		Author:         item.Author,
		Category:       item.Category,
		Language:       item.Language,
		ScrapedAt:      item.ScrapedAt.UTC(),
		WordCount:      item.WordCount,
		Processed:      item.Processed,
	}
	if !item.PublishedAt.IsZero() {
		published := item.PublishedAt.UTC()
		rec.PublishedAt = &published
	}

	query := `
		INSERT INTO content_items (website_id, url, title, content, cleaned_content, author, category,
			language, published_at, scraped_at, word_count, processed)
		VALUES (:website_id, :url, :title, :content, :cleaned_content, :author, :category,
			:language, :published_at, :scraped_at, :word_count, :processed)
	`
	result, err := r.db.NamedExecContext(ctx, query, rec)
	if err != nil {
		return fmt.Errorf("create content item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	item.ID = id
	return nil
}

// MarkProcessed flags the item as processed, after that the item can't be changed
func (r *ContentRepository) MarkProcessed(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE content_items SET processed = 1 WHERE id = ? AND processed = 0", id)
	if err != nil {
		return fmt.Errorf("mark item %d processed: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("mark item %d processed: not found or already processed", id)
	}
	return nil
}

// GetContentItem retrieves a content item by ID, returns nil if not found
func (r *ContentRepository) GetContentItem(ctx context.Context, id int64) (*domain.ContentItem, error) {
	query, args, err := r.selectItems().Where(sq.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item query: %w", err)
	}
	var rec contentItemSQL
	err = r.db.GetContext(ctx, &rec, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get content item: %w", err)
	}
	item := r.toDomain(&rec)
	return &item, nil
}

// QueryProcessed returns processed items matching the criteria, most recently scraped first.
// Category, language and word count filters apply only when set; Limit caps the result if positive.
func (r *ContentRepository) QueryProcessed(ctx context.Context, f domain.FilterCriteria) ([]domain.ContentItem, error) {
	qb := r.selectItems().
		Where(sq.Eq{"c.processed": true}).
		Where(sq.GtOrEq{"c.scraped_at": f.Since.UTC()}).
		OrderBy("c.scraped_at DESC", "c.id DESC")

	if len(f.Categories) > 0 {
		qb = qb.Where(sq.Eq{"COALESCE(NULLIF(c.category, ''), w.category)": f.Categories})
	}
	if f.Language != "" {
		qb = qb.Where(sq.Eq{"c.language": f.Language})
	}
	if f.MaxWordCount > 0 {
		qb = qb.Where(sq.LtOrEq{"c.word_count": f.MaxWordCount})
	}
	if f.Limit > 0 {
		qb = qb.Limit(uint64(f.Limit))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build content query: %w", err)
	}
	return r.selectContent(ctx, query, args...)
}

// ItemsWithoutEmbedding returns processed items which have no embedding for the model, newest first
func (r *ContentRepository) ItemsWithoutEmbedding(ctx context.Context, model string, limit int) ([]domain.ContentItem, error) {
	qb := r.selectItems().
		Where(sq.Eq{"c.processed": true}).
		Where(sq.Expr("NOT EXISTS (SELECT 1 FROM content_embeddings e WHERE e.content_item_id = c.id AND e.model = ?)", model)).
		OrderBy("c.scraped_at DESC", "c.id DESC")
	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build unindexed query: %w", err)
	}
	return r.selectContent(ctx, query, args...)
}

func (r *ContentRepository) selectItems() sq.SelectBuilder {
	return sq.Select(itemColumns...).From("content_items c").Join("websites w ON w.id = c.website_id")
}

func (r *ContentRepository) selectContent(ctx context.Context, query string, args ...any) ([]domain.ContentItem, error) {
	var recs []contentItemSQL
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("select content items: %w", err)
	}
	items := make([]domain.ContentItem, len(recs))
	for i := range recs {
		items[i] = r.toDomain(&recs[i])
	}
	return items, nil
}

// toDomain converts the SQL record to a domain content item
func (r *ContentRepository) toDomain(rec *contentItemSQL) domain.ContentItem {
	item := domain.ContentItem{
		ID:             rec.ID,
		WebsiteID:      rec.WebsiteID,
		SourceName:     rec.SourceName,
		Title:          rec.Title,
		Content:        rec.Content,
		CleanedContent: rec.CleanedContent,
		URL:            rec.URL,
		Author:         rec.Author,
		Category:       rec.Category,
		Language:       rec.Language,
		ScrapedAt:      rec.ScrapedAt,
		WordCount:      rec.WordCount,
		Processed:      rec.Processed,
	}
	if rec.PublishedAt != nil {
		item.PublishedAt = *rec.PublishedAt
	}
	return item
}
