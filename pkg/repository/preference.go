package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/curator/pkg/domain"
)

// PreferenceRepository handles user preferences
type PreferenceRepository struct {
	db *sqlx.DB
}

// preferencesSQL represents user preferences for SQL operations
type preferencesSQL struct {
	UserID           int64     `db:"user_id"`
	Topics           jsonList  `db:"topics"`
	Categories       jsonList  `db:"categories"`
	Format           string    `db:"content_format"`
	Depth            string    `db:"content_depth"`
	Length           string    `db:"content_length"`
	Frequency        string    `db:"delivery_frequency"`
	IncludeSummaries bool      `db:"include_summaries"`
	IncludeKeyPoints bool      `db:"include_key_points"`
	IncludeTrends    bool      `db:"include_trends"`
	MaxWordCount     int       `db:"max_word_count"`
	Language         string    `db:"language"`
	MaxItems         int       `db:"max_items"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetPreferences retrieves preferences of the user, returns nil if the user has none
func (r *PreferenceRepository) GetPreferences(ctx context.Context, userID int64) (*domain.Preferences, error) {
	var rec preferencesSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM user_preferences WHERE user_id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return r.toDomain(&rec), nil
}

// SetPreferences creates or replaces preferences of the user
func (r *PreferenceRepository) SetPreferences(ctx context.Context, prefs *domain.Preferences) error {
	now := time.Now().UTC()
	rec := preferencesSQL{
		UserID:           prefs.UserID,
		Topics:           jsonList(prefs.Topics),
		Categories:       jsonList(prefs.Categories),
		Format:           string(prefs.Format),
		Depth:            string(prefs.Depth),
		Length:           string(prefs.Length),
		Frequency:        string(prefs.Frequency),
		IncludeSummaries: prefs.IncludeSummaries,
		IncludeKeyPoints: prefs.IncludeKeyPoints,
		IncludeTrends:    prefs.IncludeTrends,
		MaxWordCount:     prefs.MaxWordCount,
		Language:         prefs.Language,
		MaxItems:         prefs.MaxItems,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	query := `
		INSERT INTO user_preferences (user_id, topics, categories, content_format, content_depth,
			content_length, delivery_frequency, include_summaries, include_key_points, include_trends,
			max_word_count, language, max_items, created_at, updated_at)
		VALUES (:user_id, :topics, :categories, :content_format, :content_depth,
			:content_length, :delivery_frequency, :include_summaries, :include_key_points, :include_trends,
			:max_word_count, :language, :max_items, :created_at, :updated_at)
		ON CONFLICT(user_id) DO UPDATE SET
			topics = excluded.topics,
			categories = excluded.categories,
			content_format = excluded.content_format,
			content_depth = excluded.content_depth,
			content_length = excluded.content_length,
			delivery_frequency = excluded.delivery_frequency,
			include_summaries = excluded.include_summaries,
			include_key_points = excluded.include_key_points,
			include_trends = excluded.include_trends,
			max_word_count = excluded.max_word_count,
			language = excluded.language,
			max_items = excluded.max_items,
			updated_at = excluded.updated_at
	`

	return newRetrier().Do(ctx, func() error {
		if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
			return classify(fmt.Errorf("set preferences: %w", err))
		}
		return nil
	}, errCritical)
}

// toDomain converts the SQL record to domain preferences
func (r *PreferenceRepository) toDomain(rec *preferencesSQL) *domain.Preferences {
	return &domain.Preferences{
		UserID:           rec.UserID,
		Topics:           []string(rec.Topics),
		Categories:       []string(rec.Categories),
		Format:           domain.ContentFormat(rec.Format),
		Depth:            domain.ContentDepth(rec.Depth),
		Length:           domain.ContentLength(rec.Length),
		Frequency:        domain.DeliveryFrequency(rec.Frequency),
		IncludeSummaries: rec.IncludeSummaries,
		IncludeKeyPoints: rec.IncludeKeyPoints,
		IncludeTrends:    rec.IncludeTrends,
		MaxWordCount:     rec.MaxWordCount,
		Language:         rec.Language,
		MaxItems:         rec.MaxItems,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
}
