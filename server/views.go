package server

import (
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/umputun/curator/pkg/domain"
)

// preferencesView is the JSON form of user preferences
type preferencesView struct {
	Topics           []string  `json:"topics"`
	Categories       []string  `json:"categories"`
	Format           string    `json:"format"`
	Depth            string    `json:"depth"`
	Length           string    `json:"length"`
	Frequency        string    `json:"frequency"`
	IncludeSummaries bool      `json:"include_summaries"`
	IncludeKeyPoints bool      `json:"include_key_points"`
	IncludeTrends    bool      `json:"include_trends"`
	MaxWordCount     int       `json:"max_word_count"`
	Language         string    `json:"language"`
	MaxItems         int       `json:"max_items"`
	UpdatedAt        time.Time `json:"updated_at,omitzero"`
}

func toPreferencesView(p domain.Preferences) preferencesView {
	return preferencesView{
		Topics:           p.Topics,
		Categories:       p.Categories,
		Format:           string(p.Format),
		Depth:            string(p.Depth),
		Length:           string(p.Length),
		Frequency:        string(p.Frequency),
		IncludeSummaries: p.IncludeSummaries,
		IncludeKeyPoints: p.IncludeKeyPoints,
		IncludeTrends:    p.IncludeTrends,
		MaxWordCount:     p.MaxWordCount,
		Language:         p.Language,
		MaxItems:         p.MaxItems,
		UpdatedAt:        p.UpdatedAt,
	}
}

// toDomain validates the view and converts it to preferences of the user
func (v preferencesView) toDomain(userID int64) (domain.Preferences, error) {
	p := domain.Preferences{
		UserID:           userID,
		Topics:           v.Topics,
		Categories:       v.Categories,
		Format:           domain.ContentFormat(v.Format),
		Depth:            domain.ContentDepth(v.Depth),
		Length:           domain.ContentLength(v.Length),
		Frequency:        domain.DeliveryFrequency(v.Frequency),
		IncludeSummaries: v.IncludeSummaries,
		IncludeKeyPoints: v.IncludeKeyPoints,
		IncludeTrends:    v.IncludeTrends,
		MaxWordCount:     v.MaxWordCount,
		Language:         strings.TrimSpace(v.Language),
		MaxItems:         v.MaxItems,
	}
	switch {
	case !p.Format.Valid():
		return p, fmt.Errorf("invalid format %q", v.Format)
	case !p.Depth.Valid():
		return p, fmt.Errorf("invalid depth %q", v.Depth)
	case !p.Length.Valid():
		return p, fmt.Errorf("invalid length %q", v.Length)
	case !p.Frequency.Valid():
		return p, fmt.Errorf("invalid frequency %q", v.Frequency)
	case p.MaxItems < 1 || p.MaxItems > 50:
		return p, fmt.Errorf("max_items must be between 1 and 50, got %d", p.MaxItems)
	case p.MaxWordCount < 0:
		return p, fmt.Errorf("max_word_count can't be negative")
	}
	return p, nil
}

// summaryView is the JSON form of a digest, text and prompt are omitted in lists
type summaryView struct {
	ID              string     `json:"id"`
	UserID          int64      `json:"user_id"`
	Title           string     `json:"title"`
	Type            string     `json:"summary_type"`
	Text            string     `json:"summary_text,omitempty"`
	Prompt          string     `json:"generation_prompt,omitempty"`
	Model           string     `json:"llm_model"`
	ContentItemIDs  []int64    `json:"content_item_ids"`
	WordCount       int        `json:"word_count"`
	ReadTimeMinutes int        `json:"read_time_minutes"`
	IsRead          bool       `json:"is_read"`
	ReadAt          *time.Time `json:"read_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func toSummaryView(s domain.Summary, full bool) summaryView {
	res := summaryView{
		ID:              s.ID,
		UserID:          s.UserID,
		Title:           s.Title,
		Type:            string(s.Type),
		Model:           s.Model,
		ContentItemIDs:  s.ContentItemIDs,
		WordCount:       s.WordCount,
		ReadTimeMinutes: s.ReadTimeMinutes,
		IsRead:          s.IsRead,
		ReadAt:          s.ReadAt,
		CreatedAt:       s.CreatedAt,
	}
	if res.ContentItemIDs == nil {
		res.ContentItemIDs = []int64{}
	}
	if full {
		res.Text = s.Text
		res.Prompt = s.Prompt
	}
	return res
}

// contentRequest is an article pushed by the scraper
type contentRequest struct {
	Website struct {
		URL      string `json:"url"`
		Name     string `json:"name"`
		Category string `json:"category"`
	} `json:"website"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Language    string    `json:"language"`
	PublishedAt time.Time `json:"published_at"`
}

func (c contentRequest) validate() error {
	if c.Website.URL == "" {
		return errors.New("website.url is required")
	}
	if u, err := url.Parse(c.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid url %q", c.URL)
	}
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(c.Content) == "" {
		return errors.New("content is required")
	}
	return nil
}

// summaryPage is the data of the summary HTML page
type summaryPage struct {
	Title     string
	CreatedAt string
	ReadTime  int
	Articles  int
	Body      template.HTML
}
