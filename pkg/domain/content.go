package domain

import "time"

// ContentItem is a scraped and cleaned article ready for digests
type ContentItem struct {
	ID             int64
	WebsiteID      int64
	SourceName     string
	Title          string
	Content        string
	CleanedContent string
	URL            string
	Author         string
	Category       string
	Language       string
	PublishedAt    time.Time
	ScrapedAt      time.Time
	WordCount      int
	Processed      bool
}

// Text returns the cleaned content if present, raw content otherwise
func (c ContentItem) Text() string {
	if c.CleanedContent != "" {
		return c.CleanedContent
	}
	return c.Content
}

// User is a digest subscriber
type User struct {
	ID        int64
	Email     string
	Name      string
	Active    bool
	CreatedAt time.Time
}

// Website is a content source scraped by the ingestion agent
type Website struct {
	ID        int64
	URL       string
	Name      string
	Category  string
	Active    bool
	CreatedAt time.Time
}
