package domain

import "time"

// SummaryType identifies the kind of digest. Values outside the known set are kept
// as custom types and get the generic title template.
type SummaryType string

// known summary types
const (
	SummaryDailyDigest     SummaryType = "daily_digest"
	SummaryWeeklyRoundup   SummaryType = "weekly_roundup"
	SummaryMonthlyOverview SummaryType = "monthly_overview"
)

// Known reports whether the type is one of the predefined digest types
func (t SummaryType) Known() bool {
	switch t {
	case SummaryDailyDigest, SummaryWeeklyRoundup, SummaryMonthlyOverview:
		return true
	default:
		return false
	}
}

// SummaryDraft is a generated digest that has not been stored yet
type SummaryDraft struct {
	UserID          int64
	Title           string
	Text            string
	Type            SummaryType
	ContentItemIDs  []int64
	SystemPrompt    string
	UserPrompt      string
	Model           string
	WordCount       int
	ReadTimeMinutes int
}

// Summary is a persisted digest. Created once, never updated except read tracking.
type Summary struct {
	ID              string
	UserID          int64
	Title           string
	Text            string
	Type            SummaryType
	ContentItemIDs  []int64
	Prompt          string
	Model           string
	WordCount       int
	ReadTimeMinutes int
	IsRead          bool
	ReadAt          *time.Time
	CreatedAt       time.Time
}

// SummaryStats aggregates digest activity over a period
type SummaryStats struct {
	PeriodDays      int     `json:"period_days"`
	TotalSummaries  int     `json:"total_summaries"`
	AvgContentItems float64 `json:"avg_content_items_per_summary"`
	AvgWordCount    float64 `json:"avg_word_count"`
	UniqueUsers     int     `json:"unique_users"`
	ReadSummaries   int     `json:"read_summaries"`
}
