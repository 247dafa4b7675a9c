package domain

import (
	"strings"
	"time"
)

// ContentFormat is the layout the user wants digests written in
type ContentFormat string

// supported content formats
const (
	FormatBullets   ContentFormat = "bullets"
	FormatNarrative ContentFormat = "narrative"
	FormatTabular   ContentFormat = "tabular"
)

// Valid reports whether the format is one of the known values
func (f ContentFormat) Valid() bool {
	switch f {
	case FormatBullets, FormatNarrative, FormatTabular:
		return true
	default:
		return false
	}
}

// ContentDepth controls how much context a digest carries
type ContentDepth string

// supported content depths
const (
	DepthSummary       ContentDepth = "summary"
	DepthDetailed      ContentDepth = "detailed"
	DepthComprehensive ContentDepth = "comprehensive"
)

// Valid reports whether the depth is one of the known values
func (d ContentDepth) Valid() bool {
	switch d {
	case DepthSummary, DepthDetailed, DepthComprehensive:
		return true
	default:
		return false
	}
}

// ContentLength is the preferred article length
type ContentLength string

// supported content lengths
const (
	LengthShort  ContentLength = "short"
	LengthMedium ContentLength = "medium"
	LengthLong   ContentLength = "long"
)

// Valid reports whether the length is one of the known values
func (l ContentLength) Valid() bool {
	switch l {
	case LengthShort, LengthMedium, LengthLong:
		return true
	default:
		return false
	}
}

// MaxWordCount returns the article word cap implied by the length, 0 means no cap
func (l ContentLength) MaxWordCount() int {
	switch l {
	case LengthShort:
		return 300
	case LengthMedium:
		return 800
	default:
		return 0
	}
}

// DeliveryFrequency is the cadence of digest delivery
type DeliveryFrequency string

// supported delivery frequencies
const (
	FrequencyDaily   DeliveryFrequency = "daily"
	FrequencyWeekly  DeliveryFrequency = "weekly"
	FrequencyMonthly DeliveryFrequency = "monthly"
)

// Valid reports whether the frequency is one of the known values
func (f DeliveryFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

// Window returns how far back content is eligible for a digest.
// Unknown frequencies fall back to the daily window.
func (f DeliveryFrequency) Window() time.Duration {
	switch f {
	case FrequencyWeekly:
		return 7 * 24 * time.Hour
	case FrequencyMonthly:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// SummaryType returns the digest type produced for this frequency
func (f DeliveryFrequency) SummaryType() SummaryType {
	switch f {
	case FrequencyDaily:
		return SummaryDailyDigest
	case FrequencyWeekly:
		return SummaryWeeklyRoundup
	default:
		return SummaryMonthlyOverview
	}
}

// Preferences holds everything a user told us about what they want to read
type Preferences struct {
	UserID           int64
	Topics           []string
	Categories       []string
	Format           ContentFormat
	Depth            ContentDepth
	Length           ContentLength
	Frequency        DeliveryFrequency
	IncludeSummaries bool
	IncludeKeyPoints bool
	IncludeTrends    bool
	MaxWordCount     int
	Language         string
	MaxItems         int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DefaultPreferences returns preferences used when a user record is created without a survey
func DefaultPreferences(userID int64) Preferences {
	return Preferences{
		UserID:           userID,
		Format:           FormatBullets,
		Depth:            DepthSummary,
		Length:           LengthMedium,
		Frequency:        FrequencyDaily,
		IncludeSummaries: true,
		IncludeKeyPoints: true,
		Language:         "en",
		MaxItems:         10,
	}
}

// FilterCriteria narrows the content store to what a single request may use.
// It is computed per request and never stored.
type FilterCriteria struct {
	Since        time.Time
	Categories   []string
	Language     string
	MaxWordCount int
	Topics       []string
	MaxItems     int
	Limit        int // pool size before narrowing
}

// Personalization is the advisory view of preferences used to build prompts
type Personalization struct {
	Format           ContentFormat
	Depth            ContentDepth
	Length           ContentLength
	Topics           []string
	IncludeSummaries bool
	IncludeKeyPoints bool
	IncludeTrends    bool
	MaxItems         int
}

// ToFilterCriteria derives content filters from preferences.
// An explicit MaxWordCount wins over the cap implied by Length.
func ToFilterCriteria(p Preferences, now time.Time) FilterCriteria {
	maxWords := p.MaxWordCount
	if maxWords <= 0 {
		maxWords = p.Length.MaxWordCount()
	}
	return FilterCriteria{
		Since:        now.Add(-p.Frequency.Window()),
		Categories:   cleanList(p.Categories),
		Language:     strings.TrimSpace(p.Language),
		MaxWordCount: maxWords,
		Topics:       cleanList(p.Topics),
		MaxItems:     p.MaxItems,
	}
}

// ToPersonalization derives the prompt context from preferences
func ToPersonalization(p Preferences) Personalization {
	return Personalization{
		Format:           p.Format,
		Depth:            p.Depth,
		Length:           p.Length,
		Topics:           cleanList(p.Topics),
		IncludeSummaries: p.IncludeSummaries,
		IncludeKeyPoints: p.IncludeKeyPoints,
		IncludeTrends:    p.IncludeTrends,
		MaxItems:         p.MaxItems,
	}
}

// cleanList drops blank entries and surrounding spaces, keeping order
func cleanList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	res := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, s)
		}
	}
	if len(res) == 0 {
		return nil
	}
	return res
}
