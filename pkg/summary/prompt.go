package summary

import (
	"fmt"
	"strings"

	"github.com/umputun/curator/pkg/domain"
	"github.com/umputun/curator/pkg/textproc"
)

// Prompt is a pair of chat messages sent to the LLM
type Prompt struct {
	System string
	User   string
}

// PromptBuilder renders articles and preferences into prompts.
// Output depends only on the inputs.
type PromptBuilder struct {
	excerptChars int
}

// NewPromptBuilder makes a builder which cuts article text to excerptChars runes
func NewPromptBuilder(excerptChars int) *PromptBuilder {
	if excerptChars <= 0 {
		excerptChars = 1000
	}
	return &PromptBuilder{excerptChars: excerptChars}
}

// Build makes system and user prompts for the summary
func (b *PromptBuilder) Build(items []domain.ContentItem, p domain.Personalization, summaryType domain.SummaryType) Prompt {
	return Prompt{System: b.system(p, summaryType), User: b.user(items, p, summaryType)}
}

func (b *PromptBuilder) user(items []domain.ContentItem, p domain.Personalization, summaryType domain.SummaryType) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Please create a personalized %s based on the following articles:\n\n", summaryType)

	for i, item := range items {
		fmt.Fprintf(&sb, "\n--- Article %d ---\n", i+1)
		fmt.Fprintf(&sb, "Title: %s\n", item.Title)
		fmt.Fprintf(&sb, "Source: %s\n", item.URL)
		if item.Author != "" {
			fmt.Fprintf(&sb, "Author: %s\n", item.Author)
		}
		category := item.Category
		if category == "" {
			category = "Unknown"
		}
		fmt.Fprintf(&sb, "Category: %s\n", category)
		fmt.Fprintf(&sb, "Content: %s...\n", textproc.Truncate(item.Text(), b.excerptChars))
	}

	sb.WriteString("\n\nUser Preferences:\n")
	fmt.Fprintf(&sb, "- Content Depth: %s\n", orDefault(string(p.Depth), string(domain.DepthSummary)))
	fmt.Fprintf(&sb, "- Content Format: %s\n", orDefault(string(p.Format), string(domain.FormatBullets)))
	fmt.Fprintf(&sb, "- Content Length: %s\n", orDefault(string(p.Length), string(domain.LengthMedium)))
	fmt.Fprintf(&sb, "- Topics of Interest: %s\n", strings.Join(p.Topics, ", "))
	fmt.Fprintf(&sb, "- Include Summaries: %t\n", p.IncludeSummaries)
	fmt.Fprintf(&sb, "- Include Key Points: %t\n", p.IncludeKeyPoints)
	fmt.Fprintf(&sb, "- Include Trends: %t\n", p.IncludeTrends)
	sb.WriteString("\nPlease format the response according to the user's preferences and focus on their topics of interest.")
	return sb.String()
}

func (b *PromptBuilder) system(p domain.Personalization, summaryType domain.SummaryType) string {
	var sb strings.Builder
	sb.WriteString("You are an AI assistant that creates personalized content summaries.\n\n")
	fmt.Fprintf(&sb, "Your task is to create a %s that is tailored to the user's specific interests and preferences.\n\n", summaryType)
	sb.WriteString("Formatting Guidelines:\n")
	fmt.Fprintf(&sb, "- %s\n", formatInstruction(p.Format))
	fmt.Fprintf(&sb, "- %s\n\n", depthInstruction(p.Depth))
	sb.WriteString(`Key Requirements:
1. Focus on the user's topics of interest
2. Maintain the requested content depth and format
3. Include only relevant and high-quality information
4. Make the content engaging and easy to read
5. If trends are requested, highlight emerging patterns across articles
6. Always cite sources when referencing specific articles

Be concise but informative, and ensure the summary adds value by connecting information across sources.`)
	return sb.String()
}

// formatInstruction falls back to the bullet list layout for unknown formats
func formatInstruction(f domain.ContentFormat) string {
	switch f {
	case domain.FormatNarrative:
		return "Write in a flowing narrative style with connected paragraphs."
	case domain.FormatTabular:
		return "When possible, use structured formats like tables or lists."
	case domain.FormatBullets:
		return "Format your response using bullet points and clear headings."
	default:
		return "Format your response using bullet points and clear headings."
	}
}

// depthInstruction falls back to brief summaries for unknown depths
func depthInstruction(d domain.ContentDepth) string {
	switch d {
	case domain.DepthDetailed:
		return "Include more context and explanation in your summaries."
	case domain.DepthComprehensive:
		return "Provide thorough analysis with background context and implications."
	case domain.DepthSummary:
		return "Provide brief, concise summaries focusing on key points."
	default:
		return "Provide brief, concise summaries focusing on key points."
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
