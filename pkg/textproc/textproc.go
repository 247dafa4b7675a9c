// Package textproc provides text utilities used for digests: cleanup, word counts,
// reading time estimation, language detection and key-phrase extraction.
package textproc

import (
	"html"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/microcosm-cc/bluemonday"
)

// WordsPerMinute is the average reading speed used for reading time estimation
const WordsPerMinute = 250

const maxLanguageSample = 1000

var (
	wordRe       = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	phraseWordRe = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)
	spacesRe     = regexp.MustCompile(`\s+`)
	dotsRe       = regexp.MustCompile(`\.{3,}`)
	stripPolicy  = bluemonday.StrictPolicy()
)

var stopWords = map[string]map[string]bool{
	"en": setOf("the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by", "is",
		"are", "was", "were", "be", "been", "have", "has", "had", "do", "does", "did", "will", "would", "could",
		"should", "may", "might", "can", "this", "that", "these", "those"),
	"es": setOf("el", "la", "de", "que", "y", "a", "en", "un", "es", "se", "no", "te", "lo", "le", "da", "su",
		"por", "son", "con", "para", "al", "del", "los", "las", "una", "como", "pero", "sus", "han", "está"),
	"fr": setOf("le", "la", "les", "de", "et", "à", "un", "une", "il", "être", "avoir", "ne", "je", "son", "que",
		"se", "qui", "ce", "dans", "en", "du", "elle", "au", "tout", "y"),
}

// Clean strips markup from text, normalizes typographic characters and collapses whitespace
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = html.UnescapeString(stripPolicy.Sanitize(text))
	text = strings.NewReplacer(
		"“", `"`, "”", `"`, "‘", "'", "’", "'",
		"–", "-", "—", "-", "…", "...",
	).Replace(text)
	text = spacesRe.ReplaceAllString(text, " ")
	text = dotsRe.ReplaceAllString(text, "...")
	return strings.TrimSpace(text)
}

// CountWords returns number of words in text
func CountWords(text string) int {
	return len(wordRe.FindAllStringIndex(text, -1))
}

// ReadingTime estimates reading time in minutes, never less than one minute
func ReadingTime(text string) int {
	minutes := int(math.RoundToEven(float64(CountWords(text)) / WordsPerMinute))
	return max(1, minutes)
}

// DetectLanguage returns ISO 639-1 code of the text language, "en" when unsure
func DetectLanguage(text string) string {
	if utf8.RuneCountInString(text) < 10 {
		return "en"
	}
	info := whatlanggo.Detect(languageSample(text))
	code := info.Lang.Iso6391()
	if code == "" || !info.IsReliable() {
		return "en"
	}
	return code
}

// languageSample limits detection input to the first maxLanguageSample runes
func languageSample(text string) string {
	return Truncate(text, maxLanguageSample)
}

// KeyPhrases extracts the most frequent two-word phrases (three-word phrases too for long texts).
// Only phrases seen more than once among the top maxPhrases are returned.
func KeyPhrases(text string, maxPhrases int) []string {
	if text == "" || maxPhrases <= 0 {
		return nil
	}

	stops, ok := stopWords[DetectLanguage(text)]
	if !ok {
		stops = stopWords["en"]
	}

	var words []string
	for _, w := range phraseWordRe.FindAllString(Clean(strings.ToLower(text)), -1) {
		if !stops[w] {
			words = append(words, w)
		}
	}

	type phraseFreq struct {
		phrase string
		freq   int
		first  int
	}
	counts := map[string]*phraseFreq{}
	order := 0
	add := func(phrase string) {
		if pf, ok := counts[phrase]; ok {
			pf.freq++
			return
		}
		counts[phrase] = &phraseFreq{phrase: phrase, freq: 1, first: order}
		order++
	}

	for i := 0; i+1 < len(words); i++ {
		add(words[i] + " " + words[i+1])
	}
	if len(words) > 100 {
		for i := 0; i+2 < len(words); i++ {
			add(words[i] + " " + words[i+1] + " " + words[i+2])
		}
	}

	ranked := make([]*phraseFreq, 0, len(counts))
	for _, pf := range counts {
		ranked = append(ranked, pf)
	}
	// ties keep first-seen order so the result is deterministic
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].freq != ranked[j].freq {
			return ranked[i].freq > ranked[j].freq
		}
		return ranked[i].first < ranked[j].first
	})

	if len(ranked) > maxPhrases {
		ranked = ranked[:maxPhrases]
	}
	var res []string
	for _, pf := range ranked {
		if pf.freq > 1 {
			res = append(res, pf.phrase)
		}
	}
	return res
}

// Truncate returns at most limit runes of text, limit <= 0 means no limit
func Truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit])
}

func setOf(words ...string) map[string]bool {
	res := make(map[string]bool, len(words))
	for _, w := range words {
		res[w] = true
	}
	return res
}
