package textproc

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tbl := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"plain", "hello world", "hello world"},
		{"html tags", "<p>Hello <b>world</b></p>", "Hello world"},
		{"entities", "Tom &amp; Jerry", "Tom & Jerry"},
		{"whitespace", "  many\n\n  spaces\there ", "many spaces here"},
		{"typography", "“quoted” — dash…", `"quoted" - dash...`},
		{"long dots", "wait.....", "wait..."},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 4, CountWords("Go is fun, really!"))
	assert.Equal(t, 3, CountWords("Привет мир again"))
	assert.Equal(t, 2, CountWords("snake_case word"))
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 1, ReadingTime(""))
	assert.Equal(t, 1, ReadingTime("short text"))
	assert.Equal(t, 2, ReadingTime(strings.Repeat("word ", 500)))
	assert.Equal(t, 4, ReadingTime(strings.Repeat("word ", 1000)))
	assert.Equal(t, 2, ReadingTime(strings.Repeat("word ", 625)), "2.5 minutes rounds half to even")
	assert.Equal(t, 4, ReadingTime(strings.Repeat("word ", 875)), "3.5 minutes rounds half to even")
}

func TestDetectLanguage(t *testing.T) {
	tbl := []struct {
		name, in, want string
	}{
		{"empty", "", "en"},
		{"too short", "hi", "en"},
		{"english", "The quick brown fox jumps over the lazy dog and keeps running through the forest.", "en"},
		{"english news", "The committee published its annual report on Monday, describing how the new policy " +
			"would affect schools, hospitals and small businesses across the country.", "en"},
		{"spanish", "El gobierno anunció este lunes un nuevo plan para mejorar la educación pública y reducir " +
			"la desigualdad en todas las regiones del país.", "es"},
		{"french", "Le gouvernement a présenté lundi un nouveau projet de loi pour améliorer les conditions " +
			"de travail des enseignants dans les écoles publiques.", "fr"},
		{"unreliable guess falls back to english",
			"Go is a programming language designed at Google for building simple reliable software.", "en"},
		{"long spanish with multi-byte runes", strings.Repeat("El gobierno anunció este lunes un nuevo plan para "+
			"mejorar la educación pública y reducir la desigualdad en todas las regiones del país. ", 12), "es"},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.in))
		})
	}
}

func TestLanguageSample(t *testing.T) {
	short := "short text"
	assert.Equal(t, short, languageSample(short))

	// odd byte offset puts byte 1000 in the middle of a two-byte rune
	long := "a" + strings.Repeat("é", 1200)
	sample := languageSample(long)
	assert.True(t, utf8.ValidString(sample))
	assert.Equal(t, maxLanguageSample, utf8.RuneCountInString(sample))
	assert.True(t, strings.HasPrefix(long, sample))
}

func TestKeyPhrases(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, KeyPhrases("", 3))
		assert.Empty(t, KeyPhrases("anything", 0))
	})

	t.Run("repeated phrases ranked by frequency", func(t *testing.T) {
		text := "Machine learning models improve. Machine learning is everywhere. " +
			"Vector databases matter. Machine learning and vector databases work together. " +
			"Vector databases scale."
		phrases := KeyPhrases(text, 3)
		assert.NotEmpty(t, phrases)
		assert.Equal(t, "machine learning", phrases[0])
		assert.Contains(t, phrases, "vector databases")
	})

	t.Run("no repetition yields nothing", func(t *testing.T) {
		assert.Empty(t, KeyPhrases("Completely unique words appear only once here", 3))
	})

	t.Run("deterministic", func(t *testing.T) {
		text := strings.Repeat("alpha beta gamma delta ", 5)
		assert.Equal(t, KeyPhrases(text, 3), KeyPhrases(text, 3))
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "при", Truncate("привет", 3))
	assert.Equal(t, "unlimited", Truncate("unlimited", 0))
}
