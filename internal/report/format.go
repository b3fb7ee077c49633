package report

import (
	"fmt"
	"strings"
)

// ErrUnsupportedLanguage is returned as text by the simple formatters.
const ErrUnsupportedLanguage = "Error: summarizer language not supported."

const extractLength = 1000

// FormatSummary renders a raw RAG answer as a meeting summary document with
// every canonical section in canonical order.
func FormatSummary(raw, stem, language string) string {
	sections := ExtractSections(raw, language)

	title := "# Meeting Summary — " + stem
	if language == "fr" {
		title = "# Résumé de la réunion — " + stem
	}

	lines := []string{title, ""}
	for _, s := range Sections(language) {
		lines = append(lines, s.Header, sections[s.Label], "")
	}
	return strings.Join(lines, "\n")
}

// FormatSimple renders the single summary block used without retrieval.
func FormatSimple(title, source, body, sentiment, language string) string {
	switch language {
	case "en":
		return fmt.Sprintf(`
## 📺 Video Summary
- Title: %s
- From: %s
- **Sentiment:** %s
### 🎯 Theme & Summary
%s

`, title, source, sentiment, body)
	case "fr":
		return fmt.Sprintf(`
## 📺 Résumé de la vidéo
- Titre : %s
- De : %s
- **Sentiment :** %s
### 🎯 Thème & Résumé
%s

`, title, source, sentiment, body)
	default:
		return ErrUnsupportedLanguage
	}
}

// Extended carries the extra fields rendered by FormatExtended.
type Extended struct {
	Title      string
	Source     string
	Summary    string
	Sentiment  string
	Category   string
	Keywords   string
	Transcript string
}

// FormatExtended renders the summary together with category, keywords and the
// beginning of the transcript.
func FormatExtended(e Extended, language string) string {
	extract := Excerpt(e.Transcript, extractLength)

	switch language {
	case "en":
		return fmt.Sprintf(`
# 📺 Video Summary
- Title: %s
- From: %s

## 🎯 Theme & Summary
%s

## 🔑 Key Insights
- **Sentiment:** %s
- **Topic Category:** %s
- **Keywords:** %s

## 📜 Transcript Extract
%s...
`, e.Title, e.Source, e.Summary, e.Sentiment, e.Category, e.Keywords, extract)
	case "fr":
		return fmt.Sprintf(`
# 📺 Résumé de la vidéo
- Titre : %s
- De : %s

## 🎯 Thème & Résumé
%s

## 🔑 Points clés
- **Sentiment :** %s
- **Catégorie :** %s
- **Mots clefs :** %s

## 📜 Extrait de la transcription
%s...
`, e.Title, e.Source, e.Summary, e.Sentiment, e.Category, e.Keywords, extract)
	default:
		return ErrUnsupportedLanguage
	}
}

// Excerpt returns at most n runes of s.
func Excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// SummaryFileName is the results file name for a summary of stem.
func SummaryFileName(stem, language string) string {
	if language == "fr" {
		return stem + " - résumé.md"
	}
	return stem + " - summary.md"
}
