// Package report renders summaries and transcripts as markdown and docx.
package report

import (
	"regexp"
	"strings"
)

// Section is one canonical block of a meeting summary.
type Section struct {
	Key    string
	Label  string
	Header string
}

// Canonical section order. Rendering always follows these slices.
var (
	sectionsFR = []Section{
		{Key: "topic", Label: "Sujet", Header: "## Sujet de la réunion"},
		{Key: "hashtags", Label: "Hashtags", Header: "## #Hashtags"},
		{Key: "takeaways", Label: "Principaux enseignements", Header: "## Principaux enseignements"},
		{Key: "qa", Label: "Questions / Réponses", Header: "## Questions / Réponses"},
		{Key: "decisions", Label: "Décisions", Header: "## Décisions"},
		{Key: "actions", Label: "Actions à suivre", Header: "## Actions à suivre"},
	}
	sectionsEN = []Section{
		{Key: "topic", Label: "Topic", Header: "## Meeting Topic"},
		{Key: "hashtags", Label: "Hashtags", Header: "## #Hashtags"},
		{Key: "takeaways", Label: "Main takeaways", Header: "## Main Takeaways"},
		{Key: "qa", Label: "Questions / Answers", Header: "## Questions / Answers"},
		{Key: "decisions", Label: "Decisions", Header: "## Decisions"},
		{Key: "actions", Label: "Action items", Header: "## Action Items"},
	}

	labelPatternFR = labelPattern(sectionsFR)
	labelPatternEN = labelPattern(sectionsEN)
)

// Sections returns the canonical sections for language. Anything other than
// "fr" gets the English set.
func Sections(language string) []Section {
	if language == "fr" {
		return sectionsFR
	}
	return sectionsEN
}

// labelPattern matches a label at the start of a line, optionally in bold,
// followed by a colon.
func labelPattern(sections []Section) *regexp.Regexp {
	quoted := make([]string, len(sections))
	for i, s := range sections {
		quoted[i] = regexp.QuoteMeta(s.Label)
	}
	return regexp.MustCompile(`(?im)^[ \t]*(?:\*\*)?(` + strings.Join(quoted, "|") + `)(?:\*\*)?[ \t]*:(?:\*\*)?`)
}

// ExtractSections maps every canonical label of language to its cleaned body
// in raw. A body runs from its label to the next label line or the end of
// raw. Missing sections get the language default. The first occurrence of a
// label wins.
func ExtractSections(raw, language string) map[string]string {
	sections := Sections(language)
	re := labelPatternEN
	if language == "fr" {
		re = labelPatternFR
	}

	found := make(map[string]string, len(sections))
	matches := re.FindAllStringSubmatchIndex(raw, -1)
	for i, m := range matches {
		end := len(raw)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		label := canonicalLabel(sections, raw[m[2]:m[3]])
		if _, ok := found[label]; ok {
			continue
		}
		found[label] = raw[m[1]:end]
	}

	out := make(map[string]string, len(sections))
	for _, s := range sections {
		out[s.Label] = CleanSection(found[s.Label], language)
	}
	return out
}

func canonicalLabel(sections []Section, matched string) string {
	for _, s := range sections {
		if strings.EqualFold(s.Label, matched) {
			return s.Label
		}
	}
	return matched
}

var noAnswer = map[string]struct{}{
	"none":   {},
	"aucune": {},
	"aucun":  {},
	"n/a":    {},
	"néant":  {},
	"-":      {},
}

// DefaultBody is the placeholder used for empty sections.
func DefaultBody(language string) string {
	if language == "fr" {
		return "Aucune"
	}
	return "None"
}

// CleanSection trims body and replaces empty or "no answer" bodies with the
// language default. Applying it twice gives the same result.
func CleanSection(body, language string) string {
	cleaned := strings.TrimSpace(body)
	token := strings.ToLower(strings.TrimRight(cleaned, "."))
	if token == "" {
		return DefaultBody(language)
	}
	if _, ok := noAnswer[token]; ok {
		return DefaultBody(language)
	}
	return cleaned
}
