// Package speaker turns flat "speaker: text" transcripts into utterances and
// guesses display names for opaque diarization labels.
package speaker

import (
	"fmt"
	"strings"
)

// Utterance is one speaker-attributed unit of transcript text.
type Utterance struct {
	Speaker string
	Text    string
}

func (u Utterance) String() string {
	return fmt.Sprintf("%s: %s", u.Speaker, u.Text)
}

const separator = ": "

// Parse splits text into utterances, one per line, on the first ": ".
// Lines without the separator are skipped.
func Parse(text string) []Utterance {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	utterances := make([]Utterance, 0, len(lines))
	for _, line := range lines {
		speaker, body, ok := strings.Cut(strings.TrimRight(line, "\r"), separator)
		if !ok {
			continue
		}
		utterances = append(utterances, Utterance{
			Speaker: strings.TrimSpace(speaker),
			Text:    strings.TrimSpace(body),
		})
	}
	return utterances
}

// Render writes utterances back to the "speaker: text" line format.
func Render(utterances []Utterance) string {
	var b strings.Builder
	for i, u := range utterances {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(u.String())
	}
	return b.String()
}
