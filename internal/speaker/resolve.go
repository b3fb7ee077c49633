package speaker

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Trigger phrases are matched case-insensitively; the name that follows must
// start with an upper-case letter.
var reNominative = regexp.MustCompile(
	`(?:^|\W)(?i:merci|parlait de|comme disait|selon|thanks to|as said by|according to)\s+([A-Z][A-Za-z'-]*)`,
)

// NameMap returns the guessed display name per speaker ID. For each speaker
// the utterances are scanned in order and the first match is kept.
func NameMap(utterances []Utterance) map[string]string {
	names := make(map[string]string)

	for _, u := range utterances {
		if _, ok := names[u.Speaker]; ok {
			continue
		}
		m := reNominative.FindStringSubmatch(stripDiacritics(u.Text))
		if m == nil {
			continue
		}
		names[u.Speaker] = capitalize(m[1])
	}
	return names
}

// ResolveNames returns a copy of utterances with speaker IDs replaced by the
// names found by NameMap. Speakers without a match keep their ID.
func ResolveNames(utterances []Utterance) []Utterance {
	names := NameMap(utterances)

	resolved := make([]Utterance, len(utterances))
	for i, u := range utterances {
		if name, ok := names[u.Speaker]; ok {
			u.Speaker = name
		}
		resolved[i] = u
	}
	return resolved
}

// stripDiacritics builds its chain per call: a transform.Chain keeps
// buffers and is not safe for concurrent use.
func stripDiacritics(s string) string {
	diacritics := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(diacritics, s)
	if err != nil {
		return s
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
