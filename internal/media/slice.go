package media

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/recap-flow/internal/segment"
)

// Clip is one speaker turn written to its own WAV file.
type Clip struct {
	Path    string
	Speaker string
	Segment segment.TimeSegment
}

// Slice writes one WAV file per segment into dir, in segment order. Files
// already written are returned along with any error so the caller can
// remove them.
func Slice(src string, segs []segment.SpeakerSegment, dir string) ([]Clip, error) {
	a, err := ReadMono(src)
	if err != nil {
		return nil, err
	}

	clips := make([]Clip, 0, len(segs))
	for i, s := range segs {
		path := filepath.Join(dir, fmt.Sprintf("%04d_%s.wav", i, safeName(s.Speaker)))
		if err := a.WriteWAV(path, a.Cut(s.Segment)); err != nil {
			return clips, fmt.Errorf("write clip %d: %w", i, err)
		}
		clips = append(clips, Clip{Path: path, Speaker: s.Speaker, Segment: s.Segment})
	}
	return clips, nil
}

func safeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, s)
}
