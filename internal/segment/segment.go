// Package segment groups diarized speaker turns into utterance windows.
package segment

import (
	"errors"
	"fmt"
)

// ErrInvalidSegment is returned for malformed input such as negative
// timestamps or a start that is not before the end.
var ErrInvalidSegment = errors.New("invalid segment")

// TimeSegment is a span of audio in seconds.
type TimeSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns End - Start.
func (t TimeSegment) Duration() float64 {
	return t.End - t.Start
}

// Overlaps reports whether t and o share a span of positive length.
func (t TimeSegment) Overlaps(o TimeSegment) bool {
	return t.Start < o.End && o.Start < t.End
}

func (t TimeSegment) validate() error {
	if t.Start < 0 || t.End < 0 {
		return fmt.Errorf("%w: negative timestamp (%.3f, %.3f)", ErrInvalidSegment, t.Start, t.End)
	}
	if t.Start >= t.End {
		return fmt.Errorf("%w: start %.3f is not before end %.3f", ErrInvalidSegment, t.Start, t.End)
	}
	return nil
}

// SpeakerSegment attributes a TimeSegment to a diarization label such as
// "SPEAKER_00".
type SpeakerSegment struct {
	Speaker string      `json:"speaker"`
	Segment TimeSegment `json:"segment"`
}

func (s SpeakerSegment) String() string {
	return fmt.Sprintf("%s [%.2f-%.2f]", s.Speaker, s.Segment.Start, s.Segment.End)
}
