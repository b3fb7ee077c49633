package segment

import "fmt"

// DefaultMaxGap is the largest silence, in seconds, bridged between two
// turns of the same speaker.
const DefaultMaxGap = 1.0

// DefaultMinDuration is the shortest merged segment worth transcribing.
const DefaultMinDuration = 1.5

// Merge combines consecutive segments of the same speaker whose gap is at
// most maxGap. Input must be ordered by start time. Merged segments span
// from the first start to the furthest end of the run.
func Merge(segments []SpeakerSegment, maxGap float64) ([]SpeakerSegment, error) {
	if maxGap < 0 {
		return nil, fmt.Errorf("%w: negative max gap %.3f", ErrInvalidSegment, maxGap)
	}

	merged := make([]SpeakerSegment, 0, len(segments))
	var (
		current SpeakerSegment
		open    bool
	)

	for i, s := range segments {
		if err := s.Segment.validate(); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		if i > 0 && s.Segment.Start < segments[i-1].Segment.Start {
			return nil, fmt.Errorf("segment %d: %w: not ordered by start time", i, ErrInvalidSegment)
		}

		if open && s.Speaker == current.Speaker && s.Segment.Start-current.Segment.End <= maxGap {
			if s.Segment.End > current.Segment.End {
				current.Segment.End = s.Segment.End
			}
			continue
		}

		if open {
			merged = append(merged, current)
		}
		current = s
		open = true
	}

	if open {
		merged = append(merged, current)
	}
	return merged, nil
}

// FilterSpeech keeps the segments that overlap at least one speech region.
func FilterSpeech(segments []SpeakerSegment, speech []TimeSegment) []SpeakerSegment {
	kept := make([]SpeakerSegment, 0, len(segments))
	for _, s := range segments {
		for _, region := range speech {
			if s.Segment.Overlaps(region) {
				kept = append(kept, s)
				break
			}
		}
	}
	return kept
}

// DropShort removes segments shorter than minDuration seconds.
func DropShort(segments []SpeakerSegment, minDuration float64) []SpeakerSegment {
	kept := make([]SpeakerSegment, 0, len(segments))
	for _, s := range segments {
		if s.Segment.Duration() < minDuration {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}
