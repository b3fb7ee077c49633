// Package media reads extracted audio and cuts it into per-speaker clips.
package media

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/nguyentantai21042004/recap-flow/internal/segment"
)

// ErrInvalidWAV is returned when a file is not a PCM WAV.
var ErrInvalidWAV = errors.New("media: not a valid WAV file")

// Audio is a mono PCM signal held in memory.
type Audio struct {
	SampleRate int
	BitDepth   int
	Samples    []int
}

// ReadMono decodes a WAV file and averages its channels into one.
func ReadMono(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWAV, path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	channels := max(buf.Format.NumChannels, 1)
	samples := make([]int, len(buf.Data)/channels)
	for i := range samples {
		sum := 0
		for c := range channels {
			sum += buf.Data[i*channels+c]
		}
		samples[i] = sum / channels
	}

	return &Audio{
		SampleRate: buf.Format.SampleRate,
		BitDepth:   buf.SourceBitDepth,
		Samples:    samples,
	}, nil
}

// Duration returns the length of the signal in seconds.
func (a *Audio) Duration() float64 {
	if a.SampleRate == 0 {
		return 0
	}
	return float64(len(a.Samples)) / float64(a.SampleRate)
}

// Cut returns the samples inside seg, clamped to the signal.
func (a *Audio) Cut(seg segment.TimeSegment) []int {
	start := min(max(int(seg.Start*float64(a.SampleRate)), 0), len(a.Samples))
	end := min(max(int(seg.End*float64(a.SampleRate)), start), len(a.Samples))
	return a.Samples[start:end]
}

// WriteWAV writes samples as a mono WAV with the signal's format.
func (a *Audio) WriteWAV(path string, samples []int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	enc := wav.NewEncoder(f, a.SampleRate, a.BitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: a.SampleRate},
		Data:           samples,
		SourceBitDepth: a.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return enc.Close()
}
