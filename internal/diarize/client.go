// Package diarize talks to the speaker diarization and voice activity
// detection service.
package diarize

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/segment"
)

// Client returns who spoke when, and where speech is, for a WAV file.
type Client interface {
	Diarize(ctx context.Context, wavPath string) ([]segment.SpeakerSegment, error)
	SpeechRegions(ctx context.Context, wavPath string) ([]segment.TimeSegment, error)
}

type implClient struct {
	baseURL string
	token   string
	http    *http.Client
	logger  logger.Logger
}

// New creates a Client for the service at baseURL. token, when set, is sent
// as a bearer token and forwarded by the service to the model hub.
func New(baseURL, token string, timeout time.Duration, log logger.Logger) Client {
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &implClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		logger:  log,
	}
}

type diarizeResp struct {
	Segments []struct {
		Speaker string  `json:"speaker"`
		Start   float64 `json:"start"`
		End     float64 `json:"end"`
	} `json:"segments"`
}

type vadResp struct {
	Segments []segment.TimeSegment `json:"segments"`
}

// Diarize returns speaker turns sorted by start time.
func (c *implClient) Diarize(ctx context.Context, wavPath string) ([]segment.SpeakerSegment, error) {
	var out diarizeResp
	if err := c.upload(ctx, "/diarize", wavPath, &out); err != nil {
		return nil, fmt.Errorf("diarize: %w", err)
	}

	segs := make([]segment.SpeakerSegment, 0, len(out.Segments))
	for _, s := range out.Segments {
		segs = append(segs, segment.SpeakerSegment{
			Speaker: s.Speaker,
			Segment: segment.TimeSegment{Start: s.Start, End: s.End},
		})
	}
	slices.SortStableFunc(segs, func(a, b segment.SpeakerSegment) int {
		return cmp.Compare(a.Segment.Start, b.Segment.Start)
	})

	c.logger.Debug(ctx, "Diarization returned %d turns for %s", len(segs), wavPath)
	return segs, nil
}

// SpeechRegions returns the spans where voice activity was detected.
func (c *implClient) SpeechRegions(ctx context.Context, wavPath string) ([]segment.TimeSegment, error) {
	var out vadResp
	if err := c.upload(ctx, "/vad", wavPath, &out); err != nil {
		return nil, fmt.Errorf("vad: %w", err)
	}
	c.logger.Debug(ctx, "VAD returned %d speech regions for %s", len(out.Segments), wavPath)
	return out.Segments, nil
}

func (c *implClient) upload(ctx context.Context, path, wavPath string, out any) error {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filepath.Base(wavPath))
	if err != nil {
		return err
	}
	fd, err := os.Open(wavPath)
	if err != nil {
		return err
	}
	defer fd.Close()

	if _, err := io.Copy(fw, fd); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &b)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
