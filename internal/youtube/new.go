package youtube

import (
	"context"

	"github.com/kkdai/youtube/v2"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
)

// videoClient is the part of youtube.Client used here.
type videoClient interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetTranscriptCtx(ctx context.Context, video *youtube.Video, lang string) (youtube.VideoTranscript, error)
}

type implSource struct {
	client    videoClient
	languages []string
	width     uint
	logger    logger.Logger
}

// New creates a Source preferring French captions, then English.
func New(log logger.Logger) Source {
	return newSource(&youtube.Client{}, log)
}

func newSource(client videoClient, log logger.Logger) *implSource {
	return &implSource{
		client:    client,
		languages: []string{"fr", "en"},
		width:     80,
		logger:    log,
	}
}
