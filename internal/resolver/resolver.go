package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrNoStream = errors.New("no stream url produced")

// YTDLP resolves video ids into direct stream URLs using the yt-dlp binary.
type YTDLP struct {
	logger *zap.Logger
}

func NewYTDLP(logger *zap.Logger) *YTDLP {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YTDLP{
		logger: logger.Named("resolver"),
	}
}

// Resolve returns a playable stream URL for the given video id.
func (y *YTDLP) Resolve(ctx context.Context, videoID string) (string, error) {
	watchURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)

	cmd := ytdlp.New().
		Quiet().
		NoWarnings().
		NoPlaylist().
		Format("bestvideo+bestaudio/best").
		GetURL()

	result, err := cmd.Run(ctx, watchURL)
	if err != nil {
		return "", errors.Wrapf(err, "yt-dlp failed for %s", videoID)
	}

	for _, line := range strings.Split(strings.TrimSpace(result.Stdout), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			y.logger.Debug("stream resolved", zap.String("videoID", videoID))
			return line, nil
		}
	}

	return "", ErrNoStream
}
