package matchers

import (
	"fmt"

	"rb3vid/internal/player"
)

type MetadataMatcher struct {
	videoID string
	meta    *player.Metadata
}

func NewMetadataMatcher(videoID string) *MetadataMatcher {
	return &MetadataMatcher{
		videoID: videoID,
	}
}

func (m *MetadataMatcher) Matches(x interface{}) bool {
	m.meta = nil
	meta, ok := x.(player.Metadata)
	if !ok {
		return false
	}

	m.meta = &meta
	return meta.VideoID == m.videoID
}

func (m *MetadataMatcher) String() string {
	return fmt.Sprintf("is metadata for video %s", m.videoID)
}
