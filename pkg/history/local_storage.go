package history

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
	"go.uber.org/zap"

	"rb3vid/internal/config"
)

const (
	historyFileName = "history.json"

	// Only this many most recent entries are kept on disk.
	storageCapacity = 100
)

type LocalStorage struct {
	logger *zap.Logger
	folder *configdir.Config
	mutex  *sync.RWMutex
	videos videoStorage
}

type videoStorage struct {
	Videos []string `json:"videos"`
}

// NewLocalStorage persists history in localPath, or in the user's global
// config directory when localPath is empty.
func NewLocalStorage(localPath string, logger *zap.Logger) *LocalStorage {
	if logger == nil {
		logger = zap.NewNop()
	}

	var folder *configdir.Config
	if localPath != "" {
		folder = &configdir.Config{
			Path: localPath,
			Type: configdir.Local,
		}
	} else {
		configDirs := configdir.New(config.VendorName, config.ApplicationName)
		folders := configDirs.QueryFolders(configdir.Global)
		folder = folders[0]
	}

	return &LocalStorage{
		logger: logger.Named("history"),
		folder: folder,
		mutex:  &sync.RWMutex{},
	}
}

func (s *LocalStorage) Initialize() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	err := s.readVideos()
	s.logger.Info("history initialized",
		zap.Int("videos", len(s.videos.Videos)),
		zap.String("path", s.folder.Path),
		zap.Error(err),
	)
	return err
}

func (s *LocalStorage) readVideos() error {
	if !s.folder.Exists(historyFileName) {
		return nil
	}

	data, err := s.folder.ReadFile(historyFileName)
	if err != nil {
		return errors.Wrap(err, "failed to read history")
	}

	err = json.Unmarshal(data, &s.videos)
	if err == nil {
		return nil
	}

	s.logger.Error("failed to parse history, clearing it", zap.Error(err))
	s.videos = videoStorage{}
	return s.saveVideos()
}

func (s *LocalStorage) saveVideos() error {
	data, err := json.Marshal(s.videos)
	if err != nil {
		return errors.Wrap(err, "failed to marshal history")
	}

	err = s.folder.WriteFile(historyFileName, data)
	if err != nil {
		return errors.Wrap(err, "failed to write history")
	}

	return nil
}

func (s *LocalStorage) Videos() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]string(nil), s.videos.Videos...)
}

func (s *LocalStorage) AddVideo(id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, known := range s.videos.Videos {
		if known == id {
			return nil
		}
	}

	s.videos.Videos = append(s.videos.Videos, id)
	if len(s.videos.Videos) > storageCapacity {
		s.videos.Videos = s.videos.Videos[len(s.videos.Videos)-storageCapacity:]
	}
	return s.saveVideos()
}

func (s *LocalStorage) Reset() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.videos = videoStorage{}
	return s.saveVideos()
}

var _ Service = (*LocalStorage)(nil)
