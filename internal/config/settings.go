package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/shibukawa/configdir"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yml"

// Settings is the optional on-disk configuration. Command-line flags take
// precedence over anything set here.
type Settings struct {
	Port            *int    `yaml:"port"`
	APIKey          *string `yaml:"apiKey"`
	SongsFile       *string `yaml:"songsFile"`
	VLCPath         *string `yaml:"vlcPath"`
	Fullscreen      *bool   `yaml:"fullscreen"`
	Muted           *bool   `yaml:"muted"`
	BestQuality     *bool   `yaml:"bestQuality"`
	StartDelay      *string `yaml:"startDelay"`
	SyncToSongStart *bool   `yaml:"sync"`
	StopOnMenu      *bool   `yaml:"stopOnMenu"`
}

// LoadSettings reads the settings file from the user's config directory.
// A missing file is not an error.
func LoadSettings() (*Settings, error) {
	configDirs := configdir.New(VendorName, ApplicationName)
	folder := configDirs.QueryFolderContainsFile(settingsFileName)
	if folder == nil {
		return &Settings{}, nil
	}

	content, err := os.ReadFile(filepath.Join(folder.Path, settingsFileName))
	if err != nil {
		return nil, err
	}

	settings := &Settings{}
	err = yaml.Unmarshal(content, settings)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Apply copies settings into the config vars for every flag the user did
// not set explicitly.
func (s *Settings) Apply(flags *pflag.FlagSet) {
	applyValue(flags, "port", s.Port, &port)
	applyValue(flags, "api-key", s.APIKey, &apiKey)
	applyValue(flags, "songs", s.SongsFile, &songsFile)
	applyValue(flags, "vlc", s.VLCPath, &vlcPath)
	applyValue(flags, "fullscreen", s.Fullscreen, &fullscreen)
	applyValue(flags, "muted", s.Muted, &muted)
	applyValue(flags, "best-quality", s.BestQuality, &bestQuality)
	applyDuration(flags, "start-delay", s.StartDelay, &startDelay)
	applyValue(flags, "sync", s.SyncToSongStart, &syncToSongStart)
	applyValue(flags, "stop-on-menu", s.StopOnMenu, &stopOnMenu)
}

func applyValue[T any](flags *pflag.FlagSet, name string, value *T, target *T) {
	if value == nil {
		return
	}
	if flags != nil && flags.Changed(name) {
		return
	}
	*target = *value
}

func applyDuration(flags *pflag.FlagSet, name string, value *string, target *time.Duration) {
	if value == nil {
		return
	}
	if flags != nil && flags.Changed(name) {
		return
	}
	duration, err := time.ParseDuration(*value)
	if err != nil {
		return
	}
	*target = duration
}
