package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shibukawa/configdir"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"rb3vid/pkg/protocol"
)

const VendorName = "rb3vid"
const ApplicationName = "rb3vid"

const logsDirectory = "logs"

const apiKeyEnvVar = "YOUTUBE_API_KEY"

var port int
var apiKey string
var songsFile string
var vlcPath string
var fullscreen bool
var muted bool
var bestQuality bool
var startDelay time.Duration
var syncToSongStart bool
var stopOnMenu bool
var debug bool

var Logger *zap.Logger
var LogFilePath string

func RegisterFlags(flags *pflag.FlagSet) {
	flags.IntVar(&port, "port", protocol.Port, "UDP port to listen for game events on")
	flags.StringVar(&apiKey, "api-key", "", "YouTube Data API key (defaults to $"+apiKeyEnvVar+")")
	flags.StringVar(&songsFile, "songs", "", "Path to a song durations CSV export")
	flags.StringVar(&vlcPath, "vlc", "", "Path to the VLC binary")
	flags.BoolVar(&fullscreen, "fullscreen", false, "Play videos fullscreen")
	flags.BoolVar(&muted, "muted", true, "Mute video audio, the game provides it")
	flags.BoolVar(&bestQuality, "best-quality", false, "Force best stream quality")
	flags.DurationVar(&startDelay, "start-delay", 0, "Delay between song start and video playback")
	flags.BoolVar(&syncToSongStart, "sync", true, "Hold videos until the game reports the song started")
	flags.BoolVar(&stopOnMenu, "stop-on-menu", true, "Stop playback when returning to the menus")
	flags.BoolVar(&debug, "debug", false, "Show debug info")
}

func SetupLogger() {
	var c zap.Config
	if debug {
		c = zap.NewDevelopmentConfig()
	} else {
		c = zap.NewProductionConfig()
	}

	LogFilePath = createLogFile()
	c.OutputPaths = []string{LogFilePath}
	c.Development = false
	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	Logger = logger
}

func createLogFile() string {
	name := fmt.Sprintf("rb3vid-%s.log", time.Now().UTC().Format(time.RFC3339))
	name = strings.Replace(name, ":", "-", -1)

	configDirs := configdir.New(VendorName, ApplicationName)
	folders := configDirs.QueryFolders(configdir.Global)
	path := filepath.Join(folders[0].Path, logsDirectory, name)

	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		panic(err)
	}

	if _, err := os.Create(path); err != nil {
		panic(err)
	}

	return path
}

func Port() int {
	return port
}

func APIKey() string {
	if apiKey != "" {
		return apiKey
	}
	return os.Getenv(apiKeyEnvVar)
}

func SongsFile() string {
	return songsFile
}

func VLCPath() string {
	return vlcPath
}

func Fullscreen() bool {
	return fullscreen
}

func Muted() bool {
	return muted
}

func BestQuality() bool {
	return bestQuality
}

func StartDelay() time.Duration {
	return startDelay
}

func SyncToSongStart() bool {
	return syncToSongStart
}

func StopOnMenu() bool {
	return stopOnMenu
}

func Debug() bool {
	return debug
}
