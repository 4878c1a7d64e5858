package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Overridden at build time with -ldflags "-X rb3vid/internal/version.tag=..."
	tag = "dev"

	buildInfo string
)

func Version() string {
	return fmt.Sprintf("%s %s", tag, buildInfo)
}

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	var goos, goarch string
	for _, s := range info.Settings {
		switch s.Key {
		case "GOOS":
			goos = s.Value
		case "GOARCH":
			goarch = s.Value
		}
	}

	buildInfo = fmt.Sprintf("%s/%s", goos, goarch)
}
