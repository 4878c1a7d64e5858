package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newFlags(t *testing.T) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	return flags
}

func TestSettingsApply(t *testing.T) {
	flags := newFlags(t)
	require.NoError(t, flags.Parse(nil))

	content := `
port: 12345
vlcPath: /opt/vlc/vlc
startDelay: 1500ms
muted: false
`
	settings := &Settings{}
	require.NoError(t, yaml.Unmarshal([]byte(content), settings))
	settings.Apply(flags)

	require.Equal(t, 12345, Port())
	require.Equal(t, "/opt/vlc/vlc", VLCPath())
	require.Equal(t, 1500*time.Millisecond, StartDelay())
	require.False(t, Muted())
	require.True(t, SyncToSongStart())
}

func TestFlagsOverrideSettings(t *testing.T) {
	flags := newFlags(t)
	require.NoError(t, flags.Parse([]string{"--port", "999"}))

	settings := &Settings{}
	require.NoError(t, yaml.Unmarshal([]byte("port: 12345"), settings))
	settings.Apply(flags)

	require.Equal(t, 999, Port())
}

func TestEmptySettingsKeepDefaults(t *testing.T) {
	flags := newFlags(t)
	require.NoError(t, flags.Parse(nil))

	(&Settings{}).Apply(flags)

	require.True(t, StopOnMenu())
	require.True(t, Muted())
}
