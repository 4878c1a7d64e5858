package player

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrVLCNotFound = errors.New("vlc binary not found")

const (
	// VLC that exits within this window is assumed to have rejected the
	// advanced flags, and is relaunched with a bare command line.
	startupGracePeriod = 2 * time.Second
	stopTimeout        = 3 * time.Second
)

// VLC plays streams by launching the VLC media player as a subprocess.
// At most one process runs at a time; starting a new video stops the
// previous one.
type VLC struct {
	logger *zap.Logger
	binary string
	guard  *Guard

	mutex  sync.Mutex
	cmd    *exec.Cmd
	waitCh chan error
}

func NewVLC(path string, logger *zap.Logger) (*VLC, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	binary, err := findBinary(path)
	if err != nil {
		return nil, err
	}

	logger.Info("found vlc", zap.String("path", binary))
	return &VLC{
		logger: logger.Named("vlc"),
		binary: binary,
		guard:  NewGuard(GuardCapacity),
	}, nil
}

// findBinary locates the VLC executable: an explicit path wins, then PATH,
// then the usual install locations.
func findBinary(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrap(ErrVLCNotFound, explicit)
		}
		return explicit, nil
	}

	if path, err := exec.LookPath("vlc"); err == nil {
		return path, nil
	}

	for _, path := range commonInstallPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", ErrVLCNotFound
}

func commonInstallPaths() []string {
	switch runtime.GOOS {
	case "windows":
		home, _ := os.UserHomeDir()
		return []string{
			`C:\Program Files\VideoLAN\VLC\vlc.exe`,
			`C:\Program Files (x86)\VideoLAN\VLC\vlc.exe`,
			filepath.Join(home, `AppData\Local\Programs\VLC\vlc.exe`),
		}
	case "darwin":
		return []string{"/Applications/VLC.app/Contents/MacOS/VLC"}
	default:
		return []string{"/usr/bin/vlc", "/usr/local/bin/vlc", "/snap/bin/vlc"}
	}
}

// Guard exposes the duplicate-video guard for other collaborators.
func (v *VLC) Guard() *Guard {
	return v.guard
}

func (v *VLC) Play(streamURL string, meta Metadata, opts Options) error {
	if v.guard.Contains(meta.VideoID) {
		return ErrAlreadyPlayed
	}

	v.Stop()

	v.mutex.Lock()
	defer v.mutex.Unlock()

	args := buildArgs(streamURL, meta, opts)
	cmd := exec.Command(v.binary, args...)
	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "failed to start vlc")
	}

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	// VLC builds without the dummy interface or hardware decoding bail out
	// immediately; fall back to the plainest possible invocation.
	select {
	case err := <-waitCh:
		v.logger.Warn("vlc exited immediately, retrying with a bare command", zap.Error(err))
		cmd = exec.Command(v.binary, streamURL)
		if err := cmd.Start(); err != nil {
			return errors.Wrap(err, "failed to start vlc fallback")
		}
		waitCh = make(chan error, 1)
		go func() { waitCh <- cmd.Wait() }()
	case <-time.After(startupGracePeriod):
	}

	v.cmd = cmd
	v.waitCh = waitCh
	v.guard.Add(meta.VideoID)

	v.logger.Info("playback started",
		zap.String("videoId", meta.VideoID),
		zap.String("artist", meta.Artist),
		zap.String("title", meta.Title),
	)
	return nil
}

func (v *VLC) Stop() {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	if v.cmd == nil || v.cmd.Process == nil {
		return
	}

	if err := v.cmd.Process.Signal(os.Interrupt); err != nil {
		_ = v.cmd.Process.Kill()
	}

	select {
	case <-v.waitCh:
	case <-time.After(stopTimeout):
		_ = v.cmd.Process.Kill()
		<-v.waitCh
	}

	v.logger.Info("playback stopped")
	v.cmd = nil
	v.waitCh = nil
}

func buildArgs(streamURL string, meta Metadata, opts Options) []string {
	args := []string{
		streamURL,
		"--intf", "dummy",
		"--no-video-title-show",
		fmt.Sprintf("--meta-title=%s - %s", meta.Artist, meta.Title),
	}
	if opts.Fullscreen {
		args = append(args, "--fullscreen", "--video-on-top")
	}
	if opts.Muted {
		args = append(args, "--volume=0")
	}
	if opts.ForceBestQuality {
		args = append(args, "--avcodec-hw=any", "--network-caching=3000")
	}
	return args
}

var _ Service = (*VLC)(nil)
