package app

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"rb3vid/internal/config"
	"rb3vid/internal/diagnostics"
	"rb3vid/internal/player"
	"rb3vid/internal/resolver"
	"rb3vid/internal/transport"
	"rb3vid/internal/youtube"
	"rb3vid/pkg/durations"
	"rb3vid/pkg/history"
	"rb3vid/pkg/protocol"
	"rb3vid/pkg/ranker"
	"rb3vid/pkg/session"
)

type App struct {
	Session *session.Session

	ctx  context.Context
	quit context.CancelFunc

	listener    *transport.Listener
	vlc         *player.VLC
	durations   *durations.Index
	diagnostics *diagnostics.Log
	history     history.Service

	notifications *session.NotificationSubscription
}

func NewApp() *App {
	ctx, quit := context.WithCancel(context.Background())

	return &App{
		ctx:  ctx,
		quit: quit,
	}
}

func (a *App) Initialize() error {
	logger := config.Logger

	a.diagnostics = diagnostics.NewLog()
	logger.Info("starting session", zap.String("sessionID", a.diagnostics.SessionID()))

	a.durations = durations.NewIndex(logger)
	if path := config.SongsFile(); path != "" {
		count, err := a.durations.Load(path)
		if err != nil {
			logger.Error("failed to load song durations", zap.String("path", path), zap.Error(err))
		} else {
			logger.Info("song durations loaded", zap.Int("count", count))
		}
	}

	search, err := youtube.NewClient(config.APIKey(), logger)
	if err != nil {
		return errors.Wrap(err, "failed to create youtube client")
	}

	a.vlc, err = player.NewVLC(config.VLCPath(), logger)
	if err != nil {
		return errors.Wrap(err, "failed to create player")
	}

	a.history = history.NewLocalStorage("", logger)
	if err = a.history.Initialize(); err != nil {
		logger.Error("failed to load play history", zap.Error(err))
	}
	for _, id := range a.history.Videos() {
		a.vlc.Guard().Add(id)
	}

	a.listener = transport.NewListener(a.ctx, config.Port(), logger)
	err = a.listener.Initialize()
	if err != nil {
		return errors.Wrap(err, "failed to initialize listener")
	}

	a.Session = session.NewSession([]session.Option{
		session.WithContext(a.ctx),
		session.WithLogger(logger),
		session.WithTransport(a.listener),
		session.WithFinder(ranker.NewRanker(search, logger)),
		session.WithResolver(resolver.NewYTDLP(logger)),
		session.WithPlayer(a.vlc),
		session.WithDurations(a.durations),
		session.WithDiagnostics(a.diagnostics),
		session.WithStartDelay(config.StartDelay()),
		session.WithSyncToSongStart(config.SyncToSongStart()),
		session.WithStopOnMenu(config.StopOnMenu()),
		session.WithPlayerOptions(player.Options{
			Fullscreen:       config.Fullscreen(),
			Muted:            config.Muted(),
			ForceBestQuality: config.BestQuality(),
		}),
	})
	if a.Session == nil {
		return errors.New("failed to create session")
	}

	a.notifications = a.Session.SubscribeToNotifications()

	err = a.Session.Start()
	if err != nil {
		return errors.Wrap(err, "failed to start session")
	}

	return a.listener.Start()
}

// Run prints session notifications until shutdown.
func (a *App) Run() {
	fmt.Printf("Listening for RB3Enhanced events on %v\n", a.listener.LocalAddr())

	for {
		select {
		case notification, more := <-a.notifications.Events:
			if !more {
				return
			}
			a.present(notification)
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *App) Stop() {
	if a.Session != nil {
		a.Session.Stop()
	}
	if a.listener != nil {
		a.listener.Stop()
	}
	if a.vlc != nil {
		a.vlc.Stop()
	}
	a.quit()
}

func (a *App) present(notification session.Notification) {
	switch notification.Tag {
	case session.NotificationConnected:
		if info, ok := notification.Data.(session.GameInfo); ok {
			fmt.Printf("Game detected at %s (%s)\n", info.Source, info.Build)
		}

	case session.NotificationGameState:
		if state, ok := notification.Data.(protocol.GameState); ok {
			fmt.Printf("Game state: %s\n", state)
		}

	case session.NotificationSongDetected:
		if song, ok := notification.Data.(session.SongIdentity); ok {
			fmt.Printf("Song detected: %s - %s\n", song.Artist, song.Title)
		}

	case session.NotificationSearchStarted:
		fmt.Println("Searching for a video...")

	case session.NotificationSearchFailed:
		fmt.Println("No video found for this song")

	case session.NotificationVideoStaged:
		if pending, ok := notification.Data.(session.PendingVideo); ok {
			fmt.Printf("Video staged: https://youtu.be/%s\n", pending.VideoID)
		}

	case session.NotificationPlaybackStarted:
		fmt.Println("Playback started")
		if pending, ok := notification.Data.(session.PendingVideo); ok {
			if err := a.history.AddVideo(pending.VideoID); err != nil {
				config.Logger.Error("failed to record played video", zap.Error(err))
			}
		}

	case session.NotificationPlaybackStopped:
		fmt.Println("Playback stopped")

	case session.NotificationDuplicateVideo:
		fmt.Printf("Already played recently, skipping: %v\n", notification.Data)

	case session.NotificationScore:
		fmt.Printf("Final score: %v\n", notification.Data)
	}
}
