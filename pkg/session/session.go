package session

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"rb3vid/internal/diagnostics"
	"rb3vid/internal/player"
	"rb3vid/internal/transport"
	"rb3vid/pkg/protocol"
)

var ErrNoTransport = errors.New("no transport")

// Session is the playback state machine. It is the only writer of all
// event-derived state; one packet's full effect (identity update, search,
// playback trigger) completes before the next packet is processed.
type Session struct {
	logger      *zap.Logger
	ctx         context.Context
	clock       clockwork.Clock
	transport   transport.Service
	finder      Finder
	resolver    Resolver
	player      Player
	durations   DurationSource
	diagnostics *diagnostics.Log

	notifications *NotificationManager
	config        configuration

	mutex      sync.Mutex
	state      State
	gameState  protocol.GameState
	song       SongIdentity
	pending    *PendingVideo
	sourceAddr string
}

func NewSession(opts []Option) *Session {
	session := &Session{
		notifications: NewNotificationManager(),
		config:        defaultConfig,
		state:         StateIdle,
		gameState:     protocol.GameStateMenus,
	}

	for _, opt := range opts {
		opt(session)
	}

	if session.ctx == nil {
		session.ctx = context.Background()
	}

	if session.logger == nil {
		session.logger = zap.NewNop()
	}

	if session.clock == nil {
		session.clock = clockwork.NewRealClock()
	}

	if session.finder == nil {
		session.logger.Error("finder is required")
		return nil
	}

	if session.resolver == nil {
		session.logger.Error("resolver is required")
		return nil
	}

	if session.player == nil {
		session.logger.Error("player is required")
		return nil
	}

	return session
}

// Start subscribes to the transport and begins processing packets.
func (s *Session) Start() error {
	if s.transport == nil {
		return ErrNoTransport
	}

	sub := s.transport.SubscribeToPackets()
	go s.processIncomingPackets(sub)
	return nil
}

func (s *Session) Stop() {
	s.notifications.Close()
}

func (s *Session) SubscribeToNotifications() *NotificationSubscription {
	return s.notifications.Subscribe()
}

func (s *Session) CurrentState() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

func (s *Session) GameState() protocol.GameState {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.gameState
}

func (s *Session) CurrentSong() SongIdentity {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.song
}

func (s *Session) PendingVideo() *PendingVideo {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.pending == nil {
		return nil
	}
	pending := *s.pending
	return &pending
}

func (s *Session) processIncomingPackets(sub *transport.PacketsSubscription) {
	if sub.Unsubscribe != nil {
		defer sub.Unsubscribe()
	}
	for {
		select {
		case packet, more := <-sub.Ch:
			if !more {
				return
			}
			s.handlePacket(packet)
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Session) handlePacket(packet transport.Packet) {
	event, err := protocol.Decode(packet.Data, packet.Source, packet.ReceivedAt)
	if err != nil {
		// Malformed datagrams are dropped, the port is a broadcast one.
		s.logger.Debug("dropping packet", zap.Error(err))
		return
	}
	s.HandleEvent(event)
}

// HandleEvent applies a single decoded event to the session. Callers must
// not invoke it concurrently.
func (s *Session) HandleEvent(event *protocol.Event) {
	if event == nil {
		return
	}

	if s.diagnostics != nil {
		s.diagnostics.Record(event)
	}

	build := ""
	if event.Kind == protocol.EventAlive {
		build = event.Payload
	}
	s.trackSource(event.Source, build)

	switch event.Kind {
	case protocol.EventAlive:
		// Source tracking above is all there is to it.

	case protocol.EventGameState:
		s.handleGameState(protocol.ParseGameState(event.Payload))

	case protocol.EventSongTitle:
		s.updateIdentity(event.Kind, func(song *SongIdentity) {
			song.Title = event.Payload
		})

	case protocol.EventSongArtist:
		s.updateIdentity(event.Kind, func(song *SongIdentity) {
			song.Artist = event.Payload
		})

	case protocol.EventSongShortname:
		s.updateIdentity(event.Kind, func(song *SongIdentity) {
			song.Shortname = event.Payload
		})

	case protocol.EventScore:
		s.notifications.Send(Notification{Tag: NotificationScore, Data: event.Payload})

	default:
		// Recorded by diagnostics, no playback effect.
		s.logger.Debug("ignoring event", zap.Stringer("kind", event.Kind))
	}
}

func (s *Session) trackSource(source, build string) {
	if source == "" {
		return
	}

	s.mutex.Lock()
	changed := s.sourceAddr != source
	s.sourceAddr = source
	s.mutex.Unlock()

	if changed {
		s.logger.Info("game detected", zap.String("source", source), zap.String("build", build))
		s.notifications.Send(Notification{
			Tag:  NotificationConnected,
			Data: GameInfo{Source: source, Build: build},
		})
	}
}

func (s *Session) updateIdentity(kind protocol.EventKind, update func(*SongIdentity)) {
	s.mutex.Lock()
	before := s.song
	update(&s.song)
	song := s.song
	s.mutex.Unlock()

	if song == before {
		return
	}

	s.logger.Debug("song identity updated",
		zap.Stringer("kind", kind),
		zap.String("title", song.Title),
		zap.String("artist", song.Artist),
		zap.String("shortname", song.Shortname),
	)

	if !song.Complete() {
		return
	}

	s.notifications.Send(Notification{Tag: NotificationSongDetected, Data: song})
	s.runSearch(song)
}

func (s *Session) handleGameState(next protocol.GameState) {
	s.mutex.Lock()
	previous := s.gameState
	s.gameState = next
	state := s.state
	s.mutex.Unlock()

	if next == previous {
		return
	}

	s.logger.Info("game state changed", zap.Stringer("from", previous), zap.Stringer("to", next))
	s.notifications.Send(Notification{Tag: NotificationGameState, Data: next})

	switch {
	case next == protocol.GameStateInGame && state == StateVideoStaged:
		s.startPendingVideo()

	case next == protocol.GameStateMenus && state != StateIdle:
		s.reset()
	}
}

// runSearch blocks the processing loop for its duration. Failures are never
// fatal, the session just returns to idle for this song.
func (s *Session) runSearch(song SongIdentity) {
	s.mutex.Lock()
	s.song = SongIdentity{}
	s.mutex.Unlock()

	s.setState(StateSearchPending)
	s.notifications.Send(Notification{Tag: NotificationSearchStarted, Data: song})

	target := 0
	if s.durations != nil {
		if seconds, ok := s.durations.Lookup(song.Shortname, song.Artist, song.Title); ok {
			target = seconds
		}
	}

	logger := s.logger.With(
		zap.String("artist", song.Artist),
		zap.String("title", song.Title),
		zap.Int("target", target),
	)

	match, err := s.finder.FindBest(s.ctx, song.Artist, song.Title, target)
	if err != nil {
		logger.Warn("video search failed", zap.Error(err))
		s.notifications.Send(Notification{Tag: NotificationSearchFailed, Data: song})
		s.clearToIdle()
		return
	}

	streamURL, err := s.resolver.Resolve(s.ctx, match.VideoID)
	if err != nil {
		logger.Warn("stream resolution failed", zap.String("videoID", match.VideoID), zap.Error(err))
		s.notifications.Send(Notification{Tag: NotificationSearchFailed, Data: song})
		s.clearToIdle()
		return
	}

	pending := &PendingVideo{
		StreamURL: streamURL,
		VideoID:   match.VideoID,
		Artist:    song.Artist,
		Title:     song.Title,
		Shortname: song.Shortname,
	}

	s.mutex.Lock()
	s.pending = pending
	inGame := s.gameState == protocol.GameStateInGame
	s.mutex.Unlock()

	s.setState(StateVideoStaged)
	logger.Info("video staged", zap.String("videoID", match.VideoID), zap.Int("score", match.Score))
	s.notifications.Send(Notification{Tag: NotificationVideoStaged, Data: *pending})

	if inGame || !s.config.SyncToSongStart {
		s.startPendingVideo()
	}
}

func (s *Session) startPendingVideo() {
	s.mutex.Lock()
	pending := s.pending
	s.mutex.Unlock()

	if pending == nil {
		return
	}

	if delay := s.config.StartDelay; delay > 0 {
		s.logger.Debug("delaying playback", zap.Duration("delay", delay))
		select {
		case <-s.clock.After(delay):
		case <-s.ctx.Done():
			return
		}
	}

	meta := player.Metadata{
		VideoID:   pending.VideoID,
		Artist:    pending.Artist,
		Title:     pending.Title,
		Shortname: pending.Shortname,
	}

	err := s.player.Play(pending.StreamURL, meta, s.config.Player)
	switch {
	case errors.Is(err, player.ErrAlreadyPlayed):
		s.logger.Info("video already played recently", zap.String("videoID", pending.VideoID))
		s.notifications.Send(Notification{Tag: NotificationDuplicateVideo, Data: pending.VideoID})
	case err != nil:
		s.logger.Error("player failed to start", zap.Error(err))
	default:
		s.notifications.Send(Notification{Tag: NotificationPlaybackStarted, Data: *pending})
	}

	// Advance regardless of the outcome so the session never gets stuck
	// holding a video it cannot play.
	s.mutex.Lock()
	s.pending = nil
	s.mutex.Unlock()
	s.setState(StatePlaying)
}

func (s *Session) reset() {
	s.mutex.Lock()
	playing := s.state == StatePlaying
	s.pending = nil
	s.song = SongIdentity{}
	s.mutex.Unlock()

	if playing && s.config.StopOnMenu {
		s.player.Stop()
		s.notifications.Send(Notification{Tag: NotificationPlaybackStopped, Data: nil})
	}

	s.setState(StateIdle)
}

func (s *Session) clearToIdle() {
	s.mutex.Lock()
	s.pending = nil
	s.song = SongIdentity{}
	s.mutex.Unlock()
	s.setState(StateIdle)
}

func (s *Session) setState(next State) {
	s.mutex.Lock()
	previous := s.state
	s.state = next
	s.mutex.Unlock()

	if next == previous {
		return
	}

	s.logger.Debug("state changed", zap.Stringer("from", previous), zap.Stringer("to", next))
	s.notifications.Send(Notification{Tag: NotificationStateChanged, Data: next})
}
