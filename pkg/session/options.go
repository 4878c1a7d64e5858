package session

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"rb3vid/internal/diagnostics"
	"rb3vid/internal/player"
	"rb3vid/internal/transport"
)

type Option func(*Session)

func WithContext(ctx context.Context) Option {
	return func(s *Session) {
		s.ctx = ctx
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

func WithClock(c clockwork.Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

func WithTransport(t transport.Service) Option {
	return func(s *Session) {
		s.transport = t
	}
}

func WithFinder(f Finder) Option {
	return func(s *Session) {
		s.finder = f
	}
}

func WithResolver(r Resolver) Option {
	return func(s *Session) {
		s.resolver = r
	}
}

func WithPlayer(p Player) Option {
	return func(s *Session) {
		s.player = p
	}
}

func WithDurations(d DurationSource) Option {
	return func(s *Session) {
		s.durations = d
	}
}

func WithDiagnostics(d *diagnostics.Log) Option {
	return func(s *Session) {
		s.diagnostics = d
	}
}

func WithStartDelay(d time.Duration) Option {
	return func(s *Session) {
		s.config.StartDelay = d
	}
}

func WithSyncToSongStart(enabled bool) Option {
	return func(s *Session) {
		s.config.SyncToSongStart = enabled
	}
}

func WithStopOnMenu(enabled bool) Option {
	return func(s *Session) {
		s.config.StopOnMenu = enabled
	}
}

func WithPlayerOptions(opts player.Options) Option {
	return func(s *Session) {
		s.config.Player = opts
	}
}
