package session

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"rb3vid/internal/player"
	playermock "rb3vid/internal/player/mock"
	"rb3vid/internal/testcommon"
	"rb3vid/internal/testcommon/matchers"
	"rb3vid/pkg/protocol"
	"rb3vid/pkg/ranker"
	"rb3vid/pkg/session/mock"
)

const (
	testArtist    = "Weird Al Yankovic"
	testTitle     = "Gump"
	testShortname = "gumpv3"
	testVideoID   = "dQw4w9WgXcQ"
	testStreamURL = "https://stream.test/video"
)

func TestSession(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

type SessionSuite struct {
	testcommon.Suite

	clock     clockwork.FakeClock
	finder    *mock.MockFinder
	resolver  *mock.MockResolver
	player    *playermock.MockService
	durations *mock.MockDurationSource
	session   *Session
}

func (s *SessionSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.clock = clockwork.NewFakeClock()
	s.finder = mock.NewMockFinder(ctrl)
	s.resolver = mock.NewMockResolver(ctrl)
	s.player = playermock.NewMockService(ctrl)
	s.durations = mock.NewMockDurationSource(ctrl)

	s.session = s.newSession()
	s.Require().NotNil(s.session)
}

func (s *SessionSuite) newSession(extra ...Option) *Session {
	opts := []Option{
		WithLogger(s.Logger),
		WithClock(s.clock),
		WithFinder(s.finder),
		WithResolver(s.resolver),
		WithPlayer(s.player),
		WithDurations(s.durations),
	}
	return NewSession(append(opts, extra...))
}

func (s *SessionSuite) handle(kind protocol.EventKind, payload string) {
	s.session.HandleEvent(&protocol.Event{
		Kind:       kind,
		Payload:    payload,
		ReceivedAt: s.clock.Now(),
		Source:     "192.168.1.20",
	})
}

// expectSearch wires a successful search and stream resolution for the
// artist+title identity path.
func (s *SessionSuite) expectSearch(target int) {
	s.durations.EXPECT().Lookup("", testArtist, testTitle).Return(target, target > 0)
	s.finder.EXPECT().
		FindBest(gomock.Any(), testArtist, testTitle, target).
		Return(&ranker.Match{VideoID: testVideoID, Title: "Gump (official video)", Score: 250}, nil)
	s.resolver.EXPECT().Resolve(gomock.Any(), testVideoID).Return(testStreamURL, nil)
}

func (s *SessionSuite) stageVideo() {
	s.expectSearch(137)
	s.handle(protocol.EventSongArtist, testArtist)
	s.handle(protocol.EventSongTitle, testTitle)
	s.Require().Equal(StateVideoStaged, s.session.CurrentState())
}

func (s *SessionSuite) TestSearchTriggersWhenIdentityCompletes() {
	s.expectSearch(137)

	s.handle(protocol.EventSongArtist, testArtist)
	s.Require().Equal(StateIdle, s.session.CurrentState())

	s.handle(protocol.EventSongTitle, testTitle)

	s.Require().Equal(StateVideoStaged, s.session.CurrentState())
	pending := s.session.PendingVideo()
	s.Require().NotNil(pending)
	s.Require().Equal(testVideoID, pending.VideoID)
	s.Require().Equal(testStreamURL, pending.StreamURL)
	s.Require().True(s.session.CurrentSong().Empty())
}

func (s *SessionSuite) TestShortnamePathCompletesIdentity() {
	s.durations.EXPECT().Lookup(testShortname, "", testTitle).Return(137, true)
	s.finder.EXPECT().
		FindBest(gomock.Any(), "", testTitle, 137).
		Return(&ranker.Match{VideoID: testVideoID, Score: 100}, nil)
	s.resolver.EXPECT().Resolve(gomock.Any(), testVideoID).Return(testStreamURL, nil)

	s.handle(protocol.EventSongShortname, testShortname)
	s.Require().Equal(StateIdle, s.session.CurrentState())
	s.handle(protocol.EventSongTitle, testTitle)

	s.Require().Equal(StateVideoStaged, s.session.CurrentState())
}

func (s *SessionSuite) TestMenuToInGameStartsStagedVideo() {
	s.stageVideo()

	s.player.EXPECT().
		Play(testStreamURL, gomock.Any(), gomock.Any()).
		Do(func(_ string, meta player.Metadata, _ player.Options) {
			s.Require().Equal(testVideoID, meta.VideoID)
			s.Require().Equal(testArtist, meta.Artist)
			s.Require().Equal(testTitle, meta.Title)
		}).
		Return(nil)

	s.handle(protocol.EventGameState, "1")

	s.Require().Equal(StatePlaying, s.session.CurrentState())
	s.Require().Nil(s.session.PendingVideo())
}

func (s *SessionSuite) TestInGameWithoutPendingVideoIsQuiet() {
	s.handle(protocol.EventGameState, "1")

	s.Require().Equal(StateIdle, s.session.CurrentState())
	s.Require().Equal(protocol.GameStateInGame, s.session.GameState())
}

func (s *SessionSuite) TestSearchWhileInGamePlaysImmediately() {
	s.handle(protocol.EventGameState, "1")

	s.expectSearch(137)
	s.player.EXPECT().Play(testStreamURL, gomock.Any(), gomock.Any()).Return(nil)

	s.handle(protocol.EventSongArtist, testArtist)
	s.handle(protocol.EventSongTitle, testTitle)

	s.Require().Equal(StatePlaying, s.session.CurrentState())
}

func (s *SessionSuite) TestReturnToMenuStopsExactlyOnce() {
	s.stageVideo()
	s.player.EXPECT().Play(testStreamURL, gomock.Any(), gomock.Any()).Return(nil)
	s.handle(protocol.EventGameState, "1")
	s.Require().Equal(StatePlaying, s.session.CurrentState())

	s.player.EXPECT().Stop().Times(1)
	s.handle(protocol.EventGameState, "0")

	s.Require().Equal(StateIdle, s.session.CurrentState())
	s.Require().Nil(s.session.PendingVideo())
	s.Require().True(s.session.CurrentSong().Empty())

	// A repeated menu report must not stop again.
	s.handle(protocol.EventGameState, "0")
}

func (s *SessionSuite) TestReturnToMenuClearsStagedVideo() {
	s.stageVideo()
	s.handle(protocol.EventGameState, "0")

	s.Require().Equal(StateIdle, s.session.CurrentState())
	s.Require().Nil(s.session.PendingVideo())
}

func (s *SessionSuite) TestDuplicateVideoAdvancesWithNotice() {
	sub := s.session.SubscribeToNotifications()

	s.stageVideo()
	s.player.EXPECT().
		Play(testStreamURL, matchers.NewMetadataMatcher(testVideoID), gomock.Any()).
		Return(player.ErrAlreadyPlayed)

	s.handle(protocol.EventGameState, "1")

	s.Require().Equal(StatePlaying, s.session.CurrentState())

	tags := drainTags(sub)
	s.Require().Contains(tags, NotificationDuplicateVideo)
	s.Require().NotContains(tags, NotificationPlaybackStarted)
}

func (s *SessionSuite) TestSearchFailureReturnsToIdle() {
	s.durations.EXPECT().Lookup("", testArtist, testTitle).Return(0, false)
	s.finder.EXPECT().
		FindBest(gomock.Any(), testArtist, testTitle, 0).
		Return(nil, ranker.ErrNoCandidates)

	s.handle(protocol.EventSongArtist, testArtist)
	s.handle(protocol.EventSongTitle, testTitle)

	s.Require().Equal(StateIdle, s.session.CurrentState())
	s.Require().True(s.session.CurrentSong().Empty())
}

func (s *SessionSuite) TestResolutionFailureReturnsToIdle() {
	s.durations.EXPECT().Lookup("", testArtist, testTitle).Return(137, true)
	s.finder.EXPECT().
		FindBest(gomock.Any(), testArtist, testTitle, 137).
		Return(&ranker.Match{VideoID: testVideoID, Score: 250}, nil)
	s.resolver.EXPECT().
		Resolve(gomock.Any(), testVideoID).
		Return("", ranker.ErrNoCandidates)

	s.handle(protocol.EventSongArtist, testArtist)
	s.handle(protocol.EventSongTitle, testTitle)

	s.Require().Equal(StateIdle, s.session.CurrentState())
}

func (s *SessionSuite) TestPlayerFailureStillAdvances() {
	s.stageVideo()
	s.player.EXPECT().
		Play(testStreamURL, gomock.Any(), gomock.Any()).
		Return(errors.New("player would not start"))

	s.handle(protocol.EventGameState, "1")

	s.Require().Equal(StatePlaying, s.session.CurrentState())
	s.Require().Nil(s.session.PendingVideo())
}

func (s *SessionSuite) TestStartDelayWaitsBeforePlayback() {
	delayed := s.newSession(WithStartDelay(2 * time.Second))
	s.Require().NotNil(delayed)
	s.session = delayed

	s.stageVideo()

	played := make(chan struct{})
	s.player.EXPECT().
		Play(testStreamURL, gomock.Any(), gomock.Any()).
		Do(func(string, player.Metadata, player.Options) {
			close(played)
		}).
		Return(nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.handle(protocol.EventGameState, "1")
	}()

	s.clock.BlockUntil(1)
	select {
	case <-played:
		s.Require().FailNow("playback started before the delay elapsed")
	default:
	}

	s.clock.Advance(2 * time.Second)
	<-done
	<-played
	s.Require().Equal(StatePlaying, s.session.CurrentState())
}

func (s *SessionSuite) TestNegativeStartDelayPlaysImmediately() {
	delayed := s.newSession(WithStartDelay(-5 * time.Second))
	s.Require().NotNil(delayed)
	s.session = delayed

	s.stageVideo()
	s.player.EXPECT().Play(testStreamURL, gomock.Any(), gomock.Any()).Return(nil)

	// A blocked fake clock would hang here if the delay was waited on.
	s.handle(protocol.EventGameState, "1")
	s.Require().Equal(StatePlaying, s.session.CurrentState())
}

func (s *SessionSuite) TestSyncDisabledPlaysOnStage() {
	eager := s.newSession(WithSyncToSongStart(false))
	s.Require().NotNil(eager)
	s.session = eager

	s.expectSearch(137)
	s.player.EXPECT().Play(testStreamURL, matchers.NewMetadataMatcher(testVideoID), gomock.Any()).Return(nil)

	s.handle(protocol.EventSongArtist, testArtist)
	s.handle(protocol.EventSongTitle, testTitle)

	s.Require().Equal(StatePlaying, s.session.CurrentState())
}

func (s *SessionSuite) TestConnectedNotificationOnNewSource() {
	sub := s.session.SubscribeToNotifications()

	s.handle(protocol.EventAlive, "")
	s.handle(protocol.EventAlive, "")

	tags := drainTags(sub)
	s.Require().Equal(1, countTag(tags, NotificationConnected))
}

func (s *SessionSuite) TestStartWithoutTransport() {
	err := s.session.Start()
	s.Require().ErrorIs(err, ErrNoTransport)
}

func drainTags(sub *NotificationSubscription) []NotificationTag {
	tags := make([]NotificationTag, 0, len(sub.Events))
	for {
		select {
		case notification := <-sub.Events:
			tags = append(tags, notification.Tag)
		default:
			return tags
		}
	}
}

func countTag(tags []NotificationTag, target NotificationTag) int {
	count := 0
	for _, tag := range tags {
		if tag == target {
			count++
		}
	}
	return count
}
