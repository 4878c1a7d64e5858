package transport

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// Receive-loop idle poll interval. The read deadline is refreshed on
	// every pass so shutdown is observed within one interval.
	idlePollInterval = 5 * time.Second

	// A reminder is logged after this many consecutive idle polls.
	idlePollsPerNotice = 6

	maxDatagramSize = 1024

	subscriptionBuffer = 64
)

var ErrNotInitialized = errors.New("listener not initialized")

// Listener binds the well-known broadcast port and fans received datagrams
// out to subscribers. It is the single producer of all event-derived state
// downstream.
type Listener struct {
	logger *zap.Logger
	ctx    context.Context
	clock  clockwork.Clock
	port   int

	mutex       sync.Mutex
	conn        *net.UDPConn
	subscribers []*PacketsSubscription
	stopped     bool
}

func NewListener(ctx context.Context, port int, logger *zap.Logger) *Listener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Listener{
		logger: logger.Named("transport"),
		ctx:    ctx,
		clock:  clockwork.NewRealClock(),
		port:   port,
	}
}

func (l *Listener) Initialize() error {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: l.port})
	if err != nil {
		return errors.Wrap(err, "failed to bind listening socket")
	}

	l.mutex.Lock()
	l.conn = conn
	l.mutex.Unlock()

	l.logger.Info("listening for game events", zap.Stringer("addr", conn.LocalAddr()))
	return nil
}

func (l *Listener) Start() error {
	l.mutex.Lock()
	conn := l.conn
	l.mutex.Unlock()

	if conn == nil {
		return ErrNotInitialized
	}

	go l.readLoop(conn)
	return nil
}

func (l *Listener) SubscribeToPackets() *PacketsSubscription {
	subscription := &PacketsSubscription{
		Ch: make(chan Packet, subscriptionBuffer),
	}
	subscription.Unsubscribe = func() {
		l.unsubscribe(subscription)
	}

	l.mutex.Lock()
	l.subscribers = append(l.subscribers, subscription)
	l.mutex.Unlock()

	return subscription
}

func (l *Listener) LocalAddr() net.Addr {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.conn == nil {
		return nil
	}
	return l.conn.LocalAddr()
}

func (l *Listener) Stop() {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.stopped {
		return
	}
	l.stopped = true

	if l.conn != nil {
		_ = l.conn.Close()
	}
	for _, subscription := range l.subscribers {
		close(subscription.Ch)
	}
	l.subscribers = nil
}

func (l *Listener) readLoop(conn *net.UDPConn) {
	buffer := make([]byte, maxDatagramSize)
	idlePolls := 0

	for {
		if l.ctx.Err() != nil {
			return
		}

		_ = conn.SetReadDeadline(l.clock.Now().Add(idlePollInterval))
		size, addr, err := conn.ReadFromUDP(buffer)

		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				idlePolls++
				if idlePolls%idlePollsPerNotice == 0 {
					l.logger.Info("still listening, no packets received",
						zap.Duration("idle", time.Duration(idlePolls)*idlePollInterval))
				}
				continue
			}
			if l.ctx.Err() != nil || l.isStopped() {
				return
			}
			l.logger.Warn("socket read failed", zap.Error(err))
			continue
		}

		idlePolls = 0

		packet := Packet{
			Data:       append([]byte(nil), buffer[:size]...),
			Source:     addr.IP.String(),
			ReceivedAt: l.clock.Now(),
		}
		l.publish(packet)
	}
}

func (l *Listener) publish(packet Packet) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.stopped {
		return
	}
	for _, subscription := range l.subscribers {
		select {
		case subscription.Ch <- packet:
		default:
			// A stalled consumer must not block the socket.
			l.logger.Warn("dropping packet for slow subscriber")
		}
	}
}

func (l *Listener) unsubscribe(target *PacketsSubscription) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	for index, subscription := range l.subscribers {
		if subscription == target {
			l.subscribers = append(l.subscribers[:index], l.subscribers[index+1:]...)
			close(subscription.Ch)
			return
		}
	}
}

func (l *Listener) isStopped() bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.stopped
}

var _ Service = (*Listener)(nil)
