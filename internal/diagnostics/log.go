package diagnostics

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"rb3vid/pkg/protocol"
)

const (
	historyCapacity = 50
	sampleCapacity  = 3
)

// RecordedEvent is a single entry in the bounded event history.
type RecordedEvent struct {
	Kind       protocol.EventKind
	Payload    string
	ReceivedAt time.Time
}

// UnknownKindGroup aggregates every sighting of one unrecognized event kind.
type UnknownKindGroup struct {
	Kind      protocol.EventKind
	Count     int
	FirstSeen time.Time
	LastSeen  time.Time
	Samples   []string
}

// Log keeps a rolling window of decoded events plus per-kind aggregates for
// event kinds outside the known enumeration. It never influences playback,
// it only exists for operator inspection.
type Log struct {
	sessionID string

	mutex   sync.RWMutex
	history []RecordedEvent
	unknown map[protocol.EventKind]*UnknownKindGroup
}

func NewLog() *Log {
	return &Log{
		sessionID: uuid.NewString(),
		history:   make([]RecordedEvent, 0, historyCapacity),
		unknown:   make(map[protocol.EventKind]*UnknownKindGroup),
	}
}

func (l *Log) SessionID() string {
	return l.sessionID
}

func (l *Log) Record(event *protocol.Event) {
	if event == nil {
		return
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	entry := RecordedEvent{
		Kind:       event.Kind,
		Payload:    event.Payload,
		ReceivedAt: event.ReceivedAt,
	}
	if len(l.history) == historyCapacity {
		l.history = append(l.history[1:], entry)
	} else {
		l.history = append(l.history, entry)
	}

	if event.Kind.Known() {
		return
	}

	group, ok := l.unknown[event.Kind]
	if !ok {
		group = &UnknownKindGroup{
			Kind:      event.Kind,
			FirstSeen: event.ReceivedAt,
		}
		l.unknown[event.Kind] = group
	}
	group.Count++
	group.LastSeen = event.ReceivedAt
	if len(group.Samples) == sampleCapacity {
		group.Samples = append(group.Samples[1:], event.Payload)
	} else {
		group.Samples = append(group.Samples, event.Payload)
	}
}

// History returns the retained events in arrival order, oldest first.
func (l *Log) History() []RecordedEvent {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return slices.Clone(l.history)
}

// UnknownKinds returns a snapshot of all unrecognized-kind groups, ordered
// by kind value.
func (l *Log) UnknownKinds() []UnknownKindGroup {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	groups := make([]UnknownKindGroup, 0, len(l.unknown))
	for _, group := range l.unknown {
		snapshot := *group
		snapshot.Samples = slices.Clone(group.Samples)
		groups = append(groups, snapshot)
	}
	slices.SortFunc(groups, func(a, b UnknownKindGroup) int {
		return int(a.Kind) - int(b.Kind)
	})
	return groups
}
