package player

import "sync"

// GuardCapacity bounds how many recently played videos are remembered.
const GuardCapacity = 10

// Guard is the duplicate-video guard: a bounded set of recently played video
// identifiers, oldest evicted first. Safe for concurrent readers with a
// single writer.
type Guard struct {
	mutex    sync.RWMutex
	capacity int
	order    []string
	seen     map[string]struct{}
}

func NewGuard(capacity int) *Guard {
	if capacity <= 0 {
		capacity = GuardCapacity
	}
	return &Guard{
		capacity: capacity,
		order:    make([]string, 0, capacity),
		seen:     make(map[string]struct{}, capacity),
	}
}

func (g *Guard) Contains(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	_, ok := g.seen[id]
	return ok
}

func (g *Guard) Add(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.seen[id]; ok {
		return
	}

	if len(g.order) == g.capacity {
		oldest := g.order[0]
		g.order = g.order[1:]
		delete(g.seen, oldest)
	}

	g.order = append(g.order, id)
	g.seen[id] = struct{}{}
}

func (g *Guard) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.order)
}
