package transport

import (
	"net"
	"time"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

// Packet is a single raw datagram received from the game.
type Packet struct {
	Data       []byte
	Source     string
	ReceivedAt time.Time
}

type PacketsSubscription struct {
	Ch          chan Packet
	Unsubscribe func()
}

// Service receives broadcast datagrams from the game. The game only ever
// broadcasts; the service never initiates connections.
type Service interface {
	Initialize() error
	Start() error
	SubscribeToPackets() *PacketsSubscription
	LocalAddr() net.Addr
	Stop()
}
