package protocol

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrShortPacket = errors.New("packet shorter than header")
	ErrBadMagic    = errors.New("wrong magic number")
	ErrBadVersion  = errors.New("unsupported protocol version")
)

// Decode parses a single RB3Enhanced datagram into an Event.
//
// The header is 8 bytes: big-endian magic, protocol version, event kind,
// payload length and a platform tag (the tag is not interpreted here).
// Malformed framing yields an error and no event; the caller is expected
// to drop such packets silently. Kinds outside the known enumeration are
// not an error.
func Decode(buf []byte, source string, receivedAt time.Time) (*Event, error) {
	if len(buf) < HeaderSize {
		return nil, ErrShortPacket
	}
	if binary.BigEndian.Uint32(buf[:4]) != Magic {
		return nil, ErrBadMagic
	}
	if buf[4] != Version {
		return nil, ErrBadVersion
	}

	size := int(buf[6])
	payload := buf[HeaderSize:]
	if size < len(payload) {
		payload = payload[:size]
	}

	return &Event{
		Kind:       EventKind(buf[5]),
		Payload:    decodePayload(payload),
		ReceivedAt: receivedAt,
		Source:     source,
	}, nil
}

// decodePayload strips the NUL padding and decodes the rest as UTF-8,
// substituting invalid sequences instead of failing.
func decodePayload(raw []byte) string {
	trimmed := strings.TrimRight(string(raw), "\x00")
	return strings.ToValidUTF8(trimmed, "�")
}
