// Package telemetry broadcasts race snapshots to read-only spectators over
// websocket and QUIC.
package telemetry

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"hoverrace/internal/logging"
	"hoverrace/internal/race"
)

// MaxFrame bounds a single encoded frame.
const MaxFrame = 1 << 20

var ErrFrameTooLarge = errors.New("telemetry frame too large")

// Frame is one snapshot as sent on the wire.
type Frame struct {
	Session string        `msgpack:"session"`
	Track   uint64        `msgpack:"track"`
	Seq     uint64        `msgpack:"seq"`
	State   race.Snapshot `msgpack:"state"`
}

func Encode(f *Frame) ([]byte, error) {
	b, err := msgpack.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return b, nil
}

func Decode(b []byte) (*Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return &f, nil
}

// WriteFrame writes b with a big-endian uint32 length prefix.
func WriteFrame(w io.Writer, b []byte) error {
	if len(b) > MaxFrame {
		return ErrFrameTooLarge
	}
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(b)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// ReadFrame reads one length-prefixed frame.
func ReadFrame(r io.Reader) ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(hdr[:])
	if n > MaxFrame {
		return nil, ErrFrameTooLarge
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Publisher fans a payload out to its subscribers without blocking.
type Publisher interface {
	Publish(payload []byte)
}

// Snapshotter is anything that can describe the current race.
type Snapshotter interface {
	Snapshot() race.Snapshot
}

// Feed samples a race at a fixed rate and hands encoded frames to every
// publisher.
type Feed struct {
	Session uuid.UUID
	Track   uint64

	pubs     []Publisher
	interval float64
	acc      float64
	seq      uint64
	log      *logging.Logger
}

func NewFeed(session uuid.UUID, track uint64, rate float64, log *logging.Logger, pubs ...Publisher) *Feed {
	return &Feed{
		Session:  session,
		Track:    track,
		pubs:     pubs,
		interval: 1 / rate,
		log:      log,
	}
}

// Offer advances the feed clock by dt and publishes a frame when one is
// due. It reports whether a frame was sent.
func (f *Feed) Offer(dt float64, src Snapshotter) bool {
	if len(f.pubs) == 0 {
		return false
	}
	f.acc += dt
	if f.acc < f.interval {
		return false
	}
	f.acc = 0
	f.seq++
	b, err := Encode(&Frame{Session: f.Session.String(), Track: f.Track, Seq: f.seq, State: src.Snapshot()})
	if err != nil {
		f.log.Warn("telemetry frame dropped", logging.Error(err))
		return false
	}
	for _, p := range f.pubs {
		p.Publish(b)
	}
	return true
}
