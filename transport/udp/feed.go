// File: transport/udp/feed.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package udp

import (
	"context"
	"errors"
	"log"
	"net"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-ring/affinity"
	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/pool"
)

// Policy selects the ring admission used for incoming packets.
type Policy int

const (
	// PolicyOverwrite keeps the freshest packets, losing the oldest when
	// the consumer falls behind. The usual choice for live feeds.
	PolicyOverwrite Policy = iota
	// PolicyBlock applies backpressure to the socket loop; the kernel
	// socket buffer absorbs the burst or drops for us.
	PolicyBlock
	// PolicyDrop rejects new packets while the ring is full.
	PolicyDrop
)

const pollInterval = 100 * time.Millisecond

// PacketFeed receives fixed-size UDP datagrams and writes them into a
// slot ring. Exactly one Run loop per feed; the ring's single-writer
// contract extends to the feed.
type PacketFeed struct {
	conn   *net.UDPConn
	ring   api.SlotRing
	frames *pool.FramePool
	policy Policy
	pinCPU int

	received  atomic.Uint64
	malformed atomic.Uint64
}

// NewPacketFeed binds addr and prepares a feed into r. pinCPU pins the
// receive loop's thread when >= 0.
func NewPacketFeed(addr string, r api.SlotRing, policy Policy, pinCPU int) (*PacketFeed, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, err
	}
	return &PacketFeed{
		conn:   conn,
		ring:   r,
		frames: pool.NewFramePool(r.ItemSize()),
		policy: policy,
		pinCPU: pinCPU,
	}, nil
}

// LocalAddr returns the bound socket address.
func (f *PacketFeed) LocalAddr() net.Addr { return f.conn.LocalAddr() }

// Received returns the count of packets written into the ring.
func (f *PacketFeed) Received() uint64 { return f.received.Load() }

// Malformed returns the count of datagrams rejected for size mismatch.
func (f *PacketFeed) Malformed() uint64 { return f.malformed.Load() }

// Run receives datagrams until ctx is cancelled or the socket closes.
// Datagrams whose length differs from the ring's item size are counted
// and discarded; a slot always carries one complete packet.
func (f *PacketFeed) Run(ctx context.Context) error {
	if f.pinCPU >= 0 {
		if err := affinity.Pin(f.pinCPU); err != nil {
			log.Printf("udp: feed not pinned to cpu %d: %v", f.pinCPU, err)
		}
		defer affinity.Unpin()
	}

	itemSize := f.ring.ItemSize()
	scratch := f.frames.Get()
	defer f.frames.Put(scratch)

	for {
		if err := f.conn.SetReadDeadline(time.Now().Add(pollInterval)); err != nil {
			return err
		}
		n, _, err := f.conn.ReadFromUDP(scratch)
		if err != nil {
			var nerr net.Error
			if errors.As(err, &nerr) && nerr.Timeout() {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
					continue
				}
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, net.ErrClosed) {
				return api.ErrFeedClosed
			}
			return err
		}
		if n != itemSize {
			f.malformed.Add(1)
			continue
		}
		f.admit(scratch[:n])
	}
}

// Close shuts the socket down; a blocked Run loop returns.
func (f *PacketFeed) Close() error { return f.conn.Close() }

func (f *PacketFeed) admit(pkt []byte) {
	fill := func(slot []byte) { copy(slot, pkt) }
	switch f.policy {
	case PolicyBlock:
		f.ring.Write(fill)
	case PolicyDrop:
		if !f.ring.WriteNonblock(fill) {
			return
		}
	default:
		f.ring.WriteOverwrite(fill)
	}
	f.received.Add(1)
}
