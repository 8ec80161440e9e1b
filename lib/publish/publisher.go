// Package publish implements the FramePublisher described in §4.8 and
// §6.2: a publish/subscribe, unreliable, drop-old fan-out of per-channel
// wire frames over plain TCP. No pack example vendors a ZeroMQ/nanomsg
// binding (the transport the original implementation used), so this is
// built directly on net.Listener, grounded on the teacher's lib/qlab
// client's persistent-connection/dedicated-goroutine shape adapted to the
// write (publish) side and fanned out to many subscribers.
package publish

import (
	"net"
	"sync"

	"github.com/rs/zerolog/log"
)

// DefaultAddr is the spec's default server bind address (§6.2).
const DefaultAddr = ":6000"

// subscriber is one connected client. latest holds at most one pending
// frame per channel; a new Publish on a channel overwrites whatever is
// waiting, giving the "drop oldest, keep newest" semantics of §4.8
// without an unbounded queue.
type subscriber struct {
	conn   net.Conn
	mu     sync.Mutex
	latest map[int][]byte
	notify chan struct{}
	done   chan struct{}
}

func newSubscriber(conn net.Conn) *subscriber {
	return &subscriber{
		conn:   conn,
		latest: make(map[int][]byte),
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

func (s *subscriber) publish(channel int, frame []byte) {
	s.mu.Lock()
	s.latest[channel] = frame
	s.mu.Unlock()
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *subscriber) writeLoop() {
	for {
		select {
		case <-s.done:
			return
		case <-s.notify:
		}
		s.mu.Lock()
		pending := s.latest
		s.latest = make(map[int][]byte)
		s.mu.Unlock()

		for _, frame := range pending {
			if _, err := s.conn.Write(frame); err != nil {
				log.Warn().Err(err).Str("remote", s.conn.RemoteAddr().String()).Msg("publish: subscriber write failed, dropping")
				close(s.done)
				s.conn.Close()
				return
			}
		}
	}
}

// Publisher accepts subscriber connections and fans out published frames
// to all of them. Transport errors to one subscriber never affect
// another, and never block the tick thread that calls Publish (§4.8,
// §4.10: "publisher transport errors cause the current frame to be
// dropped; the loop continues").
type Publisher struct {
	ln          net.Listener
	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
	closed      bool
}

// Listen binds addr (default DefaultAddr) and starts accepting
// subscribers in the background. No handshake is performed, per §6.2.
func Listen(addr string) (*Publisher, error) {
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	p := &Publisher{ln: ln, subscribers: make(map[*subscriber]struct{})}
	go p.acceptLoop()
	return p, nil
}

func (p *Publisher) acceptLoop() {
	for {
		conn, err := p.ln.Accept()
		if err != nil {
			return
		}
		sub := newSubscriber(conn)
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			conn.Close()
			return
		}
		p.subscribers[sub] = struct{}{}
		p.mu.Unlock()
		go sub.writeLoop()
		go p.reap(sub)
	}
}

// reap removes a subscriber from the fan-out set once its write loop has
// given up, so a lagging/dead client never accumulates unbounded state.
func (p *Publisher) reap(sub *subscriber) {
	<-sub.done
	p.mu.Lock()
	delete(p.subscribers, sub)
	p.mu.Unlock()
}

// Publish sends frame to every connected subscriber on the given
// channel, overwriting any still-unsent frame for that channel on slow
// subscribers (drop-old-keep-newest). Non-blocking: the tick thread never
// waits on subscriber I/O.
func (p *Publisher) Publish(channel int, frame []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for sub := range p.subscribers {
		sub.publish(channel, frame)
	}
}

// SubscriberCount reports how many clients are currently connected.
func (p *Publisher) SubscriberCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subscribers)
}

// Close stops accepting new subscribers and closes all existing
// connections. Per §4.6/§5: the publisher is closed only after the tick
// thread has exited, so no frames are sent after Close returns.
func (p *Publisher) Close() error {
	p.mu.Lock()
	p.closed = true
	subs := make([]*subscriber, 0, len(p.subscribers))
	for s := range p.subscribers {
		subs = append(subs, s)
	}
	p.mu.Unlock()

	for _, s := range subs {
		s.conn.Close()
	}
	return p.ln.Close()
}

// Addr returns the bound listener address.
func (p *Publisher) Addr() net.Addr { return p.ln.Addr() }
