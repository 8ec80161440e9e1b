package show

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunnelcore/lib/control"
	"tunnelcore/lib/publish"
	"tunnelcore/lib/wire"
)

// readFrame reads one wire message. The protocol has no length prefix;
// msgpack's own array framing tells the decoder where the message ends,
// so a single Read of a generously sized buffer is enough for these
// small test frames.
func readFrame(t *testing.T, conn net.Conn) wire.Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	f, err := wire.Unmarshal(buf[:n])
	require.NoError(t, err)
	return f
}

func TestFirstPublishedFrameIsNumberedZero(t *testing.T) {
	pub, err := publish.Listen(":0")
	require.NoError(t, err)
	defer pub.Close()

	s := New(1, control.NewTable(), pub)

	conn, err := net.Dial("tcp", pub.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	// Give the accept loop a moment to register the subscriber before the
	// first tick publishes.
	deadline := time.Now().Add(time.Second)
	for pub.SubscriberCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, 1, pub.SubscriberCount())

	now := time.Now()
	s.tick(now, 1)
	first := readFrame(t, conn)
	assert.Equal(t, uint32(0), first.FrameNumber)
	assert.Empty(t, first.Arcs)
	assert.Empty(t, first.Lines)

	s.tick(now.Add(s.tickInterval), 1)
	second := readFrame(t, conn)
	assert.Equal(t, uint32(1), second.FrameNumber)
}
