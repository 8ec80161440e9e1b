package publish

import (
	"bufio"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"net"
)

func TestPublishFanOutToSubscriber(t *testing.T) {
	p, err := Listen("127.0.0.1:0")
	require.NoError(t, err)
	defer p.Close()

	conn, err := net.Dial("tcp", p.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	// Give the accept loop a moment to register the subscriber.
	require.Eventually(t, func() bool { return p.SubscriberCount() == 1 }, time.Second, time.Millisecond)

	p.Publish(0, []byte("hello"))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	r := bufio.NewReader(conn)
	buf := make([]byte, 5)
	_, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf))
}

func TestPublishDropsOldKeepsNewestPerChannel(t *testing.T) {
	s := newSubscriber(nil)
	s.publish(0, []byte("first"))
	s.publish(0, []byte("second"))
	assert.Equal(t, []byte("second"), s.latest[0])
}

func TestCloseStopsAcceptingNewSubscribers(t *testing.T) {
	p, err := Listen("127.0.0.1:0")
	require.NoError(t, err)
	p.Close()
	_, err = net.Dial("tcp", p.Addr().String())
	assert.Error(t, err)
}
