package realtime

import (
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

// Concurrent senders race a buffer-overflow Close on a tiny buffer. Any
// iteration panicking on the send channel fails the whole test.
func TestSendConcurrentWithOverflowClose(t *testing.T) {
	for i := 0; i < 50; i++ {
		server, _ := wsPair(t)
		conn := NewConnection("u-1", server, 1)
		conn.Start()

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					_ = conn.Send([]byte("x"))
				}
			}()
		}
		wg.Wait()
		conn.Close(websocket.CloseNormalClosure, "done")
	}
}

func TestSendAfterCloseReturnsError(t *testing.T) {
	server, _ := wsPair(t)
	conn := NewConnection("u-1", server, 8)
	conn.Start()

	conn.Close(websocket.CloseNormalClosure, "done")

	assert.Error(t, conn.Send([]byte("x")))
	// Close is idempotent.
	conn.Close(websocket.CloseNormalClosure, "again")
	assert.Error(t, conn.Send([]byte("y")))
}
