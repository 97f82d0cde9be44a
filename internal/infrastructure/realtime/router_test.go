package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wsPair upgrades one websocket over an httptest server and returns both ends.
func wsPair(t *testing.T) (server *websocket.Conn, client *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	serverSide := make(chan *websocket.Conn, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		serverSide <- ws
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	select {
	case server = <-serverSide:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for server-side socket")
	}
	return server, client
}

func readText(t *testing.T, ws *websocket.Conn) string {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := ws.ReadMessage()
	require.NoError(t, err)
	return string(payload)
}

func TestBroadcastReachesRoomMembersExceptSender(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	aliceServer, aliceClient := wsPair(t)
	bobServer, bobClient := wsPair(t)

	alice := NewConnection("alice", aliceServer, 8)
	bob := NewConnection("bob", bobServer, 8)
	router.Attach(alice)
	router.Attach(bob)
	router.Join("conv-1", alice)
	router.Join("conv-1", bob)

	delivered := router.Broadcast("conv-1", []byte(`{"type":"message"}`), "alice")

	assert.Equal(t, 1, delivered)
	assert.Equal(t, `{"type":"message"}`, readText(t, bobClient))

	// Alice was excluded: her socket stays silent.
	_ = aliceClient.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := aliceClient.ReadMessage()
	assert.Error(t, err)
}

func TestBroadcastToEmptyRoom(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	assert.Equal(t, 0, router.Broadcast("conv-none", []byte("x"), ""))
}

func TestNotifyUserDeliversOutsideRooms(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	server, client := wsPair(t)
	conn := NewConnection("alice", server, 8)
	router.Attach(conn)

	ok := router.NotifyUser("alice", []byte(`{"type":"unread"}`))

	assert.True(t, ok)
	assert.Equal(t, `{"type":"unread"}`, readText(t, client))
	assert.False(t, router.NotifyUser("nobody", []byte("x")))
}

func TestAttachReplacesExistingSession(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	firstServer, firstClient := wsPair(t)
	secondServer, secondClient := wsPair(t)

	first := NewConnection("alice", firstServer, 8)
	second := NewConnection("alice", secondServer, 8)
	router.Attach(first)
	router.Attach(second)

	// The first socket receives a close frame.
	_ = firstClient.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := firstClient.ReadMessage()
	assert.Error(t, err)

	ok := router.NotifyUser("alice", []byte("hello"))
	assert.True(t, ok)
	assert.Equal(t, "hello", readText(t, secondClient))
}

func TestDetachStopsDelivery(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	server, _ := wsPair(t)
	conn := NewConnection("alice", server, 8)
	router.Attach(conn)
	router.Join("conv-1", conn)

	assert.True(t, router.IsOnline("alice"))

	router.Detach(conn)

	assert.False(t, router.IsOnline("alice"))
	assert.Equal(t, 0, router.Broadcast("conv-1", []byte("x"), ""))
	assert.False(t, router.NotifyUser("alice", []byte("x")))
}

func TestLeaveRemovesFromRoomOnly(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	server, client := wsPair(t)
	conn := NewConnection("alice", server, 8)
	router.Attach(conn)
	router.Join("conv-1", conn)
	router.Leave("conv-1", conn)

	assert.Equal(t, 0, router.Broadcast("conv-1", []byte("x"), ""))

	// Direct notification still works after leaving the room.
	assert.True(t, router.NotifyUser("alice", []byte("direct")))
	assert.Equal(t, "direct", readText(t, client))
}

func TestJoinIgnoresUnattachedConnection(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	server, _ := wsPair(t)
	conn := NewConnection("ghost", server, 8)

	router.Join("conv-1", conn)

	assert.Equal(t, 0, router.Broadcast("conv-1", []byte("x"), ""))
}
