package wsapi_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"halfearth/internal/broadcast"
	"halfearth/internal/state"
	"halfearth/internal/wsapi"
)

func TestHubForwardsPublishedUpdatesToClients(t *testing.T) {
	bus := broadcast.New[state.Update]()
	hub := wsapi.NewHub(bus)
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	time.Sleep(20 * time.Millisecond)
	bus.Publish(state.Update{Year: 2040})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"Year\":2040")
}
