package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilamar/restaurante-app/models"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialTestClient connects a websocket client whose server side is
// registered in the hub, optionally subscribed to a room.
func dialTestClient(t *testing.T, room string) *websocket.Conn {
	t.Helper()
	ready := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		RegisterClient(conn, "ADMIN")
		if room != "" {
			JoinRoom(conn, room)
		}
		close(ready)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	select {
	case <-ready:
	case <-time.After(2 * time.Second):
		t.Fatal("client was never registered")
	}
	return client
}

func readEvent(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestBroadcastNewOrderReachesKitchenRoom(t *testing.T) {
	kitchen := dialTestClient(t, RoomKitchen)

	BroadcastNewOrder(models.Order{OrderNumber: "PED0001"})

	msg := readEvent(t, kitchen)
	assert.Equal(t, EventNewOrder, msg.Event)

	data := msg.Data.(map[string]interface{})
	assert.Equal(t, "PED0001", data["order_number"])
}

func TestRoomBroadcastSkipsOtherRooms(t *testing.T) {
	reception := dialTestClient(t, RoomReception)

	// Evento de cozinha não chega na recepção; o próximo evento global sim.
	BroadcastNewOrder(models.Order{OrderNumber: "PED0002"})
	BroadcastTableStatusChanged(models.Table{Number: 4, Status: models.TableOcupada})

	msg := readEvent(t, reception)
	assert.Equal(t, EventTableStatusChanged, msg.Event)
}

func TestBroadcastWithoutRoomReachesEveryone(t *testing.T) {
	plain := dialTestClient(t, "")

	BroadcastTableCreated(models.Table{Number: 9})

	msg := readEvent(t, plain)
	assert.Equal(t, EventTableCreated, msg.Event)
	data := msg.Data.(map[string]interface{})
	assert.Equal(t, float64(9), data["number"])
}
