package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vilamar/restaurante-app/models"
)

// Event types pushed to connected clients.
const (
	EventTableCreated        = "table_created"
	EventTableUpdated        = "table_updated"
	EventTableStatusChanged  = "table_status_changed"
	EventNewOrder            = "newOrder"
	EventOrderStatusChanged  = "order_status_changed"
	EventOrderReady          = "orderReady"
	EventReservationFinished = "reservation_finalized"
	EventLowStock            = "low_stock"
)

// Well-known rooms.
const (
	RoomKitchen   = "kitchen"
	RoomReception = "reception"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type client struct {
	role  string
	rooms map[string]bool
}

// Hub holds every connected client (admin, reception, kitchen) and the
// rooms it subscribed to. Delivery is best effort: REST remains the
// source of truth, a failed write just drops the client.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]*client),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = &client{role: role, rooms: make(map[string]bool)}
}

// UnregisterClient removes a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// JoinRoom subscribes a connection to a named room.
func JoinRoom(conn *websocket.Conn, room string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	if cl, ok := hub.clients[conn]; ok {
		cl.rooms[room] = true
	}
}

// BroadcastTableCreated notifies every client of a new table.
func BroadcastTableCreated(table models.Table) {
	broadcast("", Message{Event: EventTableCreated, Data: table})
}

// BroadcastTableStatusChanged notifies every client of a table status change.
func BroadcastTableStatusChanged(table models.Table) {
	broadcast("", Message{Event: EventTableStatusChanged, Data: table})
}

// BroadcastTableUpdated notifies every client of any other table mutation.
func BroadcastTableUpdated(table models.Table) {
	broadcast("", Message{Event: EventTableUpdated, Data: table})
}

// BroadcastNewOrder notifies the kitchen room of a freshly created order.
func BroadcastNewOrder(order models.Order) {
	broadcast(RoomKitchen, Message{Event: EventNewOrder, Data: order})
}

// BroadcastOrderStatusChanged notifies every client of an order transition.
func BroadcastOrderStatusChanged(order models.Order) {
	broadcast("", Message{Event: EventOrderStatusChanged, Data: order})
}

// BroadcastOrderReady notifies the reception room that an order can be served.
func BroadcastOrderReady(order models.Order) {
	broadcast(RoomReception, Message{Event: EventOrderReady, Data: order})
}

// BroadcastReservationFinalized notifies reception that a reservation expired.
func BroadcastReservationFinalized(reservation models.Reservation) {
	broadcast(RoomReception, Message{Event: EventReservationFinished, Data: reservation})
}

// BroadcastLowStock notifies the kitchen that an ingredient dropped below
// its minimum.
func BroadcastLowStock(ingredient models.Ingredient) {
	broadcast(RoomKitchen, Message{Event: EventLowStock, Data: ingredient})
}

// BroadcastMessage sends an arbitrary message to everyone.
func BroadcastMessage(msg Message) {
	broadcast("", msg)
}

// broadcast sends msg to every client, or only to the subscribers of room
// when room is non-empty. Clients whose write fails are dropped.
func broadcast(room string, msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, cl := range hub.clients {
		if room != "" && !cl.rooms[room] {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(hub.clients, conn)
		}
	}
}
