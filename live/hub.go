package live

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/pdvapp/restaurant-pos/models"
	"github.com/pdvapp/restaurant-pos/utils"
)

// Event types pushed to connected clients.
const (
	EventOrderCreated    = "order_created"
	EventOrderUpdate     = "order_update"
	EventSessionUpdate   = "table_session_update"
	EventDeliveryUpdate  = "delivery_update"
	EventStaffNotif      = "staff_notification"
	EventNewOrderAlert   = "new_order_alert"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected client (kitchen display, cashier, driver app)
// and fans events out to them.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient removes and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{Event: EventOrderCreated, Data: order})
}

func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Data: order})
}

func BroadcastSessionUpdate(session models.TableSession) {
	broadcast(Message{Event: EventSessionUpdate, Data: session})
}

func BroadcastDeliveryUpdate(order models.Order) {
	broadcast(Message{Event: EventDeliveryUpdate, Data: order})
}

func BroadcastStaffNotification(message string) {
	broadcast(Message{Event: EventStaffNotif, Data: message})
}

// BroadcastNewOrderAlert tells clients to play the new-order sound for the
// given order id. The notifier guarantees at most one alert per id.
func BroadcastNewOrderAlert(orderID uint) {
	broadcast(Message{Event: EventNewOrderAlert, Data: map[string]uint{"order_id": orderID}})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for conn := range hub.clients {
		if err := conn.WriteJSON(msg); err != nil {
			if utils.ErrorLogger != nil {
				utils.ErrorLogger.Printf("live: dropping client: %v", err)
			}
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}
