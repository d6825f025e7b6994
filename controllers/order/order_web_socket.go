// order_websocket.go
package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sunutees/storefront-api/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsMu guards wsClients and serializes writes on each connection; handlers
// register from their own goroutines while checkout and webhook handlers
// broadcast concurrently.
var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

func registerClient(conn *websocket.Conn) {
	wsMu.Lock()
	wsClients[conn] = true
	wsMu.Unlock()
}

func unregisterClient(conn *websocket.Conn) {
	wsMu.Lock()
	delete(wsClients, conn)
	wsMu.Unlock()
}

func connectedClients() int {
	wsMu.Lock()
	defer wsMu.Unlock()
	return len(wsClients)
}

// OrderWebSocketHandler streams order events to back-office clients.
func OrderWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	registerClient(conn)

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			unregisterClient(conn)
			break
		}
	}
}

type orderEvent struct {
	Event string       `json:"event"` // "order.created", "order.paid", "order.payment_failed"
	Order models.Order `json:"order"`
}

// BroadcastOrderEvent pushes an order change to every connected client.
func BroadcastOrderEvent(event string, order models.Order) {
	data, err := json.Marshal(orderEvent{Event: event, Order: order})
	if err != nil {
		return
	}
	wsMu.Lock()
	defer wsMu.Unlock()
	for client := range wsClients {
		client.WriteMessage(websocket.TextMessage, data)
	}
}
