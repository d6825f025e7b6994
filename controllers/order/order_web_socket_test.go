package orderControllers

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunutees/storefront-api/models"
)

func newWSServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/orders/ws", OrderWebSocketHandler)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/orders/ws"
}

func TestBroadcastOrderEvent_DeliversToConnectedClient(t *testing.T) {
	url := newWSServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return connectedClients() >= 1
	}, 2*time.Second, 10*time.Millisecond, "handler should register the connection")

	BroadcastOrderEvent("order.created", models.Order{ID: 7, OrderRef: "20250908130500-test"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"order.created"`)
	assert.Contains(t, string(data), "20250908130500-test")
}

func TestBroadcastOrderEvent_ConcurrentWithClientChurn(t *testing.T) {
	url := newWSServer(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			conn, _, err := websocket.DefaultDialer.Dial(url, nil)
			if err != nil {
				return
			}
			conn.Close()
		}()
		go func(n int) {
			defer wg.Done()
			BroadcastOrderEvent("order.paid", models.Order{ID: uint(n)})
		}(i)
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		return connectedClients() == 0
	}, 2*time.Second, 10*time.Millisecond, "closed connections should be unregistered")
}
