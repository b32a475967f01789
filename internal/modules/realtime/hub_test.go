package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"equiptrack/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticLister []domain.EquipmentRecord

func (l staticLister) ListAvailable(context.Context) ([]domain.EquipmentRecord, error) {
	return l, nil
}

type received struct {
	Type    string                   `json:"type"`
	Payload []domain.EquipmentRecord `json:"payload"`
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/availability"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) received {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev received
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestHub_InitialSnapshotAndBroadcast(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(nil)
	initial := staticLister{{ID: 1, EquipmentName: "Saw", Status: domain.StatusCheckedIn, CheckedInAt: "2024-01-01"}}

	r := gin.New()
	NewHandler(hub, initial).RegisterRoutes(r.Group("/api/v1"))
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dial(t, srv)

	ev := readEvent(t, conn)
	assert.Equal(t, EventAvailability, ev.Type)
	require.Len(t, ev.Payload, 1)
	assert.Equal(t, "Saw", ev.Payload[0].EquipmentName)

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.PublishAvailable(nil)
	ev = readEvent(t, conn)
	assert.Equal(t, EventAvailability, ev.Type)
	assert.NotNil(t, ev.Payload)
	assert.Empty(t, ev.Payload)
}

func TestHub_UnregisterOnClose(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(nil)
	r := gin.New()
	NewHandler(hub, staticLister{}).RegisterRoutes(r.Group("/api/v1"))
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dial(t, srv)
	readEvent(t, conn)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()

	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:3000"})

	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	assert.True(t, check(req("")))
	assert.True(t, check(req("http://localhost:3000")))
	assert.False(t, check(req("http://evil.example")))
	assert.True(t, originChecker([]string{"*"})(req("http://evil.example")))
}

func TestEncodeAvailability(t *testing.T) {
	data, err := encodeAvailability(nil)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `"availability"`, string(raw["type"]))
	assert.JSONEq(t, `[]`, string(raw["payload"]))
}
