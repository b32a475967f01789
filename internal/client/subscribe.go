package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"equiptrack/internal/domain"
)

type availabilityEvent struct {
	Type    string                   `json:"type"`
	Payload []domain.EquipmentRecord `json:"payload"`
}

// SubscribeAvailability calls fn with every available list the server pushes,
// starting with the current one. It returns when ctx is done or the
// connection drops.
func (c *Client) SubscribeAvailability(ctx context.Context, fn func([]domain.EquipmentRecord)) error {
	u, err := url.Parse(c.BaseURL + "/api/v1/ws/availability")
	if err != nil {
		return err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	header := http.Header{}
	if c.Token != "" {
		header.Set("Authorization", "Bearer "+c.Token)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), header)
	if err != nil {
		return err
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			conn.Close()
		case <-done:
		}
	}()

	for {
		var ev availabilityEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
				strings.Contains(err.Error(), "use of closed network connection") {
				return nil
			}
			return err
		}
		if ev.Type == "availability" {
			fn(ev.Payload)
		}
	}
}
