package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/zaqqye/ppdb_backend_v1/internal/middleware"
	"github.com/zaqqye/ppdb_backend_v1/internal/models"
)

func newEventsServer(t *testing.T, hub *EventHub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/admin/events", EventsHandler("secret", hub))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestEventsHandlerRejectsBadToken(t *testing.T) {
	hub := NewEventHub()
	go hub.Run()
	srv := newEventsServer(t, hub)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/admin/events"
	if _, resp, err := websocket.DefaultDialer.Dial(wsURL, nil); err == nil {
		t.Error("Dial without token must fail")
	} else if resp != nil && resp.StatusCode != 401 {
		t.Errorf("Expected 401, got %d", resp.StatusCode)
	}

	if _, resp, err := websocket.DefaultDialer.Dial(wsURL+"?token=garbage", nil); err == nil {
		t.Error("Dial with a garbage token must fail")
	} else if resp != nil && resp.StatusCode != 401 {
		t.Errorf("Expected 401, got %d", resp.StatusCode)
	}
}

func TestBroadcastReachesConnectedDashboard(t *testing.T) {
	hub := NewEventHub()
	go hub.Run()
	srv := newEventsServer(t, hub)

	token, err := middleware.IssueToken("secret", "admin", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/admin/events?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	// Give the server side a moment to register the client.
	time.Sleep(200 * time.Millisecond)

	hub.Broadcast(Event{
		Type: EventRegistered,
		Student: EventStudent{
			ID:                 "id-1",
			RegistrationNumber: "REG-2024-1234",
			FullName:           "Ahmad Fauzi",
			Email:              "a@x.com",
			Status:             models.StatusPending,
		},
		Stats: models.Stats{Total: 1, Pending: 1},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}

	var evt Event
	if err := json.Unmarshal(data, &evt); err != nil {
		t.Fatalf("Failed to decode event %q: %v", data, err)
	}
	if evt.Type != EventRegistered {
		t.Errorf("Expected type %q, got %q", EventRegistered, evt.Type)
	}
	if evt.Student.RegistrationNumber != "REG-2024-1234" {
		t.Errorf("Unexpected student payload: %+v", evt.Student)
	}
	if evt.Stats.Total != 1 {
		t.Errorf("Expected stats total 1, got %d", evt.Stats.Total)
	}
	if evt.At.IsZero() {
		t.Error("Broadcast must stamp the event time")
	}
}
