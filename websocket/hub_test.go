package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub) *Client {
	return &Client{
		ID:            uuid.New(),
		Hub:           hub,
		Send:          make(chan WebSocketMessage, 8),
		Subscriptions: make(map[string]bool),
	}
}

func registerClient(t *testing.T, hub *Hub, client *Client) {
	t.Helper()
	hub.register <- client
	require.Eventually(t, func() bool {
		return hub.GetClientCount() > 0
	}, time.Second, 5*time.Millisecond)
}

func TestBroadcastStatusChangeReachesSubscriber(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub)
	client.Subscribe("VR-2026-0000DD01")
	registerClient(t, hub, client)

	hub.BroadcastStatusChange("VR-2026-0000DD01", "VERIFIED")

	select {
	case msg := <-client.Send:
		require.Equal(t, MessageTypeApplicationStatus, msg.Type)
		require.Equal(t, "VR-2026-0000DD01", msg.ApplicationNumber)
		payload, ok := msg.Payload.(map[string]interface{})
		require.True(t, ok)
		require.Equal(t, "VERIFIED", payload["status"])
	case <-time.After(time.Second):
		t.Fatal("expected a status message")
	}
}

func TestBroadcastStatusChangeSkipsOtherSubscriptions(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub)
	client.Subscribe("VR-2026-0000DD02")
	registerClient(t, hub, client)

	hub.BroadcastStatusChange("VR-2026-0000DD99", "APPROVED")

	select {
	case msg := <-client.Send:
		t.Fatalf("unexpected message for %s", msg.ApplicationNumber)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastStatusChangeReachesUnfilteredClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// No subscriptions means the client watches everything.
	client := newTestClient(hub)
	registerClient(t, hub, client)

	hub.BroadcastStatusChange("VR-2026-0000DD03", "DISAPPROVED")

	select {
	case msg := <-client.Send:
		require.Equal(t, "VR-2026-0000DD03", msg.ApplicationNumber)
	case <-time.After(time.Second):
		t.Fatal("expected a status message")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub)
	client.Subscribe("VR-2026-0000DD04")
	client.Subscribe("VR-2026-0000DD05")
	registerClient(t, hub, client)

	client.Unsubscribe("VR-2026-0000DD04")
	hub.BroadcastStatusChange("VR-2026-0000DD04", "VERIFIED")

	select {
	case msg := <-client.Send:
		t.Fatalf("unexpected message for %s", msg.ApplicationNumber)
	case <-time.After(50 * time.Millisecond):
	}

	hub.BroadcastStatusChange("VR-2026-0000DD05", "VERIFIED")
	select {
	case msg := <-client.Send:
		require.Equal(t, "VR-2026-0000DD05", msg.ApplicationNumber)
	case <-time.After(time.Second):
		t.Fatal("expected a status message")
	}
}
