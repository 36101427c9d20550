package sse

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizdash/quizdash-go/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name     string
		event    string
		data     string
		expected string
	}{
		{
			name:     "single line",
			event:    "player_joined",
			data:     `{"kind":"player_joined"}`,
			expected: "event: player_joined\ndata: {\"kind\":\"player_joined\"}\n\n",
		},
		{
			name:     "empty data",
			event:    "ping",
			data:     "",
			expected: "event: ping\ndata: \n\n",
		},
		{
			name:     "multi line data",
			event:    "update",
			data:     "line1\nline2",
			expected: "event: update\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatSSEMessage(tt.event, tt.data)))
		})
	}
}

func TestHubRegisterAndBroadcast(t *testing.T) {
	hub := NewHub("ABC123", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "p1")
	hub.Register(client)

	// Wait for registration to land on the hub goroutine
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastEvent("test", "hello")

	select {
	case msg := <-client.send:
		assert.True(t, strings.Contains(string(msg), "event: test"))
		assert.True(t, strings.Contains(string(msg), "data: hello"))
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub("ABC123", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "p1")
	hub.Register(client)
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.Unregister(client)
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)

	// Send channel is closed after unregister
	_, open := <-client.send
	assert.False(t, open)
}

func TestHubManagerGetOrCreate(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	hub1 := manager.GetOrCreateHub("ABC123")
	hub2 := manager.GetOrCreateHub("ABC123")
	assert.Same(t, hub1, hub2)

	other := manager.GetOrCreateHub("XYZ789")
	assert.NotSame(t, hub1, other)

	manager.RemoveHub("ABC123")
	manager.RemoveHub("XYZ789")
}

func TestHubManagerGetHubMissing(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	assert.Nil(t, manager.GetHub("NOPE"))
}

func TestHubManagerRemoveHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	manager.GetOrCreateHub("ABC123")

	manager.RemoveHub("ABC123")
	assert.Nil(t, manager.GetHub("ABC123"))
}
