package sse

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/painmapapp/painmap-server/internal/store"
)

func testManager(t *testing.T) (*Manager, context.CancelFunc) {
	t.Helper()
	m := NewManager(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)
	return m, cancel
}

func TestManager_DeliversStoreChangeEvents(t *testing.T) {
	m, cancel := testManager(t)
	defer cancel()

	client, err := m.Connect()
	require.NoError(t, err)
	defer m.Disconnect(client.ID)

	m.Emit(store.ChangeEvent{Type: store.EventTriedMarked, PinID: "bakery-1"})

	select {
	case event := <-client.EventChan:
		assert.Equal(t, store.EventTriedMarked, event.Type)
		assert.Equal(t, "bakery-1", event.PinID)
		assert.False(t, event.Timestamp.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestManager_ConnectDisconnect(t *testing.T) {
	m, cancel := testManager(t)
	defer cancel()

	client, err := m.Connect()
	require.NoError(t, err)
	assert.Equal(t, 1, m.ClientCount())

	m.Disconnect(client.ID)
	assert.Equal(t, 0, m.ClientCount())

	// Disconnecting twice is safe.
	m.Disconnect(client.ID)
}

func TestManager_EmitAfterShutdownIsDropped(t *testing.T) {
	m, cancel := testManager(t)
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	require.NoError(t, m.Shutdown(ctx))

	// Must not panic or block.
	m.Emit(store.ChangeEvent{Type: store.EventTriedMarked, PinID: "bakery-1"})
}
