package notify

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialblock.io/explorer/internal/core/ports"
)

// TestBus_Notify_DeliversToSubscribers tests fan-out and id/time stamping
func TestBus_Notify_DeliversToSubscribers(t *testing.T) {
	bus := NewBus()
	fixed := time.Date(2024, 11, 28, 12, 0, 0, 0, time.UTC)
	bus.now = func() time.Time { return fixed }

	recorder := NewRecorder(10)
	unsubscribe, err := bus.Subscribe(recorder.Record)
	require.NoError(t, err)
	assert.True(t, bus.HasSubscribers())

	bus.Notify(ports.Notification{Kind: ports.NotificationEnabled, PluginID: "a", Message: "A enabled"})

	latest, ok := recorder.Latest()
	require.True(t, ok)
	assert.Equal(t, "A enabled", latest.Message)
	assert.NotEmpty(t, latest.ID, "Bus should assign an id")
	assert.Equal(t, fixed, latest.At)

	unsubscribe()
	bus.Notify(ports.Notification{Message: "after"})
	assert.Len(t, recorder.History(), 1, "Unsubscribed handler should not receive notifications")
}

// TestBus_Notify_KeepsExplicitFields tests caller-provided id and time
func TestBus_Notify_KeepsExplicitFields(t *testing.T) {
	bus := NewBus()
	var got ports.Notification
	_, err := bus.Subscribe(func(n ports.Notification) { got = n })
	require.NoError(t, err)

	at := time.Unix(100, 0)
	bus.Notify(ports.Notification{ID: "fixed", At: at, Message: "m"})

	assert.Equal(t, "fixed", got.ID)
	assert.Equal(t, at, got.At)
}

// TestRecorder_EvictsOldest tests the bounded history
func TestRecorder_EvictsOldest(t *testing.T) {
	r := NewRecorder(3)
	_, ok := r.Latest()
	assert.False(t, ok)

	for i := 0; i < 5; i++ {
		r.Record(ports.Notification{Message: fmt.Sprint(i)})
	}

	history := r.History()
	require.Len(t, history, 3)
	assert.Equal(t, "2", history[0].Message)
	assert.Equal(t, "4", history[2].Message)
}

// TestLogHandler_WritesStructuredEntry tests the audit log subscriber
func TestLogHandler_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	LogHandler(logger)(ports.Notification{ID: "n1", Kind: ports.NotificationOpened, PluginID: "p", Message: "P opened"})

	out := buf.String()
	assert.Contains(t, out, `"kind":"opened"`)
	assert.Contains(t, out, `"plugin_id":"p"`)
	assert.Contains(t, out, `"message":"P opened"`)
}
