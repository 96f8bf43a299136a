package notify

import (
	"sync"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"socialblock.io/explorer/internal/core/ports"
)

// TopicNotification is the event bus topic carrying ports.Notification values
const TopicNotification = "plugin:notification"

// Bus is a ports.Notifier that fans notifications out over an event bus
type Bus struct {
	bus evbus.Bus
	now func() time.Time
}

// NewBus creates a notification bus
func NewBus() *Bus {
	return &Bus{
		bus: evbus.New(),
		now: time.Now,
	}
}

// Notify implements ports.Notifier. Missing ids and timestamps are filled in.
func (b *Bus) Notify(n ports.Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.At.IsZero() {
		n.At = b.now()
	}
	b.bus.Publish(TopicNotification, n)
}

// Subscribe registers handler for every notification and returns a function
// that removes it again
func (b *Bus) Subscribe(handler func(ports.Notification)) (func(), error) {
	if err := b.bus.Subscribe(TopicNotification, handler); err != nil {
		return nil, err
	}
	return func() {
		_ = b.bus.Unsubscribe(TopicNotification, handler)
	}, nil
}

// HasSubscribers reports whether anything listens on the notification topic
func (b *Bus) HasSubscribers() bool {
	return b.bus.HasCallback(TopicNotification)
}

// Recorder keeps the most recent notifications for display
type Recorder struct {
	mu      sync.RWMutex
	limit   int
	history []ports.Notification
}

// NewRecorder creates a recorder holding at most limit notifications
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 1
	}
	return &Recorder{
		limit:   limit,
		history: make([]ports.Notification, 0, limit),
	}
}

// Record stores n, evicting the oldest entry when full
func (r *Recorder) Record(n ports.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.history) == r.limit {
		copy(r.history, r.history[1:])
		r.history = r.history[:r.limit-1]
	}
	r.history = append(r.history, n)
}

// Latest returns the newest notification
func (r *Recorder) Latest() (ports.Notification, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.history) == 0 {
		return ports.Notification{}, false
	}
	return r.history[len(r.history)-1], true
}

// History returns a copy of the stored notifications, oldest first
func (r *Recorder) History() []ports.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ports.Notification, len(r.history))
	copy(out, r.history)
	return out
}

// LogHandler returns a subscriber writing each notification to logger
func LogHandler(logger zerolog.Logger) func(ports.Notification) {
	return func(n ports.Notification) {
		logger.Info().
			Str("notification_id", n.ID).
			Str("kind", string(n.Kind)).
			Str("plugin_id", n.PluginID).
			Time("at", n.At).
			Msg(n.Message)
	}
}
