package ports

import "time"

// PluginView is a mountable plugin body. The panel host treats it as opaque:
// it only asks for a title and a rendering of the given size.
type PluginView interface {
	// ID returns the id of the descriptor this view belongs to
	ID() string

	// Title returns the heading shown above the view
	Title() string

	// Render draws the view into a width x height text block
	Render(width, height int) string
}

// ViewResolver maps a plugin id to its mountable view.
// Unresolved ids are reported with ok == false, never a panic.
type ViewResolver interface {
	Resolve(id string) (view PluginView, ok bool)
}

// ViewResolverFunc adapts a function to ViewResolver
type ViewResolverFunc func(id string) (PluginView, bool)

// Resolve implements ViewResolver
func (f ViewResolverFunc) Resolve(id string) (PluginView, bool) {
	return f(id)
}

// NotificationKind classifies a state change for display
type NotificationKind string

const (
	NotificationEnabled     NotificationKind = "enabled"
	NotificationDisabled    NotificationKind = "disabled"
	NotificationOpened      NotificationKind = "opened"
	NotificationClosed      NotificationKind = "closed"
	NotificationReordered   NotificationKind = "reordered"
	NotificationSettings    NotificationKind = "settings"
	NotificationUnavailable NotificationKind = "unavailable"
	NotificationError       NotificationKind = "error"
)

// Notification is a human-readable description of one state change
type Notification struct {
	ID       string           `json:"id"`
	Kind     NotificationKind `json:"kind"`
	PluginID string           `json:"plugin_id,omitempty"`
	Message  string           `json:"message"`
	At       time.Time        `json:"at"`
}

// Notifier receives notifications. Delivery is fire-and-forget.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(n Notification)

// Notify implements Notifier
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// NopNotifier discards notifications
type NopNotifier struct{}

// Notify implements Notifier
func (NopNotifier) Notify(Notification) {}
