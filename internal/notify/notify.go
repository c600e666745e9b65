// Package notify provides cross-platform desktop notification support, used
// to announce the nightly task rollover. It shells out to native mechanisms
// on macOS (osascript) and Linux (notify-send).
package notify

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// Send sends a notification with the given title and message.
	Send(title, message string) error

	// IsSupported returns true if notifications work on this platform.
	IsSupported() bool
}

type noopNotifier struct{}

func (noopNotifier) Send(title, message string) error { return nil }
func (noopNotifier) IsSupported() bool                { return false }

// New creates a platform-specific notifier, or a no-op one when the platform
// has no supported mechanism.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return noopNotifier{}
	}
	return n
}
