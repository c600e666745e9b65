//go:build !linux && !darwin

package notify

// Unsupported platforms fall back to the no-op notifier.
func newPlatformNotifier() Notifier {
	return nil
}
