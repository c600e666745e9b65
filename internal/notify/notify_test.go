package notify

import "testing"

func TestNew_NeverNil(t *testing.T) {
	n := New()
	if n == nil {
		t.Fatal("New() returned nil")
	}
	// Whatever the platform, sending through the returned notifier must not
	// panic; a no-op notifier simply succeeds.
	if !n.IsSupported() {
		if err := n.Send("title", "message"); err != nil {
			t.Errorf("noop Send() error = %v", err)
		}
	}
}

func TestNoopNotifier(t *testing.T) {
	var n Notifier = noopNotifier{}
	if n.IsSupported() {
		t.Error("noop IsSupported() = true")
	}
	if err := n.Send("a", "b"); err != nil {
		t.Errorf("noop Send() error = %v", err)
	}
}
