//go:build linux

package notify

import (
	"fmt"
	"os/exec"
)

// linuxNotifier sends notifications through notify-send.
type linuxNotifier struct{}

func newPlatformNotifier() Notifier {
	return linuxNotifier{}
}

func (linuxNotifier) IsSupported() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

func (linuxNotifier) Send(title, message string) error {
	cmd := exec.Command("notify-send", "--app-name=todobot", title, message)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("notify-send: %w", err)
	}
	return nil
}
