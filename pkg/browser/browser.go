// Package browser opens URLs in the operator's default browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var browserLog = logger.New("browser")

// Open launches the platform opener for url without waiting for it.
func Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	browserLog.Printf("Opening %s", url)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	// Don't leave a zombie behind.
	go func() { _ = cmd.Wait() }()
	return nil
}
