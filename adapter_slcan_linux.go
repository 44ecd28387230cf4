package udsscan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// setLatencyTimer lowers the usb-serial latency timer so short responses are
// not held back by the 16ms FTDI default.
func setLatencyTimer(port string, latency int) error {
	device := filepath.Base(port)
	if !strings.HasPrefix(device, "ttyUSB") {
		return nil
	}
	latencyPath := fmt.Sprintf("/sys/bus/usb-serial/devices/%s/latency_timer", device)
	if err := os.WriteFile(latencyPath, []byte(fmt.Sprintf("%d", latency)), 0644); err != nil {
		return fmt.Errorf("failed to set latency timer: %w", err)
	}
	return nil
}
