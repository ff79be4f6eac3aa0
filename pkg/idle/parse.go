package idle

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseMillis parses a plain millisecond count such as xprintidle prints.
func parseMillis(output []byte) (time.Duration, error) {
	ms, err := strconv.ParseUint(strings.TrimSpace(string(output)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse idle milliseconds: %w", err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// parseHIDIdleTime parses the HIDIdleTime from ioreg output.
func parseHIDIdleTime(output []byte) (time.Duration, error) {
	for _, line := range bytes.Split(output, []byte("\n")) {
		lineStr := string(bytes.TrimSpace(line))
		if !strings.Contains(lineStr, "HIDIdleTime") {
			continue
		}

		// Format: "HIDIdleTime" = 123456789
		parts := strings.Split(lineStr, "=")
		if len(parts) != 2 {
			continue
		}

		valueStr := strings.TrimSpace(strings.Trim(strings.TrimSpace(parts[1]), "\""))
		value, err := strconv.ParseInt(valueStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse idle time value: %w", err)
		}
		return time.Duration(value), nil
	}

	return 0, fmt.Errorf("HIDIdleTime not found in ioreg output")
}
