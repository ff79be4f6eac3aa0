package config

import (
	"fmt"
	"os"
)

// Options holds process-level switches that are not persisted in the config file.
type Options struct {
	Path     string
	Quiet    bool
	Headless bool
	Debug    bool
}

// LoadOptions reads the runtime switches from the environment.
func LoadOptions() (Options, error) {
	opts := Options{Path: DefaultPath()}

	for _, v := range []struct {
		name   string
		target *bool
	}{
		{"IDLE_REMINDER_QUIET", &opts.Quiet},
		{"IDLE_REMINDER_HEADLESS", &opts.Headless},
		{"IDLE_REMINDER_DEBUG", &opts.Debug},
	} {
		raw := os.Getenv(v.name)
		if raw == "" {
			continue
		}
		b, err := parseBool(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid %s value: %w", v.name, err)
		}
		*v.target = b
	}

	return opts, nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%q (use true/false)", s)
	}
}
