// Package envutil provides strict parsing for environment-sourced scalars.
//
// Configuration loaders fail fast on malformed values, and the error always
// names the offending variable so startup failures are diagnosable from the
// message alone.
package envutil

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBool interprets a human-friendly boolean string.
//
// Accepted true values: true, t, 1, yes, y, on.
// Accepted false values: false, f, 0, no, n, off.
// Matching is case-insensitive.
func ParseBool(name, value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "t", "1", "yes", "y", "on":
		return true, nil
	case "false", "f", "0", "no", "n", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value for %s: %q", name, value)
}

// ParseInt parses a base-10 integer.
func ParseInt(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", name, value)
	}
	return n, nil
}
