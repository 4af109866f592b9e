package env

import (
	"os"
	"strings"
)

// First returns the first of keys whose value is non-blank once trimmed.
// Platform variables (DYNO, HOSTNAME) are read through here; everything the
// service is configured with goes through pkg/config instead.
func First(keys ...string) string {
	for _, key := range keys {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return val
		}
	}
	return ""
}
