package instance

import (
	"os"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/env"
)

const fallbackID = "api-0"

// GetID identifies this process in logs. INSTANCE_ID wins, then the
// platform's dyno name, then the hostname.
func GetID() string {
	if id := env.First("INSTANCE_ID", "DYNO"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return fallbackID
}
