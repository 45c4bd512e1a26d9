package instance

import (
	"os"
	"strings"
)

// EnvInstanceID overrides the identifier reported in logs.
const EnvInstanceID = "STOCKDESK_INSTANCE_ID"

// GetID returns the gateway instance identifier: the override, else the host name, else "local".
func GetID() string {
	if id := strings.TrimSpace(os.Getenv(EnvInstanceID)); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
