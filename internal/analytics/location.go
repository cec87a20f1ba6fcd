package analytics

import (
	"strings"

	"github.com/Kosench/shortlink/internal/model"
)

var privatePrefixes = []string{"10.", "192.168.", "172.16."}

// ClassifyLocation buckets an address by its textual shape only.
// No DNS or geo database is consulted.
func ClassifyLocation(ip string) model.Location {
	if ip == "" {
		return model.LocationUnknown
	}
	if ip == "::1" || ip == "127.0.0.1" {
		return model.LocationLocal
	}
	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(ip, prefix) {
			return model.LocationPrivate
		}
	}
	return model.LocationUnknown
}
