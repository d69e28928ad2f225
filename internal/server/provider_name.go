package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/trivia-admin-service/internal/providers"
)

// normalizeProviderName returns the lower-cased provider name used in metrics
// and logs, falling back to the package of the concrete type.
func normalizeProviderName(raw string, provider providers.ArchiveProvider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider == nil {
		return "provider"
	}
	name := strings.TrimPrefix(fmt.Sprintf("%T", provider), "*")
	if pkg, _, ok := strings.Cut(name, "."); ok {
		name = pkg
	}
	return strings.ToLower(name)
}
