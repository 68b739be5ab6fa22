package services

import (
	"strings"

	"github.com/google/uuid"
)

// NewShareToken returns an opaque lowercase token for unauthenticated trip
// reads. Tokens are replaceable at any time; nothing else references them.
func NewShareToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
