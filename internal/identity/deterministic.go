package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// SystemThemeUUID identifies the seeded system default theme.
func SystemThemeUUID() uuid.UUID {
	return UUID("builder:theme:system-default")
}

// BlockDefinitionUUID identifies a seeded block type definition.
func BlockDefinitionUUID(blockType string) uuid.UUID {
	return UUID("builder:block_definition:" + strings.ToLower(strings.TrimSpace(blockType)))
}
