package handlers

import (
	"crypto/sha256"
	"encoding/hex"
)

// scenarioNamespace derives a stable cache namespace from the raw
// scenario document, so identical scenarios share route cache entries
// and different ones never collide.
func scenarioNamespace(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}
