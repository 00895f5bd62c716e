// Package keys provides partition key derivation for constraint records.
package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// FingerprintPK computes a hash-distributed partition key for a device
// fingerprint constraint. The fingerprint is unique per user, so the
// user id scopes the hash. Hash distribution keeps constraint records
// spread across partitions, eliminating hot partition risk.
func FingerprintPK(userID, deviceIdentifier string) string {
	return constraintPK("device", userID, "identifier", deviceIdentifier)
}

// constraintPK computes a 128-bit hash key over the constraint scope.
func constraintPK(entityType, scope, field, value string) string {
	data := fmt.Sprintf("%s#%s#%s#%s", entityType, scope, field, value)
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:16])
}
