package domain

import (
	"crypto/sha1" //nolint:gosec // surrogate ids need stability, not collision resistance
	"crypto/sha256"
	"encoding/hex"
)

// SurrogatePrefixLen is how many runes of text seed a surrogate id.
const SurrogatePrefixLen = 30

// HashAuthor returns the hex SHA-256 of handle, or "" when handle is empty.
// The raw handle is never stored anywhere.
func HashAuthor(handle string) string {
	if handle == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(handle))
	return hex.EncodeToString(sum[:])
}

// DeriveID builds the document id.
// With a native id the result is "{platform}_{nativeID}". Without one it is
// "{platform}_{parentID}_{sha1(text prefix)}", which collides for two comments
// under the same parent whose first SurrogatePrefixLen runes match.
func DeriveID(platform Platform, nativeID, parentID, text string) string {
	if nativeID != "" {
		return string(platform) + "_" + nativeID
	}
	return string(platform) + "_" + SurrogateID(parentID, text)
}

// SurrogateID returns "{parentID}_{sha1 hex of the text prefix}".
func SurrogateID(parentID, text string) string {
	prefix := []rune(text)
	if len(prefix) > SurrogatePrefixLen {
		prefix = prefix[:SurrogatePrefixLen]
	}
	sum := sha1.Sum([]byte(string(prefix))) //nolint:gosec
	return parentID + "_" + hex.EncodeToString(sum[:])
}
