// Package accesscode derives and checks the 4-digit code printed on signed documents.
//
// The code is a short human-typeable secret, not a cryptographic credential: the
// verification endpoint that accepts it must be rate limited.
package accesscode

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"strings"
)

const Length = 4

// Generate is deterministic: SHA-256 of the request id, last two bytes read
// big-endian, modulo 10000, zero-padded.
func Generate(requestID string) string {
	sum := sha256.Sum256([]byte(requestID))
	n := binary.BigEndian.Uint16(sum[len(sum)-2:])
	return fmt.Sprintf("%04d", int(n)%10000)
}

// Validate checks supplied against the stored code when one was assigned,
// otherwise against the code derived from the request id.
func Validate(stored *string, supplied, requestID string) bool {
	supplied = normalize(supplied)
	if supplied == "" {
		return false
	}

	expected := Generate(requestID)
	if stored != nil && normalize(*stored) != "" {
		expected = normalize(*stored)
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(supplied)) == 1
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
