package model

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignaturePrefix is the scheme prefix GitHub puts on the
// X-Hub-Signature-256 header value.
const SignaturePrefix = "sha256="

// Signature computes the expected X-Hub-Signature-256 value for a payload:
// "sha256=" followed by the lowercase hex HMAC-SHA256 of the body.
func Signature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return SignaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// ValidSignature reports whether the header-supplied signature matches the
// HMAC recomputed over the exact body bytes as received. The comparison is
// constant time.
func ValidSignature(secret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	expected := Signature(secret, body)
	return hmac.Equal([]byte(signature), []byte(expected))
}
