package gateway

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// Signature computes the canonical webhook signature: the SHA-512 hex
// digest of order-ref + status code + gross amount + server key. The
// gateway sends the same digest in its payload.
func Signature(orderRef, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderRef + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifySignature compares a payload signature in constant time.
func VerifySignature(provided, orderRef, statusCode, grossAmount, serverKey string) bool {
	expected := Signature(orderRef, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}
