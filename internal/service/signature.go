package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"stablegate/internal/core/ports"
)

// HMACSignatureService implements ports.SignatureService using
// HMAC-SHA256 over the callback canonical form (spec.md §4.5).
type HMACSignatureService struct{}

// NewHMACSignatureService creates a new HMAC-SHA256 signature service.
func NewHMACSignatureService() ports.SignatureService {
	return &HMACSignatureService{}
}

// Sign computes HMAC-SHA256(secret, canonical) and returns lowercase
// hex, ready to go after the "v1=" prefix in X-Signature.
func (s *HMACSignatureService) Sign(secret string, canonical string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks signatureHex against HMAC-SHA256(secret, canonical)
// in constant time.
func (s *HMACSignatureService) Verify(secret string, canonical string, signatureHex string) bool {
	expected := s.Sign(secret, canonical)
	return hmac.Equal([]byte(expected), []byte(signatureHex))
}

// BuildCanonicalString reproduces the exact byte sequence both sides
// sign: timestamp + "." + raw body bytes (spec.md §4.5). Using the raw
// body rather than a re-serialized form means a signature survives
// any JSON key-ordering differences between producer and verifier.
func (s *HMACSignatureService) BuildCanonicalString(timestamp string, rawBody []byte) string {
	return timestamp + "." + string(rawBody)
}
