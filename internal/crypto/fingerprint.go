package crypto

import (
	"crypto/sha256"

	"otrctx/internal/domain"
)

// Fingerprint returns the digest identifying a long-term public key.
//
// It hashes with SHA-256 and truncates to domain.DigestSize bytes.
func Fingerprint(pub []byte) domain.Digest {
	sum := sha256.Sum256(pub)
	var d domain.Digest
	copy(d[:], sum[:domain.DigestSize])
	return d
}
