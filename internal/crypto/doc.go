// Package crypto exposes the minimal primitives used by the session core.
//
// Contents
//
//   - X25519 key generation, clamping and Diffie–Hellman (GenerateX25519, DH)
//   - Public-key fingerprints as fixed-size digests (Fingerprint)
//
// # Notes
//
// Secrets are returned as fixed-size arrays to avoid accidental
// reallocations. Callers wipe them with memzero when they are released.
package crypto
