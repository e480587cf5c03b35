package crypto

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/curve25519"

	"otrctx/internal/util/memzero"
)

// KeySize is the length of X25519 scalars and points.
const KeySize = curve25519.ScalarSize

var errBadPoint = errors.New("x25519: peer public key must be 32 bytes")

// GenerateX25519 returns a fresh Curve25519 key pair.
// The private key is clamped per RFC 7748.
func GenerateX25519() (priv, pub [KeySize]byte, err error) {
	if _, err = rand.Read(priv[:]); err != nil {
		return
	}
	clamp(&priv)
	pb, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		memzero.Zero(priv[:])
		return
	}
	copy(pub[:], pb)
	return
}

// DH computes X25519 Diffie–Hellman.
func DH(priv [KeySize]byte, peer []byte) (out [KeySize]byte, err error) {
	if len(peer) != KeySize {
		return out, errBadPoint
	}
	secret, err := curve25519.X25519(priv[:], peer)
	if err != nil {
		return out, err
	}
	copy(out[:], secret)
	memzero.Zero(secret)
	return out, nil
}

func clamp(k *[KeySize]byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}
