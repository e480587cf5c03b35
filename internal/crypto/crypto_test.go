package crypto_test

import (
	"bytes"
	"testing"

	"otrctx/internal/crypto"
)

func TestDH_Agrees(t *testing.T) {
	aPriv, aPub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	bPriv, bPub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	ab, err := crypto.DH(aPriv, bPub[:])
	if err != nil {
		t.Fatalf("DH: %v", err)
	}
	ba, err := crypto.DH(bPriv, aPub[:])
	if err != nil {
		t.Fatalf("DH: %v", err)
	}
	if !bytes.Equal(ab[:], ba[:]) {
		t.Fatal("shared secrets differ")
	}
}

func TestDH_RejectsShortPoint(t *testing.T) {
	priv, _, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	if _, err := crypto.DH(priv, []byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for short point")
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := crypto.Fingerprint([]byte("alice-key"))
	b := crypto.Fingerprint([]byte("alice-key"))
	c := crypto.Fingerprint([]byte("bob-key"))
	if a != b {
		t.Fatal("same key gave different digests")
	}
	if a == c {
		t.Fatal("different keys gave the same digest")
	}
}
