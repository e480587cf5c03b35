package dh

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"

	"otrctx/internal/crypto"
	"otrctx/internal/util/memzero"
)

const (
	// KeySize is the length of DH scalars and public values.
	KeySize = crypto.KeySize
	// EncKeySize is the length of each directional encryption key.
	EncKeySize = 16
	// MACKeySize is the length of each directional MAC key.
	MACKeySize = 20
	// SessionIDSize is the length of the secure session id derived with the keys.
	SessionIDSize = 8
	// CounterSize is the length of the top half of the message counter.
	CounterSize = 8
)

var (
	// ErrNoKeypair is returned when deriving a session from a released keypair.
	ErrNoKeypair = errors.New("dh: keypair not initialised")
	// ErrBadPublic is returned for malformed peer public values.
	ErrBadPublic = errors.New("dh: peer public value must be 32 bytes")
)

// Keypair is one of our DH keypairs.
type Keypair struct {
	Priv  [KeySize]byte
	Pub   [KeySize]byte
	valid bool
}

// GenerateKeypair returns a fresh X25519 keypair.
func GenerateKeypair() (Keypair, error) {
	priv, pub, err := crypto.GenerateX25519()
	if err != nil {
		return Keypair{}, err
	}
	return Keypair{Priv: priv, Pub: pub, valid: true}, nil
}

// Valid reports whether the keypair holds live key material.
func (k *Keypair) Valid() bool { return k != nil && k.valid }

// Release wipes the keypair. It is safe to call on a zero or released keypair.
func (k *Keypair) Release() {
	if k == nil {
		return
	}
	memzero.Zero(k.Priv[:])
	memzero.Zero(k.Pub[:])
	k.valid = false
}

// Session holds the symmetric keys derived from one DH exchange.
type Session struct {
	SessionID [SessionIDSize]byte
	SendEnc   [EncKeySize]byte
	RecvEnc   [EncKeySize]byte
	SendMAC   [MACKeySize]byte
	RecvMAC   [MACKeySize]byte
	SendCtr   [CounterSize]byte
	RecvCtr   [CounterSize]byte
	// RecvMACUsed is set once a MAC key has verified a message and must be
	// revealed when the session is retired.
	RecvMACUsed bool
	valid       bool
}

// Valid reports whether the session holds live key material.
func (s *Session) Valid() bool { return s != nil && s.valid }

// Release wipes every key and counter of the session.
func (s *Session) Release() {
	if s == nil {
		return
	}
	memzero.Zero(s.SessionID[:])
	memzero.Zero(s.SendEnc[:])
	memzero.Zero(s.RecvEnc[:])
	memzero.Zero(s.SendMAC[:])
	memzero.Zero(s.RecvMAC[:])
	memzero.Zero(s.SendCtr[:])
	memzero.Zero(s.RecvCtr[:])
	s.RecvMACUsed = false
	s.valid = false
}

// ComputeSession derives the session keys for our keypair and the peer's
// public value. The side whose public value sorts higher takes the "high"
// keys so both ends agree on directions.
func ComputeSession(our *Keypair, theirPub []byte) (Session, error) {
	if !our.Valid() {
		return Session{}, ErrNoKeypair
	}
	if len(theirPub) != KeySize {
		return Session{}, ErrBadPublic
	}
	secret, err := crypto.DH(our.Priv, theirPub)
	if err != nil {
		return Session{}, err
	}
	defer memzero.Zero(secret[:])

	high := bytes.Compare(our.Pub[:], theirPub) > 0
	sendLabel, recvLabel := "DH|low", "DH|high"
	if high {
		sendLabel, recvLabel = recvLabel, sendLabel
	}

	var s Session
	for _, f := range []struct {
		label string
		out   []byte
	}{
		{"DH|ssid", s.SessionID[:]},
		{sendLabel + "|enc", s.SendEnc[:]},
		{recvLabel + "|enc", s.RecvEnc[:]},
	} {
		if err := expand(secret[:], f.label, f.out); err != nil {
			s.Release()
			return Session{}, err
		}
	}
	macSend := sha256.Sum256(s.SendEnc[:])
	macRecv := sha256.Sum256(s.RecvEnc[:])
	copy(s.SendMAC[:], macSend[:])
	copy(s.RecvMAC[:], macRecv[:])
	memzero.Zero(macSend[:])
	memzero.Zero(macRecv[:])
	s.valid = true
	return s, nil
}

// HKDF-based expansion with a label.
func expand(secret []byte, label string, out []byte) error {
	r := hkdf.New(sha256.New, secret, nil, []byte(label))
	_, err := io.ReadFull(r, out)
	return err
}
