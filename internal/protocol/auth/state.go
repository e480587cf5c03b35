package auth

import (
	"crypto/rand"
	"crypto/sha256"

	"golang.org/x/crypto/chacha20poly1305"

	"otrctx/internal/domain"
	"otrctx/internal/protocol/dh"
	"otrctx/internal/util/memzero"
)

// Phase is the step the exchange is waiting on.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseAwaitingDHKey
	PhaseAwaitingRevealSig
	PhaseAwaitingSig
)

// String returns the string form of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingDHKey:
		return "AWAITING_DHKEY"
	case PhaseAwaitingRevealSig:
		return "AWAITING_REVEALSIG"
	case PhaseAwaitingSig:
		return "AWAITING_SIG"
	default:
		return "NONE"
	}
}

// State is the secret material of one key exchange.
type State struct {
	Phase       Phase
	OurInstance domain.InstanceTag

	ourDH dh.Keypair
	r     [chacha20poly1305.KeySize]byte

	// Commitment to our DH public value: sealed under r and hashed.
	EncGx  []byte
	HashGx [sha256.Size]byte

	TheirPub []byte
}

// New returns an idle exchange state for the given local instance.
func New(ourInstance domain.InstanceTag) *State {
	return &State{OurInstance: ourInstance}
}

// Begin starts an exchange as the initiator: it generates our DH keypair and
// the commitment key r, then seals and hashes g^x.
func (s *State) Begin() error {
	s.Clear()

	kp, err := dh.GenerateKeypair()
	if err != nil {
		return err
	}
	if _, err := rand.Read(s.r[:]); err != nil {
		kp.Release()
		return err
	}
	aead, err := chacha20poly1305.New(s.r[:])
	if err != nil {
		kp.Release()
		memzero.Zero(s.r[:])
		return err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; r is single-use
	s.ourDH = kp
	s.EncGx = aead.Seal(nil, nonce[:], kp.Pub[:], nil)
	s.HashGx = sha256.Sum256(kp.Pub[:])
	s.Phase = PhaseAwaitingDHKey
	return nil
}

// InProgress reports whether an exchange has been started and not cleared.
func (s *State) InProgress() bool { return s != nil && s.Phase != PhaseNone }

// OurPublic returns our DH public value, or nil if no exchange is running.
func (s *State) OurPublic() []byte {
	if !s.ourDH.Valid() {
		return nil
	}
	return append([]byte(nil), s.ourDH.Pub[:]...)
}

// Clear wipes every secret and returns the state to PhaseNone. The local
// instance tag is kept.
func (s *State) Clear() {
	if s == nil {
		return
	}
	s.ourDH.Release()
	memzero.Zero(s.r[:])
	memzero.Zero(s.EncGx)
	memzero.Zero(s.HashGx[:])
	memzero.Zero(s.TheirPub)
	s.EncGx = nil
	s.TheirPub = nil
	s.Phase = PhaseNone
}
