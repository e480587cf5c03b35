package registry

import (
	"time"

	"otrctx/internal/protocol/dh"
	"otrctx/internal/util/memzero"
)

// sessionState is the key material and bookkeeping a context holds while a
// session is live. Nothing outside the package sees it directly.
type sessionState struct {
	// Fragment reassembly.
	fragment  []byte
	fragmentK uint16
	fragmentN uint16

	// MAC keys of retired sessions, revealed with the next data message.
	savedMACKeys []byte

	// Last message sent, kept for retransmission after a re-key.
	lastMessage   []byte
	mayRetransmit int

	theirKeyID uint32
	theirY     []byte
	theirOldY  []byte

	ourKeyID    uint32
	ourDHKey    dh.Keypair
	ourOldDHKey dh.Keypair

	// sessKeys[i][j]: i selects our current/old key, j their current/old key.
	sessKeys [2][2]dh.Session

	lastSent time.Time
	lastRecv time.Time
}

// forceFinished releases every key and wipes every buffer, leaving the
// zero state.
func (p *sessionState) forceFinished() {
	memzero.ZeroAll(p.fragment, p.savedMACKeys, p.lastMessage, p.theirY, p.theirOldY)
	p.ourDHKey.Release()
	p.ourOldDHKey.Release()
	for i := range p.sessKeys {
		for j := range p.sessKeys[i] {
			p.sessKeys[i][j].Release()
		}
	}
	*p = sessionState{}
}

// hasKeyMaterial reports whether anything secret is still held.
func (p *sessionState) hasKeyMaterial() bool {
	if p.ourDHKey.Valid() || p.ourOldDHKey.Valid() {
		return true
	}
	for i := range p.sessKeys {
		for j := range p.sessKeys[i] {
			if p.sessKeys[i][j].Valid() {
				return true
			}
		}
	}
	return len(p.savedMACKeys) > 0 || len(p.lastMessage) > 0 ||
		len(p.fragment) > 0 || len(p.theirY) > 0 || len(p.theirOldY) > 0
}

// addFragment feeds piece k of n into the reassembly buffer. It returns the
// whole message once the last piece arrives. Out-of-order pieces discard
// the buffer.
func (p *sessionState) addFragment(k, n uint16, piece []byte) ([]byte, bool) {
	switch {
	case k == 0 || n == 0 || k > n:
		return nil, false
	case k == 1:
		p.resetFragment()
		p.fragment = append(p.fragment, piece...)
		p.fragmentK, p.fragmentN = k, n
	case n == p.fragmentN && k == p.fragmentK+1:
		p.fragment = append(p.fragment, piece...)
		p.fragmentK = k
	default:
		p.resetFragment()
		return nil, false
	}
	if p.fragmentK != p.fragmentN {
		return nil, false
	}
	msg := append([]byte(nil), p.fragment...)
	p.resetFragment()
	return msg, true
}

func (p *sessionState) resetFragment() {
	memzero.Zero(p.fragment)
	p.fragment = p.fragment[:0]
	p.fragmentK, p.fragmentN = 0, 0
}
