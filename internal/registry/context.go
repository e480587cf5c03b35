package registry

import (
	"fmt"
	"time"

	"otrctx/internal/domain"
	"otrctx/internal/protocol/auth"
	"otrctx/internal/protocol/smp"
	"otrctx/internal/util/memzero"
)

// SessionIDSize is the largest session id a context stores.
const SessionIDSize = 20

// SessionIDHalf says which half of the session id is displayed in bold.
type SessionIDHalf int

const (
	// FirstHalfBold marks the first half of the session id for emphasis.
	FirstHalfBold SessionIDHalf = iota
	// SecondHalfBold marks the second half of the session id for emphasis.
	SecondHalfBold
)

// AppDataFunc is called once for every context the registry creates, right
// after it is inserted. It typically calls SetAppData.
type AppDataFunc func(ctx *Context)

// Context is the conversation state for one peer instance.
type Context struct {
	username      domain.Username
	accountName   domain.AccountName
	protocol      domain.Protocol
	theirInstance domain.InstanceTag
	ourInstance   domain.InstanceTag

	msgState          domain.MsgState
	activeFingerprint *Fingerprint

	sessionID       [SessionIDSize]byte
	sessionIDLen    int
	sessionIDHalf   SessionIDHalf
	protocolVersion int
	offer           domain.OfferState

	auth *auth.State
	smp  *smp.State
	priv sessionState

	appData     any
	appDataFree func(any)

	// master points at the family root; a master points at itself.
	master *Context
	// Valid on masters only.
	recentChild     *Context
	recentRcvdChild *Context
	recentSentChild *Context

	// root is the sentinel of the fingerprint store. Only masters use the store.
	root         Fingerprint
	fingerprints []*Fingerprint

	// registry is nil once the context has been forgotten.
	registry *Registry
}

func newContext(user domain.Username, account domain.AccountName, protocol domain.Protocol, our domain.InstanceTag) *Context {
	c := &Context{
		username:      user,
		accountName:   account,
		protocol:      protocol,
		theirInstance: domain.InstanceMaster,
		ourInstance:   our,
		msgState:      domain.Plaintext,
		offer:         domain.OfferNot,
		auth:          auth.New(our),
		smp:           smp.New(),
	}
	c.root.context = c
	c.master = c
	return c
}

// Username returns the peer's username. It never changes after creation.
func (c *Context) Username() domain.Username { return c.username }

// AccountName returns our account the conversation runs on.
func (c *Context) AccountName() domain.AccountName { return c.accountName }

// Protocol returns the messaging protocol name.
func (c *Context) Protocol() domain.Protocol { return c.protocol }

// TheirInstance returns the peer's instance tag, InstanceMaster for a master.
func (c *Context) TheirInstance() domain.InstanceTag { return c.theirInstance }

// OurInstance returns our instance tag for the account, or zero if none was
// known when the context was created.
func (c *Context) OurInstance() domain.InstanceTag { return c.ourInstance }

// MsgState returns the current message state.
func (c *Context) MsgState() domain.MsgState { return c.msgState }

// ActiveFingerprint returns the fingerprint the current session was set up
// with, or nil outside ENCRYPTED.
func (c *Context) ActiveFingerprint() *Fingerprint { return c.activeFingerprint }

// ProtocolVersion returns the negotiated protocol version, zero when no
// session is established.
func (c *Context) ProtocolVersion() int { return c.protocolVersion }

// SessionIDHalf returns which half of the session id is shown in bold.
func (c *Context) SessionIDHalf() SessionIDHalf { return c.sessionIDHalf }

// Offer returns whether we offered OTR to the peer and how it went.
func (c *Context) Offer() domain.OfferState { return c.offer }

// SetOffer records the state of our OTR offer.
func (c *Context) SetOffer(o domain.OfferState) { c.offer = o }

// Auth returns the key-exchange state.
func (c *Context) Auth() *auth.State { return c.auth }

// SMP returns the socialist-millionaire state.
func (c *Context) SMP() *smp.State { return c.smp }

// Master returns the family root; a master returns itself.
func (c *Context) Master() *Context { return c.master }

// IsMaster reports whether c is the master of its family.
func (c *Context) IsMaster() bool { return c.theirInstance == domain.InstanceMaster }

// LastReceived returns when a message from this instance was last accepted.
func (c *Context) LastReceived() time.Time { return c.priv.lastRecv }

// LastSent returns when a message to this instance was last sent.
func (c *Context) LastSent() time.Time { return c.priv.lastSent }

// AppData returns the data attached with SetAppData.
func (c *Context) AppData() any { return c.appData }

// FingerprintRoot returns the sentinel head of c's fingerprint store.
// Forgetting it stands for forgetting c.
func (c *Context) FingerprintRoot() *Fingerprint { return &c.root }

// Detached reports whether c has been forgotten.
func (c *Context) Detached() bool { return c.registry == nil }

// HasKeyMaterial reports whether any session secret is still held.
func (c *Context) HasKeyMaterial() bool { return c.priv.hasKeyMaterial() }

// String renders c as user/account/protocol#instance.
func (c *Context) String() string {
	return fmt.Sprintf("%s/%s/%s#%s", c.username, c.accountName, c.protocol, c.theirInstance)
}

// SessionID returns a copy of the secure session id, or nil when no
// session is established.
func (c *Context) SessionID() []byte {
	if c.sessionIDLen == 0 {
		return nil
	}
	return append([]byte(nil), c.sessionID[:c.sessionIDLen]...)
}

// SetAppData attaches application data and the function that frees it. The
// registry calls free(data) once when the context is forgotten, if both are
// non-nil.
func (c *Context) SetAppData(data any, free func(any)) {
	c.appData = data
	c.appDataFree = free
}

// ForceFinished moves the context to FINISHED, wiping the auth state, the
// SMP state, the session id and all key material. Calling it again has no
// further effect.
func (c *Context) ForceFinished() {
	defer c.priv.forceFinished()

	c.msgState = domain.Finished
	c.auth.Clear()
	c.activeFingerprint = nil
	memzero.Zero(c.sessionID[:])
	c.sessionIDLen = 0
	c.sessionIDHalf = FirstHalfBold
	c.protocolVersion = 0
	c.smp.Clear()
}

// ForcePlaintext runs the ForceFinished cleanup, then moves the context to
// PLAINTEXT. It is the only way back to PLAINTEXT.
func (c *Context) ForcePlaintext() {
	c.ForceFinished()
	c.msgState = domain.Plaintext
}

// RecordReceived notes that a message from this instance was accepted now.
func (c *Context) RecordReceived() {
	if c.registry == nil {
		return
	}
	c.priv.lastRecv = c.registry.now()
	c.registry.UpdateRecent(c, domain.Received)
}

// RecordSent notes that a message to this instance was sent now.
func (c *Context) RecordSent() {
	if c.registry == nil {
		return
	}
	c.priv.lastSent = c.registry.now()
	c.registry.UpdateRecent(c, domain.Sent)
}

// AddFragment feeds piece k of n of an incoming fragmented message. It
// returns the reassembled message when the final piece arrives.
func (c *Context) AddFragment(k, n uint16, piece []byte) ([]byte, bool) {
	return c.priv.addFragment(k, n, piece)
}

// StoreLastMessage keeps a copy of msg for retransmission after a re-key.
func (c *Context) StoreLastMessage(msg []byte, mayRetransmit int) {
	memzero.Zero(c.priv.lastMessage)
	c.priv.lastMessage = append([]byte(nil), msg...)
	c.priv.mayRetransmit = mayRetransmit
}

// LastMessage returns the stored message and its retransmit policy.
func (c *Context) LastMessage() ([]byte, int) {
	return append([]byte(nil), c.priv.lastMessage...), c.priv.mayRetransmit
}
