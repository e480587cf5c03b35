package types

// Username identifies the remote party of a conversation.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// AccountName identifies the local account a conversation runs over.
type AccountName string

// String returns the string form of the account name.
func (a AccountName) String() string { return string(a) }

// Protocol names the IM transport (e.g. "xmpp", "irc").
type Protocol string

// String returns the string form of the protocol.
func (p Protocol) String() string { return string(p) }

// Direction tells the recent-instance bookkeeping which way a message went.
type Direction int

const (
	// Received marks a message that arrived from the peer.
	Received Direction = iota
	// Sent marks a message we sent to the peer.
	Sent
)

// String returns the string form of the direction.
func (d Direction) String() string {
	if d == Sent {
		return "sent"
	}
	return "received"
}

// OfferState records whether we have advertised OTR support to the peer.
type OfferState int

const (
	OfferNot OfferState = iota
	OfferSent
	OfferRejected
	OfferAccepted
)

// String returns the string form of the offer state.
func (o OfferState) String() string {
	switch o {
	case OfferSent:
		return "sent"
	case OfferRejected:
		return "rejected"
	case OfferAccepted:
		return "accepted"
	default:
		return "not"
	}
}
