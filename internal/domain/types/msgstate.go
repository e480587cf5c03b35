package types

// MsgState is the security state of a conversation context.
type MsgState int

const (
	// Plaintext: no encrypted session; messages go out in the clear.
	Plaintext MsgState = iota
	// Encrypted: an authenticated session is established.
	Encrypted
	// Finished: the peer ended the session; we refuse to send in the clear
	// until the user explicitly returns to plaintext.
	Finished
)

// String returns the string form of the state.
func (s MsgState) String() string {
	switch s {
	case Plaintext:
		return "PLAINTEXT"
	case Encrypted:
		return "ENCRYPTED"
	case Finished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}
