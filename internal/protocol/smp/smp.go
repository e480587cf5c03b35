// Package smp holds the secret state of a socialist-millionaire trust check.
//
// The protocol flow lives elsewhere; a conversation context owns one State
// and clears it whenever the context is forced out of the encrypted state.
package smp

import "otrctx/internal/util/memzero"

// Expect is the next SMP message the state machine will accept.
type Expect int

const (
	Expect1 Expect = iota
	Expect2
	Expect3
	Expect4
	Expect5
)

// Progress records the outcome of the last check.
type Progress int

const (
	ProgressOK Progress = iota
	ProgressCheated
	ProgressFailed
	ProgressSucceeded
)

// State carries the exponents and intermediate values of one run.
type State struct {
	Secret    []byte
	X2, X3    []byte
	G2, G3    []byte
	G3o       []byte
	Pab, Qab  []byte
	Question  string
	Expect    Expect
	Progress  Progress
	ReceivedQ bool
}

// New returns a state ready for a first SMP message.
func New() *State { return &State{Expect: Expect1} }

// Clear wipes all secrets and resets the state machine to Expect1.
func (s *State) Clear() {
	if s == nil {
		return
	}
	memzero.ZeroAll(s.Secret, s.X2, s.X3, s.G2, s.G3, s.G3o, s.Pab, s.Qab)
	*s = State{Expect: Expect1}
}
