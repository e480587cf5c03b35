// Package auth holds the in-flight state of an authenticated key exchange.
//
// The exchange itself is driven elsewhere; a conversation context owns one
// State, starts it with New when the context is created and wipes it with
// Clear whenever the context is forced out of the encrypted state.
package auth
