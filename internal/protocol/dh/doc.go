// Package dh manages the Diffie–Hellman keypairs and derived session keys
// that a conversation context holds while it is encrypted.
//
// The context registry treats these as lifetime-managed handles: it creates
// them when a session is established and calls Release exactly when the
// context leaves the encrypted state. Release wipes every secret byte.
package dh
