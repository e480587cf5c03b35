// Package registry tracks the per-peer conversation contexts of an
// Off-the-Record style messaging client.
//
// A Registry holds one Context per (username, account, protocol, instance)
// tuple, kept sorted by that key. Contexts whose instance is
// domain.InstanceMaster are masters: they own the fingerprint store for the
// peer and remember which of their instances was used most recently.
// Contexts with a concrete instance tag are instances, one per client the
// peer runs, and always sit directly after their master.
//
// # State
//
// Every context moves through PLAINTEXT → ENCRYPTED → FINISHED → PLAINTEXT.
// Leaving ENCRYPTED always goes through ForceFinished, which wipes the auth
// state, the SMP state and all DH and session keys. A context can only be
// forgotten while it is PLAINTEXT; a master only when its whole family is.
//
// # Concurrency
//
// A Registry has no internal locking. Use it from one goroutine or guard it
// externally. Application callbacks (AppDataFunc and the app-data
// destructor) run after the registry is consistent and may call back into it.
package registry
