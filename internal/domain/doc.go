// Package domain defines the core data models and contracts shared across
// the session-context core: instance tags, message states, fingerprint
// digests, and the collaborator interfaces the registry depends on.
// It contains plain types and interfaces only.
package domain
