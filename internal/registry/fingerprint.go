package registry

import (
	"slices"

	"otrctx/internal/domain"
)

// Fingerprint is a known public-key digest of a peer, with an optional
// trust label. It belongs to the store of one master context.
type Fingerprint struct {
	digest  domain.Digest
	trust   *string
	context *Context
}

// Digest returns the fingerprint bytes.
func (f *Fingerprint) Digest() domain.Digest { return f.digest }

// Context returns the owning master, or nil once the fingerprint has been
// forgotten.
func (f *Fingerprint) Context() *Context { return f.context }

// IsRoot reports whether f is the sentinel head of its store.
func (f *Fingerprint) IsRoot() bool { return f.context != nil && f == &f.context.root }

// Trust returns the trust label and whether one is set.
func (f *Fingerprint) Trust() (string, bool) {
	if f == nil || f.trust == nil {
		return "", false
	}
	return *f.trust, true
}

// SetTrust replaces the trust label. An empty label is stored but still
// counts as untrusted.
func (f *Fingerprint) SetTrust(label string) {
	if f == nil {
		return
	}
	f.trust = &label
}

// ClearTrust removes the trust label.
func (f *Fingerprint) ClearTrust() {
	if f == nil {
		return
	}
	f.trust = nil
}

// IsTrusted reports whether fp carries a non-empty trust label.
func IsTrusted(fp *Fingerprint) bool {
	return fp != nil && fp.trust != nil && *fp.trust != ""
}

// FindFingerprint looks up d in the store of c's master. When it is missing
// and addIfMissing is set, an untrusted entry is added at the head of the
// store and added is true.
func (c *Context) FindFingerprint(d domain.Digest, addIfMissing bool) (fp *Fingerprint, added bool) {
	if c == nil || c.master == nil {
		return nil, false
	}
	m := c.master
	for _, f := range m.fingerprints {
		if f.digest == d {
			return f, false
		}
	}
	if !addIfMissing {
		return nil, false
	}
	f := &Fingerprint{digest: d, context: m}
	m.fingerprints = slices.Insert(m.fingerprints, 0, f)
	return f, true
}

// Fingerprints returns the store of c's master, newest first.
func (c *Context) Fingerprints() []*Fingerprint {
	if c == nil || c.master == nil {
		return nil
	}
	return slices.Clone(c.master.fingerprints)
}

// ForgetFingerprint removes fp from its store.
//
// The sentinel root stands for the whole context: forgetting it forgets the
// context, provided cascade is set and the context is PLAINTEXT. A regular
// fingerprint is refused with ErrActiveFingerprint while a non-PLAINTEXT
// member of the family uses it. When cascade is set and removing fp leaves
// a PLAINTEXT context with an empty store, the context is forgotten too.
func (r *Registry) ForgetFingerprint(fp *Fingerprint, cascade bool) error {
	if fp == nil || fp.context == nil {
		return ErrDetached
	}
	ctx := fp.context
	if ctx.registry != r {
		return ErrDetached
	}

	if fp.IsRoot() {
		if !cascade {
			return nil
		}
		return r.Forget(ctx)
	}

	family := r.Family(ctx)
	for _, m := range family {
		if m.msgState != domain.Plaintext && m.activeFingerprint == fp {
			r.log.Warn("refusing to forget active fingerprint",
				"context", m.String(), "fingerprint", fp.digest.String())
			return ErrActiveFingerprint
		}
	}
	for _, m := range family {
		if m.activeFingerprint == fp {
			m.activeFingerprint = nil
		}
	}
	ctx.removeFingerprint(fp)

	if cascade && ctx.msgState == domain.Plaintext && len(ctx.fingerprints) == 0 {
		if err := r.Forget(ctx); err != nil {
			r.log.Debug("store empty but context kept", "context", ctx.String(), "error", err)
		}
	}
	return nil
}

func (c *Context) removeFingerprint(fp *Fingerprint) {
	if i := slices.Index(c.fingerprints, fp); i >= 0 {
		c.fingerprints = slices.Delete(c.fingerprints, i, i+1)
	}
	fp.detach()
}

func (f *Fingerprint) detach() {
	f.context = nil
	f.trust = nil
}
