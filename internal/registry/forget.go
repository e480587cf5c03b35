package registry

import "otrctx/internal/domain"

// Forget removes ctx from the registry. The context must be PLAINTEXT, and
// for a master so must every instance of its family; otherwise nothing
// changes and ErrNotPlaintext is returned. Forgetting a master forgets its
// instances first.
func (r *Registry) Forget(ctx *Context) error {
	if ctx == nil || ctx.registry != r {
		return ErrDetached
	}
	if !ctx.IsMaster() {
		if ctx.msgState != domain.Plaintext {
			return ErrNotPlaintext
		}
		r.release(ctx)
		return nil
	}

	family := r.Family(ctx)
	for _, c := range family {
		if c.msgState != domain.Plaintext {
			r.log.Warn("forget refused", "context", ctx.String(), "busy", c.String(), "state", c.msgState.String())
			return ErrNotPlaintext
		}
	}
	for _, c := range family[1:] {
		// An app-data destructor may already have removed it.
		if c.registry == r {
			r.release(c)
		}
	}
	r.release(ctx)
	return nil
}

// ForgetAll forces every context to PLAINTEXT and forgets them all.
func (r *Registry) ForgetAll() {
	for _, c := range r.Contexts() {
		c.ForcePlaintext()
	}
	for len(r.contexts) > 0 {
		c := r.contexts[0].master
		for _, m := range r.Family(c) {
			m.ForcePlaintext()
		}
		if err := r.Forget(c); err != nil {
			r.log.Error("forget all stopped", "context", c.String(), "error", err)
			return
		}
	}
}

// release tears ctx down and unlinks it. The caller has checked the state.
func (r *Registry) release(ctx *Context) {
	ctx.ForcePlaintext()
	for _, fp := range ctx.fingerprints {
		fp.detach()
	}
	ctx.fingerprints = nil

	r.remove(ctx)
	if m := ctx.master; m != ctx {
		if m.recentChild == ctx {
			m.recentChild = m
		}
		if m.recentRcvdChild == ctx {
			m.recentRcvdChild = m
		}
		if m.recentSentChild == ctx {
			m.recentSentChild = m
		}
	}
	ctx.registry = nil
	r.log.Debug("context forgotten", "context", ctx.String())

	if ctx.appData != nil && ctx.appDataFree != nil {
		free, data := ctx.appDataFree, ctx.appData
		ctx.appData, ctx.appDataFree = nil, nil
		free(data)
	}
}
