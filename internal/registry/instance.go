package registry

import "otrctx/internal/domain"

// resolveMeta applies a meta-selector to the first context of a triple,
// which must be its master.
func (r *Registry) resolveMeta(master *Context, sel domain.InstanceTag) *Context {
	if master == nil || master.theirInstance != domain.InstanceMaster {
		return nil
	}
	switch sel {
	case domain.InstanceMaster:
		return master
	case domain.InstanceBest:
		return r.BestSecureInstance(master)
	case domain.InstanceRecent, domain.InstanceRecentReceived, domain.InstanceRecentSent:
		return r.RecentInstance(master, sel)
	}
	return nil
}

// BestSecureInstance picks the family member of ctx that is best to send
// to. A member replaces the current pick if it is ENCRYPTED, or FINISHED
// against a PLAINTEXT pick. Trust then only moves from untrusted to
// trusted. Among equals the most recent receive time wins, later members
// winning ties.
func (r *Registry) BestSecureInstance(ctx *Context) *Context {
	best := ctx
	if ctx == nil {
		return nil
	}
	for _, cur := range r.Family(ctx) {
		msgImproved := false
		switch {
		case cur.msgState == best.msgState:
		case cur.msgState == domain.Encrypted,
			best.msgState == domain.Plaintext && cur.msgState == domain.Finished:
			msgImproved = true
		default:
			continue
		}

		trustImproved := false
		curTrusted := IsTrusted(cur.activeFingerprint)
		switch {
		case curTrusted == IsTrusted(best.activeFingerprint):
		case curTrusted:
			trustImproved = true
		default:
			continue
		}

		if msgImproved || trustImproved || !cur.priv.lastRecv.Before(best.priv.lastRecv) {
			best = cur
		}
	}
	return best
}

// RecentInstance returns the member of ctx's family selected by one of the
// RECENT selectors. Other selectors yield nil.
func (r *Registry) RecentInstance(ctx *Context, sel domain.InstanceTag) *Context {
	if ctx == nil || ctx.master == nil {
		return nil
	}
	m := ctx.master
	switch sel {
	case domain.InstanceRecent:
		return m.recentChild
	case domain.InstanceRecentReceived:
		return m.recentRcvdChild
	case domain.InstanceRecentSent:
		return m.recentSentChild
	}
	return nil
}

// UpdateRecent marks ctx as the family member most recently used in
// direction dir.
func (r *Registry) UpdateRecent(ctx *Context, dir domain.Direction) {
	if ctx == nil || ctx.registry != r {
		return
	}
	m := ctx.master
	if dir == domain.Sent {
		m.recentSentChild = ctx
	} else {
		m.recentRcvdChild = ctx
	}
	m.recentChild = ctx
}
