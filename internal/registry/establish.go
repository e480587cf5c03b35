package registry

import (
	"fmt"

	"otrctx/internal/domain"
	"otrctx/internal/protocol/dh"
)

// EstablishParams carries what a completed key exchange learned about the
// peer.
type EstablishParams struct {
	Fingerprint     domain.Digest
	SessionID       []byte
	SessionIDHalf   SessionIDHalf
	ProtocolVersion int
	TheirDHPublic   []byte
	TheirKeyID      uint32
}

// Establish moves ctx to ENCRYPTED with fresh key material. Any state left
// from a previous session is wiped first, except the last-sent and
// last-received times. On error ctx is left PLAINTEXT with those wiped too.
func (r *Registry) Establish(ctx *Context, p EstablishParams) (err error) {
	if ctx == nil || ctx.registry != r {
		return ErrDetached
	}
	if len(p.SessionID) == 0 || len(p.SessionID) > SessionIDSize || p.TheirKeyID == 0 {
		return fmt.Errorf("establish %s: %w", ctx, ErrInvalidArgument)
	}

	// Message history survives a re-key; only a downgrade forgets it.
	lastRecv, lastSent := ctx.priv.lastRecv, ctx.priv.lastSent
	ctx.ForceFinished()
	ctx.priv.lastRecv, ctx.priv.lastSent = lastRecv, lastSent
	defer func() {
		if err != nil {
			ctx.ForcePlaintext()
			r.log.Warn("session setup failed", "context", ctx.String(), "error", err)
		}
	}()

	if ctx.priv.ourDHKey, err = dh.GenerateKeypair(); err != nil {
		return fmt.Errorf("establish %s: generate keypair: %w", ctx, err)
	}
	ctx.priv.ourKeyID = 1

	sess, err := dh.ComputeSession(&ctx.priv.ourDHKey, p.TheirDHPublic)
	if err != nil {
		return fmt.Errorf("establish %s: derive session: %w", ctx, err)
	}
	ctx.priv.sessKeys[0][0] = sess
	ctx.priv.theirY = append([]byte(nil), p.TheirDHPublic...)
	ctx.priv.theirKeyID = p.TheirKeyID

	fp, added := ctx.FindFingerprint(p.Fingerprint, true)
	if added {
		r.log.Info("new fingerprint", "context", ctx.String(), "fingerprint", p.Fingerprint.String())
	}
	ctx.activeFingerprint = fp
	ctx.sessionIDLen = copy(ctx.sessionID[:], p.SessionID)
	ctx.sessionIDHalf = p.SessionIDHalf
	ctx.protocolVersion = p.ProtocolVersion
	ctx.auth.Clear()
	ctx.msgState = domain.Encrypted

	r.log.Debug("session established", "context", ctx.String(), "version", p.ProtocolVersion)
	return nil
}
