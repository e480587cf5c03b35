package interfaces

import domaintypes "otrctx/internal/domain/types"

// InstanceTagStore resolves our own instance tag for an account.
//
// The context registry consults it when a context is created to fill in
// the context's our-instance field.
type InstanceTagStore interface {
	Lookup(
		account domaintypes.AccountName,
		protocol domaintypes.Protocol,
	) (domaintypes.InstanceTag, bool)
}

// InstanceTagPersister saves and restores the instance-tag table.
type InstanceTagPersister interface {
	SaveInstanceTags(tags []domaintypes.InstanceTagRecord) error
	LoadInstanceTags() ([]domaintypes.InstanceTagRecord, error)
}
