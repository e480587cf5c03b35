package domain

import (
	interfaces "otrctx/internal/domain/interfaces"
	types "otrctx/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username          = types.Username
	AccountName       = types.AccountName
	Protocol          = types.Protocol
	Direction         = types.Direction
	OfferState        = types.OfferState
	InstanceTag       = types.InstanceTag
	InstanceTagRecord = types.InstanceTagRecord
	MsgState          = types.MsgState
	Digest            = types.Digest
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	InstanceTagStore     = interfaces.InstanceTagStore
	InstanceTagPersister = interfaces.InstanceTagPersister
)

// Re-exported constants.
const (
	Received = types.Received
	Sent     = types.Sent

	OfferNot      = types.OfferNot
	OfferSent     = types.OfferSent
	OfferRejected = types.OfferRejected
	OfferAccepted = types.OfferAccepted

	InstanceMaster         = types.InstanceMaster
	InstanceBest           = types.InstanceBest
	InstanceRecent         = types.InstanceRecent
	InstanceRecentReceived = types.InstanceRecentReceived
	InstanceRecentSent     = types.InstanceRecentSent
	MinValidInstanceTag    = types.MinValidInstanceTag

	Plaintext = types.Plaintext
	Encrypted = types.Encrypted
	Finished  = types.Finished

	DigestSize = types.DigestSize
)

// ParseDigest is re-exported from the types subpackage.
var ParseDigest = types.ParseDigest
