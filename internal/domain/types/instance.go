package types

import "fmt"

// InstanceTag identifies one client instance of an account.
//
// Values below MinValidInstanceTag are reserved. The first five are
// meta-selectors understood by the context registry; the rest are invalid.
type InstanceTag uint32

const (
	// InstanceMaster is the tag of a master context, the root of an
	// instance family.
	InstanceMaster InstanceTag = 0
	// InstanceBest selects the family member with the best security state.
	InstanceBest InstanceTag = 1
	// InstanceRecent selects the member most recently used in either direction.
	InstanceRecent InstanceTag = 2
	// InstanceRecentReceived selects the member we most recently heard from.
	InstanceRecentReceived InstanceTag = 3
	// InstanceRecentSent selects the member we most recently sent to.
	InstanceRecentSent InstanceTag = 4

	// MinValidInstanceTag is the smallest tag a real client may use.
	MinValidInstanceTag InstanceTag = 0x100
)

// IsValid reports whether t is a concrete client instance tag.
func (t InstanceTag) IsValid() bool { return t >= MinValidInstanceTag }

// IsMeta reports whether t is one of the meta-selectors, including master.
func (t InstanceTag) IsMeta() bool { return t <= InstanceRecentSent }

// String returns the meta-selector name or the tag in hex.
func (t InstanceTag) String() string {
	switch t {
	case InstanceMaster:
		return "MASTER"
	case InstanceBest:
		return "BEST"
	case InstanceRecent:
		return "RECENT"
	case InstanceRecentReceived:
		return "RECENT_RECEIVED"
	case InstanceRecentSent:
		return "RECENT_SENT"
	}
	return fmt.Sprintf("%08x", uint32(t))
}

// InstanceTagRecord binds one of our own instance tags to an account.
type InstanceTagRecord struct {
	Account  AccountName `json:"account"`
	Protocol Protocol    `json:"protocol"`
	Tag      InstanceTag `json:"instag"`
}
