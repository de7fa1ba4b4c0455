package domain

import "time"

// SyncIntention is a pending request from the owner of DebtID to overwrite
// the counterpart's copy with the values locked at LockedTimestamp.
type SyncIntention struct {
	DebtID          string    `json:"debtID"`
	OwnerAccountID  string    `json:"ownerAccountID"`
	LockedTimestamp time.Time `json:"lockedTimestamp"`
	AuditFields
}

// SyncStatusType is the derived divergence tri-state of a debt.
type SyncStatusType string

const (
	SyncStatusNoSync SyncStatusType = "nosync"
	SyncStatusUnsync SyncStatusType = "unsync"
	SyncStatusSync   SyncStatusType = "sync"
)

// SyncDirection tells which side is ahead (or is pushing) when unsynced.
type SyncDirection string

const (
	SyncDirectionSelf   SyncDirection = "self"
	SyncDirectionRemote SyncDirection = "remote"
)

// SyncStatus is computed on read and never persisted.
type SyncStatus struct {
	Type             SyncStatusType `json:"type"`
	Direction        SyncDirection  `json:"direction,omitempty"`
	IntentionPending bool           `json:"intentionPending"`
	// LockedTimestamp is the value proposed by the pending intention, if any.
	LockedTimestamp *time.Time `json:"lockedTimestamp,omitempty"`
}

// ReconciliationState is the protocol state a debt is in.
type ReconciliationState string

const (
	StateNoSync           ReconciliationState = "NoSync"
	StateLockedDivergent  ReconciliationState = "LockedDivergent"
	StateIntentionPending ReconciliationState = "IntentionPending"
	StateSynced           ReconciliationState = "Synced"
)

// State maps the status onto the reconciliation state machine.
func (s SyncStatus) State() ReconciliationState {
	switch s.Type {
	case SyncStatusSync:
		return StateSynced
	case SyncStatusUnsync:
		if s.IntentionPending {
			return StateIntentionPending
		}
		return StateLockedDivergent
	default:
		return StateNoSync
	}
}

// SyncView bundles what is needed to derive the status of one debt from the
// point of view of its owner.
type SyncView struct {
	Own             Debt
	Connected       bool // counterparty user is mutually connected
	Counterpart     *Debt
	OwnIntention    *SyncIntention
	RemoteIntention *SyncIntention
}

// ResolveSyncStatus derives the status of v.Own.
//
// An unlocked or unconnected debt is always nosync. Equal locks on both rows
// are sync even when a stale intention is still around. Otherwise a pending
// intention decides the direction, and without one the side with the newer
// lock is ahead.
func ResolveSyncStatus(v SyncView) SyncStatus {
	if !v.Own.IsLocked() || !v.Connected {
		return SyncStatus{Type: SyncStatusNoSync}
	}
	if v.Counterpart != nil && SameLock(v.Own.LockedTimestamp, v.Counterpart.LockedTimestamp) {
		return SyncStatus{Type: SyncStatusSync}
	}
	if v.OwnIntention != nil {
		ts := v.OwnIntention.LockedTimestamp
		return SyncStatus{Type: SyncStatusUnsync, Direction: SyncDirectionSelf, IntentionPending: true, LockedTimestamp: &ts}
	}
	if v.RemoteIntention != nil {
		ts := v.RemoteIntention.LockedTimestamp
		return SyncStatus{Type: SyncStatusUnsync, Direction: SyncDirectionRemote, IntentionPending: true, LockedTimestamp: &ts}
	}
	direction := SyncDirectionSelf
	if v.Counterpart != nil && v.Counterpart.IsLocked() && v.Counterpart.LockedTimestamp.After(*v.Own.LockedTimestamp) {
		direction = SyncDirectionRemote
	}
	return SyncStatus{Type: SyncStatusUnsync, Direction: direction}
}

// SyncIntentions lists the intentions an account is involved in.
type SyncIntentions struct {
	Inbound  []SyncIntention `json:"inbound"`
	Outbound []SyncIntention `json:"outbound"`
}
