package dto

import (
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// ProposeSyncRequest carries the lockedTimestamp the caller last saw on its
// own debt; a mismatch means the debt moved on in the meantime.
type ProposeSyncRequest struct {
	LockedTimestamp time.Time `json:"lockedTimestamp" binding:"required"`
}

// AcceptSyncRequest carries the proposed lockedTimestamp the caller is accepting.
type AcceptSyncRequest struct {
	LockedTimestamp time.Time `json:"lockedTimestamp" binding:"required"`
}

// ProposeSyncResponse echoes the proposed lockedTimestamp.
type ProposeSyncResponse struct {
	LockedTimestamp time.Time `json:"lockedTimestamp"`
}

type SyncIntentionResponse struct {
	DebtID          string    `json:"debtID"`
	OwnerAccountID  string    `json:"ownerAccountID"`
	LockedTimestamp time.Time `json:"lockedTimestamp"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ListSyncIntentionsResponse splits intentions by direction.
type ListSyncIntentionsResponse struct {
	Inbound  []SyncIntentionResponse `json:"inbound"`
	Outbound []SyncIntentionResponse `json:"outbound"`
}

func toSyncIntentionResponses(in []domain.SyncIntention) []SyncIntentionResponse {
	res := make([]SyncIntentionResponse, len(in))
	for i, it := range in {
		res[i] = SyncIntentionResponse{
			DebtID:          it.DebtID,
			OwnerAccountID:  it.OwnerAccountID,
			LockedTimestamp: it.LockedTimestamp,
			CreatedAt:       it.CreatedAt,
		}
	}
	return res
}

func ToListSyncIntentionsResponse(l *domain.SyncIntentions) ListSyncIntentionsResponse {
	return ListSyncIntentionsResponse{
		Inbound:  toSyncIntentionResponses(l.Inbound),
		Outbound: toSyncIntentionResponses(l.Outbound),
	}
}

// SweepResponse reports how many dangling intentions were removed.
type SweepResponse struct {
	Removed int64 `json:"removed"`
}
