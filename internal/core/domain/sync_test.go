package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestResolveSyncStatus(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	tests := []struct {
		name      string
		view      domain.SyncView
		wantType  domain.SyncStatusType
		wantDir   domain.SyncDirection
		wantState domain.ReconciliationState
	}{
		{
			name:      "unlocked debt is nosync",
			view:      domain.SyncView{Own: domain.Debt{}, Connected: true},
			wantType:  domain.SyncStatusNoSync,
			wantState: domain.StateNoSync,
		},
		{
			name:      "unconnected counterparty is nosync",
			view:      domain.SyncView{Own: domain.Debt{LockedTimestamp: timePtr(t1)}},
			wantType:  domain.SyncStatusNoSync,
			wantState: domain.StateNoSync,
		},
		{
			name:      "missing counterpart row means we are ahead",
			view:      domain.SyncView{Own: domain.Debt{LockedTimestamp: timePtr(t1)}, Connected: true},
			wantType:  domain.SyncStatusUnsync,
			wantDir:   domain.SyncDirectionSelf,
			wantState: domain.StateLockedDivergent,
		},
		{
			name: "stale own copy sees remote ahead",
			view: domain.SyncView{
				Own:         domain.Debt{LockedTimestamp: timePtr(t0)},
				Connected:   true,
				Counterpart: &domain.Debt{LockedTimestamp: timePtr(t1)},
			},
			wantType:  domain.SyncStatusUnsync,
			wantDir:   domain.SyncDirectionRemote,
			wantState: domain.StateLockedDivergent,
		},
		{
			name: "equal locks are synced",
			view: domain.SyncView{
				Own:         domain.Debt{LockedTimestamp: timePtr(t1)},
				Connected:   true,
				Counterpart: &domain.Debt{LockedTimestamp: timePtr(t1)},
			},
			wantType:  domain.SyncStatusSync,
			wantState: domain.StateSynced,
		},
		{
			name: "own intention wins over timestamps",
			view: domain.SyncView{
				Own:          domain.Debt{LockedTimestamp: timePtr(t0)},
				Connected:    true,
				Counterpart:  &domain.Debt{LockedTimestamp: timePtr(t1)},
				OwnIntention: &domain.SyncIntention{LockedTimestamp: t0},
			},
			wantType:  domain.SyncStatusUnsync,
			wantDir:   domain.SyncDirectionSelf,
			wantState: domain.StateIntentionPending,
		},
		{
			name: "remote intention",
			view: domain.SyncView{
				Own:             domain.Debt{LockedTimestamp: timePtr(t0)},
				Connected:       true,
				Counterpart:     &domain.Debt{LockedTimestamp: timePtr(t1)},
				RemoteIntention: &domain.SyncIntention{LockedTimestamp: t1},
			},
			wantType:  domain.SyncStatusUnsync,
			wantDir:   domain.SyncDirectionRemote,
			wantState: domain.StateIntentionPending,
		},
		{
			name: "equal locks are synced despite a leftover intention",
			view: domain.SyncView{
				Own:             domain.Debt{LockedTimestamp: timePtr(t1)},
				Connected:       true,
				Counterpart:     &domain.Debt{LockedTimestamp: timePtr(t1)},
				RemoteIntention: &domain.SyncIntention{LockedTimestamp: t1},
			},
			wantType:  domain.SyncStatusSync,
			wantState: domain.StateSynced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ResolveSyncStatus(tt.view)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantDir, got.Direction)
			assert.Equal(t, tt.wantState, got.State())
		})
	}
}
