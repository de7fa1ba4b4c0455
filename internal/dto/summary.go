package dto

import "github.com/SscSPs/splitledger/internal/core/domain"

// DebtsSummaryResponse is returned as-is; the domain type already carries JSON tags.
type DebtsSummaryResponse = domain.DebtsSummary
