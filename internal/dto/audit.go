package dto

import (
	"time"

	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// --- Audit DTOs ---

// AuditEntryResponse defines data returned for one audit entry.
type AuditEntryResponse struct {
	EntryID   string    `json:"entryID"`
	ListID    string    `json:"listID"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListAuditEntriesResponse wraps a list's audit trail, newest first.
type ListAuditEntriesResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
}

// ToListAuditEntriesResponse converts a slice of domain.AuditEntry to DTO.
func ToListAuditEntriesResponse(entries []domain.AuditEntry) ListAuditEntriesResponse {
	out := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = AuditEntryResponse{
			EntryID:   e.EntryID,
			ListID:    e.ListID,
			Username:  e.Username,
			Action:    e.Action,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		}
	}
	return ListAuditEntriesResponse{Entries: out}
}
