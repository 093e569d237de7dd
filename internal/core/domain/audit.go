package domain

import "time"

// AuditEntry is one append-only record of a state-changing action on a list.
// Entries are never updated or deleted except by cascade with their list.
type AuditEntry struct {
	EntryID   string    `json:"entryID"`
	ListID    string    `json:"listID"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}
