package domain

import "time"

// DeletionStatus is the lifecycle of a consensus-gated list deletion attempt.
// Approved and rejected are terminal; a fresh attempt needs a new request.
type DeletionStatus string

const (
	DeletionPending  DeletionStatus = "pending"
	DeletionApproved DeletionStatus = "approved"
	DeletionRejected DeletionStatus = "rejected"
)

// DeletionRequest gates destruction of a multi-member list behind unanimous
// approval of every registered member other than the requester.
type DeletionRequest struct {
	RequestID   string         `json:"requestID"`
	ListID      string         `json:"listID"`
	RequestedBy string         `json:"requestedBy"`
	Status      DeletionStatus `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// DeletionApproval is one member's vote on a deletion request. Approved is
// tri-state: nil until the member votes, then true or false. A single false
// vote rejects the request and no further votes are processed.
type DeletionApproval struct {
	ApprovalID string     `json:"approvalID"`
	RequestID  string     `json:"requestID"`
	Username   string     `json:"username"`
	Approved   *bool      `json:"approved"`
	VotedAt    *time.Time `json:"votedAt"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// HasVoted reports whether the member has cast a vote.
func (a DeletionApproval) HasVoted() bool {
	return a.Approved != nil
}
