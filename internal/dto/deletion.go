package dto

import (
	"time"

	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// --- Deletion consensus DTOs ---

// DeletionVoteRequest defines one member's approve/reject decision.
type DeletionVoteRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// DeletionApprovalResponse defines the vote state of one member.
type DeletionApprovalResponse struct {
	Username string     `json:"username"`
	Approved *bool      `json:"approved"`
	VotedAt  *time.Time `json:"votedAt,omitempty"`
}

// DeletionRequestResponse defines data returned for a deletion attempt.
type DeletionRequestResponse struct {
	RequestID   string                     `json:"requestID"`
	ListID      string                     `json:"listID"`
	RequestedBy string                     `json:"requestedBy"`
	Status      domain.DeletionStatus      `json:"status"`
	CreatedAt   time.Time                  `json:"createdAt"`
	Approvals   []DeletionApprovalResponse `json:"approvals"`
}

// ToDeletionRequestResponse converts a deletion request and its votes to DTO.
func ToDeletionRequestResponse(r *domain.DeletionRequest, approvals []domain.DeletionApproval) DeletionRequestResponse {
	votes := make([]DeletionApprovalResponse, len(approvals))
	for i, a := range approvals {
		votes[i] = DeletionApprovalResponse{Username: a.Username, Approved: a.Approved, VotedAt: a.VotedAt}
	}
	return DeletionRequestResponse{
		RequestID:   r.RequestID,
		ListID:      r.ListID,
		RequestedBy: r.RequestedBy,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		Approvals:   votes,
	}
}
