package dto

import (
	"time"

	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// --- Share request DTOs ---

// ShareListRequest defines data for inviting a user to a list.
type ShareListRequest struct {
	ToUser  string `json:"toUser" binding:"required"`
	Message string `json:"message"`
}

// RespondShareRequestRequest defines the accept/reject decision.
type RespondShareRequestRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// ShareRequestResponse defines data returned for an invitation.
type ShareRequestResponse struct {
	RequestID string                    `json:"requestID"`
	ListID    string                    `json:"listID"`
	ListName  string                    `json:"listName,omitempty"`
	FromUser  string                    `json:"fromUser"`
	ToUser    string                    `json:"toUser"`
	Status    domain.ShareRequestStatus `json:"status"`
	Message   string                    `json:"message,omitempty"`
	CreatedAt time.Time                 `json:"createdAt"`
}

// ToShareRequestResponse converts domain.ShareRequest to DTO.
func ToShareRequestResponse(r *domain.ShareRequest) ShareRequestResponse {
	return ShareRequestResponse{
		RequestID: r.RequestID,
		ListID:    r.ListID,
		ListName:  r.ListName,
		FromUser:  r.FromUser,
		ToUser:    r.ToUser,
		Status:    r.Status,
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
	}
}

// ListShareRequestsResponse wraps a set of invitations.
type ListShareRequestsResponse struct {
	Requests []ShareRequestResponse `json:"requests"`
}

// ToListShareRequestsResponse converts a slice of domain.ShareRequest to DTO.
func ToListShareRequestsResponse(requests []domain.ShareRequest) ListShareRequestsResponse {
	out := make([]ShareRequestResponse, len(requests))
	for i := range requests {
		out[i] = ToShareRequestResponse(&requests[i])
	}
	return ListShareRequestsResponse{Requests: out}
}
