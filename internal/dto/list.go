package dto

import (
	"time"

	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// --- List DTOs ---

// CreateListRequest defines data for creating a new shared expense list.
type CreateListRequest struct {
	Name string `json:"name" binding:"required"`
	// IncludeCreatorAsMember defaults to true when omitted.
	IncludeCreatorAsMember    *bool    `json:"includeCreatorAsMember"`
	NonRegisteredParticipants []string `json:"nonRegisteredParticipants"`
	InviteUsernames           []string `json:"inviteUsernames"`
}

// IncludeCreator resolves the optional flag with its default.
func (r CreateListRequest) IncludeCreator() bool {
	return r.IncludeCreatorAsMember == nil || *r.IncludeCreatorAsMember
}

// RenameListRequest defines data for renaming a list.
type RenameListRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListResponse defines data returned for a list, with registered and
// non-registered participants kept apart.
type ListResponse struct {
	ListID                    string           `json:"listID"`
	Name                      string           `json:"name"`
	CreatedBy                 string           `json:"createdBy"`
	CreatedAt                 time.Time        `json:"createdAt"`
	RegisteredParticipants    []MemberResponse `json:"registeredParticipants"`
	NonRegisteredParticipants []string         `json:"nonRegisteredParticipants"`
}

// MemberResponse defines data returned about one registered membership.
type MemberResponse struct {
	Username string                `json:"username"`
	Role     domain.MembershipRole `json:"role"`
	JoinedAt time.Time             `json:"joinedAt"`
}

// ToListResponse converts a list and its memberships to DTO.
func ToListResponse(l *domain.List, memberships []domain.Membership) ListResponse {
	members := make([]MemberResponse, len(memberships))
	for i, m := range memberships {
		members[i] = MemberResponse{Username: m.Username, Role: m.Role, JoinedAt: m.JoinedAt}
	}
	nonRegistered := l.NonRegisteredParticipants
	if nonRegistered == nil {
		nonRegistered = []string{}
	}
	return ListResponse{
		ListID:                    l.ListID,
		Name:                      l.Name,
		CreatedBy:                 l.CreatedBy,
		CreatedAt:                 l.CreatedAt,
		RegisteredParticipants:    members,
		NonRegisteredParticipants: nonRegistered,
	}
}

// ListListsResponse wraps the lists accessible to a user.
type ListListsResponse struct {
	Lists []ListResponse `json:"lists"`
}

// ToListListsResponse converts a slice of lists (without membership detail).
func ToListListsResponse(lists []domain.List) ListListsResponse {
	out := make([]ListResponse, len(lists))
	for i := range lists {
		out[i] = ToListResponse(&lists[i], nil)
	}
	return ListListsResponse{Lists: out}
}
