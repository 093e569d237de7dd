package domain

import "time"

// List is a shared expense list. Registered membership lives in Membership
// records; NonRegisteredParticipants holds the display names of cost-sharers
// without accounts.
type List struct {
	ListID                    string   `json:"listID"`
	Name                      string   `json:"name"`
	NonRegisteredParticipants []string `json:"nonRegisteredParticipants"`
	AuditFields
}

// MembershipRole defines the possible roles a user can have on a list.
type MembershipRole string

const (
	RoleOwner  MembershipRole = "OWNER"
	RoleMember MembershipRole = "MEMBER"
)

// Membership records that a registered user belongs to a list. A username
// appears at most once per list.
type Membership struct {
	ListID   string         `json:"listID"`
	Username string         `json:"username"`
	Role     MembershipRole `json:"role"`
	JoinedAt time.Time      `json:"joinedAt"`
}
