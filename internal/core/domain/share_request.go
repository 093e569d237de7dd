package domain

import "time"

// ShareRequestStatus is the lifecycle of an invitation. Accepted and rejected
// are terminal.
type ShareRequestStatus string

const (
	SharePending  ShareRequestStatus = "pending"
	ShareAccepted ShareRequestStatus = "accepted"
	ShareRejected ShareRequestStatus = "rejected"
)

// ShareRequest is an invitation for a registered user to join a list. At most
// one pending request may exist per (list, to_user) pair.
type ShareRequest struct {
	RequestID string             `json:"requestID"`
	ListID    string             `json:"listID"`
	ListName  string             `json:"listName"`
	FromUser  string             `json:"fromUser"`
	ToUser    string             `json:"toUser"`
	Status    ShareRequestStatus `json:"status"`
	Message   string             `json:"message"`
	CreatedAt time.Time          `json:"createdAt"`
}
