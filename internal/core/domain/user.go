package domain

import "time"

// User is a registered account. Username is the natural key used across
// memberships, share requests and deletion approvals.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
