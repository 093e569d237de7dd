package domain

import "time"

// OutboxStatus is the delivery state of an outbound notification event.
type OutboxStatus string

const (
	OutboxPending   OutboxStatus = "pending"
	OutboxPublished OutboxStatus = "published"
	OutboxFailed    OutboxStatus = "failed"
	OutboxDead      OutboxStatus = "dead"
)

// OutboxEvent is one balance-update notification waiting for delivery. Events
// are written in the same transaction as the mutation that produced them and
// drained by the notify dispatcher, so delivery failures never fail the
// mutation.
type OutboxEvent struct {
	EventID     string       `json:"eventID"`
	Topic       string       `json:"topic"` // "<username>:<listID>"
	Payload     []byte       `json:"payload"`
	Status      OutboxStatus `json:"status"`
	Attempts    int          `json:"attempts"`
	CreatedAt   time.Time    `json:"createdAt"`
	PublishedAt *time.Time   `json:"publishedAt,omitempty"`
}
