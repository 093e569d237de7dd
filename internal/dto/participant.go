package dto

import (
	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// --- Participant DTOs ---

// ParticipantPayload is the wire form of a tagged identity. The kind is part
// of the identity; untagged names are rejected by binding validation instead
// of being silently dropped.
type ParticipantPayload struct {
	Kind string `json:"kind" binding:"required,oneof=registered nonRegistered"`
	Name string `json:"name" binding:"required"`
}

// ToDomainParticipant converts the payload to the domain sum type.
func (p ParticipantPayload) ToDomainParticipant() domain.Participant {
	return domain.Participant{Kind: domain.ParticipantKind(p.Kind), Name: p.Name}
}

// ToParticipantPayload converts a domain participant to its wire form.
func ToParticipantPayload(p domain.Participant) ParticipantPayload {
	return ParticipantPayload{Kind: string(p.Kind), Name: p.Name}
}

// ToDomainParticipants converts a payload slice, preserving order.
func ToDomainParticipants(payloads []ParticipantPayload) []domain.Participant {
	out := make([]domain.Participant, len(payloads))
	for i, p := range payloads {
		out[i] = p.ToDomainParticipant()
	}
	return out
}

// ToParticipantPayloads converts a domain slice, preserving order.
func ToParticipantPayloads(participants []domain.Participant) []ParticipantPayload {
	out := make([]ParticipantPayload, len(participants))
	for i, p := range participants {
		out[i] = ToParticipantPayload(p)
	}
	return out
}
