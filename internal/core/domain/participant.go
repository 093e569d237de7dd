package domain

import (
	"fmt"
	"strings"

	"github.com/splitsum/splitsum_app/internal/apperrors"
)

// ParticipantKind distinguishes identities with an account from named
// cost-sharers without one.
type ParticipantKind string

const (
	// KindRegistered identifies a participant backed by a user account.
	KindRegistered ParticipantKind = "registered"
	// KindNonRegistered identifies a display-name-only participant. They are
	// included in splits but can never authenticate or vote.
	KindNonRegistered ParticipantKind = "nonRegistered"
)

// Participant is an identity taking part in expense splits. The kind is part
// of identity: a registered "anna" and a non-registered "anna" are distinct.
type Participant struct {
	Kind ParticipantKind `json:"kind"`
	Name string          `json:"name"`
}

// Registered builds a participant identity for a user account.
func Registered(username string) Participant {
	return Participant{Kind: KindRegistered, Name: username}
}

// NonRegistered builds a participant identity for a named cost-sharer
// without an account.
func NonRegistered(displayName string) Participant {
	return Participant{Kind: KindNonRegistered, Name: displayName}
}

// Key returns the canonical tagged form, e.g. "registered:anna". It is the
// wire/display representation; equality on Participant values themselves is
// plain struct equality.
func (p Participant) Key() string {
	return string(p.Kind) + ":" + p.Name
}

func (p Participant) String() string {
	return p.Key()
}

// IsRegistered reports whether the participant is backed by a user account.
func (p Participant) IsRegistered() bool {
	return p.Kind == KindRegistered
}

// Validate checks that the participant carries a known kind and a non-empty
// name. Untagged or malformed identities are rejected at the ingestion
// boundary rather than silently dropped from share computations.
func (p Participant) Validate() error {
	if p.Kind != KindRegistered && p.Kind != KindNonRegistered {
		return fmt.Errorf("%w: unknown participant kind %q", apperrors.ErrValidation, p.Kind)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: participant name must not be empty", apperrors.ErrValidation)
	}
	return nil
}

// ParseParticipant parses the tagged form produced by Key.
func ParseParticipant(tagged string) (Participant, error) {
	kind, name, found := strings.Cut(tagged, ":")
	if !found {
		return Participant{}, fmt.Errorf("%w: participant %q has no kind tag", apperrors.ErrValidation, tagged)
	}
	p := Participant{Kind: ParticipantKind(kind), Name: name}
	if err := p.Validate(); err != nil {
		return Participant{}, err
	}
	return p, nil
}

// ValidateParticipants validates every entry and rejects duplicates. Order is
// preserved by the caller; it matters for display, not computation.
func ValidateParticipants(participants []Participant) error {
	if len(participants) == 0 {
		return fmt.Errorf("%w: participant set must not be empty", apperrors.ErrValidation)
	}
	seen := make(map[Participant]struct{}, len(participants))
	for _, p := range participants {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("%w: duplicate participant %s", apperrors.ErrValidation, p.Key())
		}
		seen[p] = struct{}{}
	}
	return nil
}
