package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PartyKind classifies the counter-party relationship.
type PartyKind string

const (
	PartyCustomer PartyKind = "CUSTOMER"
	PartySupplier PartyKind = "SUPPLIER"
	// PartyBoth covers parties the business both buys from and sells to.
	PartyBoth PartyKind = "BOTH"
)

// IsValid checks if the party kind is valid
func (k PartyKind) IsValid() bool {
	switch k {
	case PartyCustomer, PartySupplier, PartyBoth:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind
func (k PartyKind) String() string {
	return string(k)
}

// Party is a customer or supplier: a single counter-party ledger account.
// A party has no stored balance; its balance is always derived by summing
// its ledger entries, so it can never drift from the append log.
type Party struct {
	PartyID   string    `bson:"partyId" json:"partyId"`
	Name      string    `bson:"name" json:"name"`
	Kind      PartyKind `bson:"kind" json:"kind"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   string    `bson:"address,omitempty" json:"address,omitempty"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewParty creates a new party.
func NewParty(name string, kind PartyKind, phone, address string) (*Party, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("name", "is required")
	}
	if !kind.IsValid() {
		return nil, NewValidationError("kind", fmt.Sprintf("unknown party kind %q", kind))
	}

	now := time.Now().UTC()
	return &Party{
		PartyID:   newPartyID(),
		Name:      name,
		Kind:      kind,
		Phone:     phone,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// PartyUpdate carries the mutations allowed on a party, one named field per
// mutable attribute. Nil fields are left untouched.
type PartyUpdate struct {
	Name    *string
	Kind    *PartyKind
	Phone   *string
	Address *string
	Notes   *string
}

// Apply mutates the party with the populated update fields.
func (p *Party) Apply(update PartyUpdate) error {
	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return NewValidationError("name", "is required")
		}
		p.Name = *update.Name
	}
	if update.Kind != nil {
		if !update.Kind.IsValid() {
			return NewValidationError("kind", fmt.Sprintf("unknown party kind %q", *update.Kind))
		}
		p.Kind = *update.Kind
	}
	if update.Phone != nil {
		p.Phone = *update.Phone
	}
	if update.Address != nil {
		p.Address = *update.Address
	}
	if update.Notes != nil {
		p.Notes = *update.Notes
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func newPartyID() string {
	return fmt.Sprintf("PTY-%s", uuid.New().String()[:8])
}
