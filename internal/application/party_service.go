package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/agrifarm-platform/finance-service/internal/domain"
)

// PartyService manages customer and supplier records. Balances are never
// stored on the party; they live in the ledger and are derived on read.
type PartyService struct {
	uow     domain.UnitOfWork
	parties domain.PartyRepository
	entries domain.LedgerEntryRepository
	ledger  *LedgerService
	logger  *zap.Logger
}

// NewPartyService creates a PartyService.
func NewPartyService(
	uow domain.UnitOfWork,
	parties domain.PartyRepository,
	entries domain.LedgerEntryRepository,
	ledger *LedgerService,
	logger *zap.Logger,
) *PartyService {
	return &PartyService{
		uow:     uow,
		parties: parties,
		entries: entries,
		ledger:  ledger,
		logger:  logger.Named("party"),
	}
}

// Create registers a new party.
func (s *PartyService) Create(ctx context.Context, cmd CreatePartyCommand) (*domain.Party, error) {
	party, err := domain.NewParty(cmd.Name, cmd.Kind, cmd.Phone, cmd.Address)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(tx domain.Tx) error {
		return s.parties.Save(tx, party)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("party created",
		zap.String("partyId", party.PartyID),
		zap.String("kind", party.Kind.String()))
	return party, nil
}

// Update applies an explicit field update to a party.
func (s *PartyService) Update(ctx context.Context, partyID string, update domain.PartyUpdate) (*domain.Party, error) {
	var updated *domain.Party
	err := s.uow.Execute(ctx, func(tx domain.Tx) error {
		party, err := s.parties.FindByID(tx.Context(), partyID)
		if err != nil {
			return err
		}
		if party == nil {
			return fmt.Errorf("party %s: %w", partyID, domain.ErrPartyNotFound)
		}
		if err := party.Apply(update); err != nil {
			return err
		}
		if err := s.parties.Save(tx, party); err != nil {
			return err
		}
		updated = party
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Get returns one party.
func (s *PartyService) Get(ctx context.Context, partyID string) (*domain.Party, error) {
	party, err := s.parties.FindByID(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, fmt.Errorf("party %s: %w", partyID, domain.ErrPartyNotFound)
	}
	return party, nil
}

// List returns all parties.
func (s *PartyService) List(ctx context.Context) ([]*domain.Party, error) {
	return s.parties.FindAll(ctx)
}

// Delete removes a party. A party with ledger history cannot be deleted unless
// force is set, in which case every entry is first reversed so the balance
// settles to zero; the entries themselves stay, because ledger history is
// append-only even here.
func (s *PartyService) Delete(ctx context.Context, partyID string, force bool, deletedBy string) error {
	count, err := s.entries.CountByParty(ctx, partyID)
	if err != nil {
		return err
	}
	if count > 0 && !force {
		return fmt.Errorf("party %s has %d ledger entries: %w", partyID, count, domain.ErrPartyHasHistory)
	}

	err = s.uow.Execute(ctx, func(tx domain.Tx) error {
		party, err := s.parties.FindByID(tx.Context(), partyID)
		if err != nil {
			return err
		}
		if party == nil {
			return fmt.Errorf("party %s: %w", partyID, domain.ErrPartyNotFound)
		}

		if force {
			existing, err := s.entries.FindByParty(tx.Context(), partyID)
			if err != nil {
				return err
			}
			// Reversing every entry, reversals included, cancels each pair and
			// leaves the balance at exactly zero.
			for _, entry := range existing {
				if _, err := s.ledger.Reverse(tx, entry.EntryID.String(), "party deletion settlement", deletedBy); err != nil {
					return err
				}
			}
		}

		return s.parties.Delete(tx, partyID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("party deleted",
		zap.String("partyId", partyID),
		zap.Bool("forced", force))
	return nil
}
