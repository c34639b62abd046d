package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agrifarm-platform/finance-service/internal/domain"
)

// LedgerEntryRepository persists ledger entries in the "ledger_entries"
// collection. The collection is append-only: there is no update or delete
// path, matching the port.
type LedgerEntryRepository struct {
	collection *mongo.Collection
}

func NewLedgerEntryRepository(db *mongo.Database) *LedgerEntryRepository {
	repo := &LedgerEntryRepository{collection: db.Collection("ledger_entries")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *LedgerEntryRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "entryId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "partyId", Value: 1}, {Key: "date", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "transactionId", Value: 1}},
		},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *LedgerEntryRepository) Append(tx domain.Tx, entry domain.LedgerEntry) error {
	if _, err := r.collection.InsertOne(tx.Context(), entry); err != nil {
		return fmt.Errorf("failed to append ledger entry: %w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *LedgerEntryRepository) FindByParty(ctx context.Context, partyID string) ([]domain.LedgerEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"partyId": partyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find entries: %w: %v", domain.ErrPersistence, err)
	}
	defer cursor.Close(ctx)

	var entries []domain.LedgerEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w: %v", domain.ErrPersistence, err)
	}
	return entries, nil
}

func (r *LedgerEntryRepository) FindByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	var entry domain.LedgerEntry
	err := r.collection.FindOne(ctx, bson.M{"entryId": entryID}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find entry: %w: %v", domain.ErrPersistence, err)
	}
	return &entry, nil
}

func (r *LedgerEntryRepository) FindByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"transactionId": transactionID})
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction entries: %w: %v", domain.ErrPersistence, err)
	}
	defer cursor.Close(ctx)

	var entries []domain.LedgerEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w: %v", domain.ErrPersistence, err)
	}
	return entries, nil
}

func (r *LedgerEntryRepository) CountByParty(ctx context.Context, partyID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"partyId": partyID})
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w: %v", domain.ErrPersistence, err)
	}
	return count, nil
}
