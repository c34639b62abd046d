package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agrifarm-platform/finance-service/internal/domain"
)

// PartyRepository persists parties in the "parties" collection.
type PartyRepository struct {
	collection *mongo.Collection
}

func NewPartyRepository(db *mongo.Database) *PartyRepository {
	repo := &PartyRepository{collection: db.Collection("parties")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *PartyRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "partyId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "kind", Value: 1}, {Key: "name", Value: 1}},
		},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *PartyRepository) Save(tx domain.Tx, party *domain.Party) error {
	party.UpdatedAt = time.Now().UTC()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"partyId": party.PartyID}
	if _, err := r.collection.UpdateOne(tx.Context(), filter, bson.M{"$set": party}, opts); err != nil {
		return fmt.Errorf("failed to save party: %w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *PartyRepository) Delete(tx domain.Tx, partyID string) error {
	if _, err := r.collection.DeleteOne(tx.Context(), bson.M{"partyId": partyID}); err != nil {
		return fmt.Errorf("failed to delete party: %w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *PartyRepository) FindByID(ctx context.Context, partyID string) (*domain.Party, error) {
	var party domain.Party
	err := r.collection.FindOne(ctx, bson.M{"partyId": partyID}).Decode(&party)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find party: %w: %v", domain.ErrPersistence, err)
	}
	return &party, nil
}

func (r *PartyRepository) FindAll(ctx context.Context) ([]*domain.Party, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w: %v", domain.ErrPersistence, err)
	}
	defer cursor.Close(ctx)

	var parties []*domain.Party
	if err := cursor.All(ctx, &parties); err != nil {
		return nil, fmt.Errorf("failed to decode parties: %w: %v", domain.ErrPersistence, err)
	}
	return parties, nil
}
