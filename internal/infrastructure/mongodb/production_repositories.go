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

// FormulaRepository persists feed formulas in "feed_formulas".
type FormulaRepository struct {
	collection *mongo.Collection
}

func NewFormulaRepository(db *mongo.Database) *FormulaRepository {
	repo := &FormulaRepository{collection: db.Collection("feed_formulas")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *FormulaRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "formulaId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *FormulaRepository) Save(tx domain.Tx, formula *domain.FeedFormula) error {
	formula.UpdatedAt = time.Now().UTC()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"formulaId": formula.FormulaID}
	if _, err := r.collection.UpdateOne(tx.Context(), filter, bson.M{"$set": formula}, opts); err != nil {
		return fmt.Errorf("failed to save formula: %w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *FormulaRepository) FindByID(ctx context.Context, formulaID string) (*domain.FeedFormula, error) {
	var formula domain.FeedFormula
	err := r.collection.FindOne(ctx, bson.M{"formulaId": formulaID}).Decode(&formula)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find formula: %w: %v", domain.ErrPersistence, err)
	}
	return &formula, nil
}

func (r *FormulaRepository) FindAll(ctx context.Context) ([]*domain.FeedFormula, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list formulas: %w: %v", domain.ErrPersistence, err)
	}
	defer cursor.Close(ctx)

	var formulas []*domain.FeedFormula
	if err := cursor.All(ctx, &formulas); err != nil {
		return nil, fmt.Errorf("failed to decode formulas: %w: %v", domain.ErrPersistence, err)
	}
	return formulas, nil
}

// FeedBatchRepository persists immutable production batches in "feed_batches".
// Batches are insert-only.
type FeedBatchRepository struct {
	collection *mongo.Collection
}

func NewFeedBatchRepository(db *mongo.Database) *FeedBatchRepository {
	repo := &FeedBatchRepository{collection: db.Collection("feed_batches")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *FeedBatchRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "batchId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "formulaId", Value: 1}, {Key: "producedAt", Value: -1}},
		},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *FeedBatchRepository) Save(tx domain.Tx, batch *domain.FeedBatch) error {
	if _, err := r.collection.InsertOne(tx.Context(), batch); err != nil {
		return fmt.Errorf("failed to save batch: %w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *FeedBatchRepository) FindByID(ctx context.Context, batchID string) (*domain.FeedBatch, error) {
	var batch domain.FeedBatch
	err := r.collection.FindOne(ctx, bson.M{"batchId": batchID}).Decode(&batch)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find batch: %w: %v", domain.ErrPersistence, err)
	}
	return &batch, nil
}

func (r *FeedBatchRepository) FindByFormula(ctx context.Context, formulaID string, limit int) ([]*domain.FeedBatch, error) {
	opts := options.Find().SetSort(bson.D{{Key: "producedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.collection.Find(ctx, bson.M{"formulaId": formulaID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w: %v", domain.ErrPersistence, err)
	}
	defer cursor.Close(ctx)

	var batches []*domain.FeedBatch
	if err := cursor.All(ctx, &batches); err != nil {
		return nil, fmt.Errorf("failed to decode batches: %w: %v", domain.ErrPersistence, err)
	}
	return batches, nil
}
