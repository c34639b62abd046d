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

// RawMaterialRepository persists raw materials in "raw_materials".
type RawMaterialRepository struct {
	collection *mongo.Collection
}

func NewRawMaterialRepository(db *mongo.Database) *RawMaterialRepository {
	repo := &RawMaterialRepository{collection: db.Collection("raw_materials")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *RawMaterialRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "materialId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *RawMaterialRepository) Save(tx domain.Tx, material *domain.RawMaterial) error {
	material.UpdatedAt = time.Now().UTC()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"materialId": material.MaterialID}
	if _, err := r.collection.UpdateOne(tx.Context(), filter, bson.M{"$set": material}, opts); err != nil {
		return fmt.Errorf("failed to save material: %w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *RawMaterialRepository) FindByID(ctx context.Context, materialID string) (*domain.RawMaterial, error) {
	var material domain.RawMaterial
	err := r.collection.FindOne(ctx, bson.M{"materialId": materialID}).Decode(&material)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find material: %w: %v", domain.ErrPersistence, err)
	}
	return &material, nil
}

func (r *RawMaterialRepository) FindAll(ctx context.Context) ([]*domain.RawMaterial, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w: %v", domain.ErrPersistence, err)
	}
	defer cursor.Close(ctx)

	var materials []*domain.RawMaterial
	if err := cursor.All(ctx, &materials); err != nil {
		return nil, fmt.Errorf("failed to decode materials: %w: %v", domain.ErrPersistence, err)
	}
	return materials, nil
}

// FinishedFeedRepository persists finished feeds in "finished_feeds".
type FinishedFeedRepository struct {
	collection *mongo.Collection
}

func NewFinishedFeedRepository(db *mongo.Database) *FinishedFeedRepository {
	repo := &FinishedFeedRepository{collection: db.Collection("finished_feeds")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *FinishedFeedRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "feedId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *FinishedFeedRepository) Save(tx domain.Tx, feed *domain.FinishedFeed) error {
	feed.UpdatedAt = time.Now().UTC()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"feedId": feed.FeedID}
	if _, err := r.collection.UpdateOne(tx.Context(), filter, bson.M{"$set": feed}, opts); err != nil {
		return fmt.Errorf("failed to save feed: %w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *FinishedFeedRepository) FindByID(ctx context.Context, feedID string) (*domain.FinishedFeed, error) {
	var feed domain.FinishedFeed
	err := r.collection.FindOne(ctx, bson.M{"feedId": feedID}).Decode(&feed)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find feed: %w: %v", domain.ErrPersistence, err)
	}
	return &feed, nil
}

func (r *FinishedFeedRepository) FindAll(ctx context.Context) ([]*domain.FinishedFeed, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list feeds: %w: %v", domain.ErrPersistence, err)
	}
	defer cursor.Close(ctx)

	var feeds []*domain.FinishedFeed
	if err := cursor.All(ctx, &feeds); err != nil {
		return nil, fmt.Errorf("failed to decode feeds: %w: %v", domain.ErrPersistence, err)
	}
	return feeds, nil
}

// EggStockRepository persists the single egg stock document in "egg_stock".
type EggStockRepository struct {
	collection *mongo.Collection
}

func NewEggStockRepository(db *mongo.Database) *EggStockRepository {
	return &EggStockRepository{collection: db.Collection("egg_stock")}
}

func (r *EggStockRepository) Save(tx domain.Tx, stock *domain.EggStock) error {
	stock.UpdatedAt = time.Now().UTC()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"stockId": stock.StockID}
	if _, err := r.collection.UpdateOne(tx.Context(), filter, bson.M{"$set": stock}, opts); err != nil {
		return fmt.Errorf("failed to save egg stock: %w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *EggStockRepository) Find(ctx context.Context) (*domain.EggStock, error) {
	var stock domain.EggStock
	err := r.collection.FindOne(ctx, bson.M{"stockId": domain.EggStockID}).Decode(&stock)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find egg stock: %w: %v", domain.ErrPersistence, err)
	}
	return &stock, nil
}

// PackagingStockRepository persists the single packaging document in
// "packaging_stock".
type PackagingStockRepository struct {
	collection *mongo.Collection
}

func NewPackagingStockRepository(db *mongo.Database) *PackagingStockRepository {
	return &PackagingStockRepository{collection: db.Collection("packaging_stock")}
}

func (r *PackagingStockRepository) Save(tx domain.Tx, stock *domain.PackagingStock) error {
	stock.UpdatedAt = time.Now().UTC()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"stockId": stock.StockID}
	if _, err := r.collection.UpdateOne(tx.Context(), filter, bson.M{"$set": stock}, opts); err != nil {
		return fmt.Errorf("failed to save packaging stock: %w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *PackagingStockRepository) Find(ctx context.Context) (*domain.PackagingStock, error) {
	var stock domain.PackagingStock
	err := r.collection.FindOne(ctx, bson.M{"stockId": domain.PackagingStockID}).Decode(&stock)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find packaging stock: %w: %v", domain.ErrPersistence, err)
	}
	return &stock, nil
}
