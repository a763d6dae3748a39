package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/motorshield/insurance-portal/internal/core/domain"
)

const itemCollection = "items"

type MongoItemRepository struct {
	coll *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *MongoItemRepository {
	return &MongoItemRepository{coll: db.Collection(itemCollection)}
}

type mongoItem struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	Description     string             `bson:"description,omitempty"`
	Price           float64            `bson:"price"`
	DiscountedPrice *float64           `bson:"discounted_price,omitempty"`
	Type            string             `bson:"type"`
	Image           string             `bson:"image,omitempty"`
	CreatedAt       int64              `bson:"created_at"`
	UpdatedAt       int64              `bson:"updated_at"`
}

func (r *MongoItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	doc := mongoItem{
		Name:            item.Name,
		Description:     item.Description,
		Price:           item.Price,
		DiscountedPrice: item.DiscountedPrice,
		Type:            item.Type,
		Image:           item.Image,
		CreatedAt:       item.CreatedAt.Unix(),
		UpdatedAt:       item.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert item: unexpected inserted id type %T", res.InsertedID)
	}
	out := *item
	out.ID = oid.Hex()
	return &out, nil
}

func (r *MongoItemRepository) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}

	var mi mongoItem
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mi); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return mi.toDomain(), nil
}

func (r *MongoItemRepository) List(ctx context.Context) ([]*domain.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Item
	for cur.Next(ctx) {
		var mi mongoItem
		if err := cur.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		items = append(items, mi.toDomain())
	}
	return items, cur.Err()
}

func (r *MongoItemRepository) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(item.ID)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":             item.Name,
		"description":      item.Description,
		"price":            item.Price,
		"discounted_price": item.DiscountedPrice,
		"type":             item.Type,
		"image":            item.Image,
		"updated_at":       time.Now().Unix(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrItemNotFound
	}
	return r.FindByID(ctx, item.ID)
}

func (r *MongoItemRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrItemNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (mi mongoItem) toDomain() *domain.Item {
	return &domain.Item{
		ID:              mi.ID.Hex(),
		Name:            mi.Name,
		Description:     mi.Description,
		Price:           mi.Price,
		DiscountedPrice: mi.DiscountedPrice,
		Type:            mi.Type,
		Image:           mi.Image,
		CreatedAt:       unixToTime(mi.CreatedAt),
		UpdatedAt:       unixToTime(mi.UpdatedAt),
	}
}
