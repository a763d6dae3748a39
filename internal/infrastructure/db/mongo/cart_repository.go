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

const cartCollection = "carts"

// MongoCartRepository stores one cart document per user, replaced wholesale
// on every mutation.
type MongoCartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{coll: db.Collection(cartCollection)}
}

type mongoCart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Items     []mongoCartItem    `bson:"items"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

type mongoCartItem struct {
	ItemID          string   `bson:"item_id"`
	Name            string   `bson:"name"`
	Price           float64  `bson:"price"`
	DiscountedPrice *float64 `bson:"discounted_price,omitempty"`
	Type            string   `bson:"type"`
	Image           string   `bson:"image,omitempty"`
	Quantity        int      `bson:"quantity"`
	AddedAt         int64    `bson:"added_at"`
}

func (r *MongoCartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	var mc mongoCart
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCartNotFound
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *MongoCartRepository) Upsert(ctx context.Context, cart *domain.Cart) error {
	items := make([]mongoCartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, mongoCartItem{
			ItemID:          it.ItemID,
			Name:            it.Name,
			Price:           it.Price,
			DiscountedPrice: it.DiscountedPrice,
			Type:            it.Type,
			Image:           it.Image,
			Quantity:        it.Quantity,
			AddedAt:         it.AddedAt.Unix(),
		})
	}

	update := bson.M{
		"$set":         bson.M{"items": items, "updated_at": time.Now().Unix()},
		"$setOnInsert": bson.M{"user_id": cart.UserID, "created_at": time.Now().Unix()},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"user_id": cart.UserID}, update, opts); err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}
	return nil
}

func (r *MongoCartRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

func (mc mongoCart) toDomain() *domain.Cart {
	items := make([]domain.CartItem, 0, len(mc.Items))
	for _, it := range mc.Items {
		items = append(items, domain.CartItem{
			ItemID:          it.ItemID,
			Name:            it.Name,
			Price:           it.Price,
			DiscountedPrice: it.DiscountedPrice,
			Type:            it.Type,
			Image:           it.Image,
			Quantity:        it.Quantity,
			AddedAt:         unixToTime(it.AddedAt),
		})
	}
	return &domain.Cart{
		ID:        mc.ID.Hex(),
		UserID:    mc.UserID,
		Items:     items,
		CreatedAt: unixToTime(mc.CreatedAt),
		UpdatedAt: unixToTime(mc.UpdatedAt),
	}
}
