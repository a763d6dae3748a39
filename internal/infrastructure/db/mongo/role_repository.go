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

const roleCollection = "user_roles"

type MongoRoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *MongoRoleRepository {
	return &MongoRoleRepository{coll: db.Collection(roleCollection)}
}

type mongoRole struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Role      string             `bson:"role"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoRoleRepository) FindByUserID(ctx context.Context, userID string) (*domain.RoleRecord, error) {
	var mr mongoRole
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &domain.RoleRecord{
		ID:        mr.ID.Hex(),
		UserID:    mr.UserID,
		Role:      mr.Role,
		CreatedAt: unixToTime(mr.CreatedAt),
	}, nil
}

func (r *MongoRoleRepository) Upsert(ctx context.Context, userID, role string) error {
	update := bson.M{
		"$set":         bson.M{"role": role},
		"$setOnInsert": bson.M{"user_id": userID, "created_at": time.Now().Unix()},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"user_id": userID}, update, opts); err != nil {
		return fmt.Errorf("upsert role: %w", err)
	}
	return nil
}

func (r *MongoRoleRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	return nil
}
