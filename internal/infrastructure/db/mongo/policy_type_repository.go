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

const policyTypeCollection = "policy_types"

type MongoPolicyTypeRepository struct {
	coll *mongo.Collection
}

func NewPolicyTypeRepository(db *mongo.Database) *MongoPolicyTypeRepository {
	return &MongoPolicyTypeRepository{coll: db.Collection(policyTypeCollection)}
}

type mongoPolicyType struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	BasePremium float64            `bson:"base_premium"`
	Active      bool               `bson:"active"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *MongoPolicyTypeRepository) Create(ctx context.Context, pt *domain.PolicyType) (*domain.PolicyType, error) {
	doc := mongoPolicyType{
		Name:        pt.Name,
		Description: pt.Description,
		BasePremium: pt.BasePremium,
		Active:      pt.Active,
		CreatedAt:   pt.CreatedAt.Unix(),
		UpdatedAt:   pt.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert policy type: %w", err)
	}

	out := *pt
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *MongoPolicyTypeRepository) FindByID(ctx context.Context, id string) (*domain.PolicyType, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPolicyTypeNotFound
	}

	var mpt mongoPolicyType
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mpt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPolicyTypeNotFound
		}
		return nil, fmt.Errorf("find policy type: %w", err)
	}
	return mpt.toDomain(), nil
}

func (r *MongoPolicyTypeRepository) List(ctx context.Context, activeOnly bool) ([]*domain.PolicyType, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list policy types: %w", err)
	}
	defer cur.Close(ctx)

	var types []*domain.PolicyType
	for cur.Next(ctx) {
		var mpt mongoPolicyType
		if err := cur.Decode(&mpt); err != nil {
			return nil, fmt.Errorf("decode policy type: %w", err)
		}
		types = append(types, mpt.toDomain())
	}
	return types, cur.Err()
}

func (r *MongoPolicyTypeRepository) Update(ctx context.Context, pt *domain.PolicyType) (*domain.PolicyType, error) {
	oid, err := primitive.ObjectIDFromHex(pt.ID)
	if err != nil {
		return nil, domain.ErrPolicyTypeNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":         pt.Name,
		"description":  pt.Description,
		"base_premium": pt.BasePremium,
		"active":       pt.Active,
		"updated_at":   time.Now().Unix(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("update policy type: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPolicyTypeNotFound
	}
	return r.FindByID(ctx, pt.ID)
}

func (r *MongoPolicyTypeRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPolicyTypeNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete policy type: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPolicyTypeNotFound
	}
	return nil
}

func (mpt mongoPolicyType) toDomain() *domain.PolicyType {
	return &domain.PolicyType{
		ID:          mpt.ID.Hex(),
		Name:        mpt.Name,
		Description: mpt.Description,
		BasePremium: mpt.BasePremium,
		Active:      mpt.Active,
		CreatedAt:   unixToTime(mpt.CreatedAt),
		UpdatedAt:   unixToTime(mpt.UpdatedAt),
	}
}
