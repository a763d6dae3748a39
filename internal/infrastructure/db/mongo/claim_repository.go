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

const claimCollection = "claims"

type MongoClaimRepository struct {
	coll *mongo.Collection
}

func NewClaimRepository(db *mongo.Database) *MongoClaimRepository {
	return &MongoClaimRepository{coll: db.Collection(claimCollection)}
}

type mongoClaim struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ClaimNumber     string             `bson:"claim_number"`
	PolicyID        string             `bson:"policy_id"`
	UserID          string             `bson:"user_id"`
	AccidentDate    int64              `bson:"accident_date"`
	Description     string             `bson:"description"`
	EstimatedAmount float64            `bson:"estimated_amount,omitempty"`
	ApprovedAmount  *float64           `bson:"approved_amount,omitempty"`
	AdminNotes      string             `bson:"admin_notes,omitempty"`
	Uploads         []string           `bson:"uploads,omitempty"`
	Status          string             `bson:"status"`
	CreatedAt       int64              `bson:"created_at"`
	UpdatedAt       int64              `bson:"updated_at"`
}

func (r *MongoClaimRepository) Create(ctx context.Context, claim *domain.Claim) (*domain.Claim, error) {
	doc := toMongoClaim(claim)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert claim: %w", err)
	}

	out := *claim
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *MongoClaimRepository) FindByID(ctx context.Context, id string) (*domain.Claim, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClaimNotFound
	}

	var mc mongoClaim
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClaimNotFound
		}
		return nil, fmt.Errorf("find claim: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *MongoClaimRepository) List(ctx context.Context, userID string) ([]*domain.Claim, error) {
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer cur.Close(ctx)

	var claims []*domain.Claim
	for cur.Next(ctx) {
		var mc mongoClaim
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode claim: %w", err)
		}
		claims = append(claims, mc.toDomain())
	}
	return claims, cur.Err()
}

func (r *MongoClaimRepository) Update(ctx context.Context, claim *domain.Claim) error {
	oid, err := primitive.ObjectIDFromHex(claim.ID)
	if err != nil {
		return domain.ErrClaimNotFound
	}

	doc := toMongoClaim(claim)
	doc.UpdatedAt = time.Now().Unix()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update claim: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClaimNotFound
	}
	return nil
}

func toMongoClaim(c *domain.Claim) mongoClaim {
	return mongoClaim{
		ClaimNumber:     c.ClaimNumber,
		PolicyID:        c.PolicyID,
		UserID:          c.UserID,
		AccidentDate:    c.AccidentDate.Unix(),
		Description:     c.Description,
		EstimatedAmount: c.EstimatedAmount,
		ApprovedAmount:  c.ApprovedAmount,
		AdminNotes:      c.AdminNotes,
		Uploads:         c.Uploads,
		Status:          string(c.Status),
		CreatedAt:       c.CreatedAt.Unix(),
		UpdatedAt:       c.UpdatedAt.Unix(),
	}
}

func (mc mongoClaim) toDomain() *domain.Claim {
	return &domain.Claim{
		ID:              mc.ID.Hex(),
		ClaimNumber:     mc.ClaimNumber,
		PolicyID:        mc.PolicyID,
		UserID:          mc.UserID,
		AccidentDate:    unixToTime(mc.AccidentDate),
		Description:     mc.Description,
		EstimatedAmount: mc.EstimatedAmount,
		ApprovedAmount:  mc.ApprovedAmount,
		AdminNotes:      mc.AdminNotes,
		Uploads:         mc.Uploads,
		Status:          domain.ClaimStatus(mc.Status),
		CreatedAt:       unixToTime(mc.CreatedAt),
		UpdatedAt:       unixToTime(mc.UpdatedAt),
	}
}
