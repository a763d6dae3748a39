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

const policyCollection = "policies"

type MongoPolicyRepository struct {
	coll *mongo.Collection
}

func NewPolicyRepository(db *mongo.Database) *MongoPolicyRepository {
	return &MongoPolicyRepository{coll: db.Collection(policyCollection)}
}

type mongoPolicy struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	PolicyNumber string             `bson:"policy_number"`
	UserID       string             `bson:"user_id"`
	OrderID      string             `bson:"order_id,omitempty"`
	PolicyTypeID string             `bson:"policy_type_id,omitempty"`
	PolicyType   string             `bson:"policy_type,omitempty"`
	Vehicle      mongoVehicle       `bson:"vehicle"`
	Owner        mongoOwner         `bson:"owner"`
	Premium      float64            `bson:"premium"`
	StartDate    int64              `bson:"start_date"`
	ExpiryDate   int64              `bson:"expiry_date"`
	Renewable    bool               `bson:"renewable"`
	Status       string             `bson:"status"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

type mongoVehicle struct {
	Make          string  `bson:"make"`
	Model         string  `bson:"model"`
	Year          int     `bson:"year"`
	RegNumber     string  `bson:"reg_number"`
	Category      string  `bson:"category,omitempty"`
	EngineNumber  string  `bson:"engine_number,omitempty"`
	ChassisNumber string  `bson:"chassis_number,omitempty"`
	EnergyType    string  `bson:"energy_type,omitempty"`
	SeatingCap    int     `bson:"seating_capacity,omitempty"`
	Tonnage       float64 `bson:"tonnage,omitempty"`
}

type mongoOwner struct {
	Name    string `bson:"name,omitempty"`
	Email   string `bson:"email,omitempty"`
	Phone   string `bson:"phone,omitempty"`
	Address string `bson:"address,omitempty"`
}

func (r *MongoPolicyRepository) Create(ctx context.Context, policy *domain.Policy) (*domain.Policy, error) {
	doc := toMongoPolicy(policy)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert policy: %w", err)
	}

	out := *policy
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *MongoPolicyRepository) FindByID(ctx context.Context, id string) (*domain.Policy, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPolicyNotFound
	}

	var mp mongoPolicy
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPolicyNotFound
		}
		return nil, fmt.Errorf("find policy: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *MongoPolicyRepository) List(ctx context.Context, userID string) ([]*domain.Policy, error) {
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer cur.Close(ctx)

	var policies []*domain.Policy
	for cur.Next(ctx) {
		var mp mongoPolicy
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode policy: %w", err)
		}
		policies = append(policies, mp.toDomain())
	}
	return policies, cur.Err()
}

func (r *MongoPolicyRepository) Update(ctx context.Context, policy *domain.Policy) error {
	oid, err := primitive.ObjectIDFromHex(policy.ID)
	if err != nil {
		return domain.ErrPolicyNotFound
	}

	doc := toMongoPolicy(policy)
	doc.UpdatedAt = time.Now().Unix()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update policy: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPolicyNotFound
	}
	return nil
}

func toMongoPolicy(p *domain.Policy) mongoPolicy {
	return mongoPolicy{
		PolicyNumber: p.PolicyNumber,
		UserID:       p.UserID,
		OrderID:      p.OrderID,
		PolicyTypeID: p.PolicyTypeID,
		PolicyType:   p.PolicyType,
		Vehicle:      mongoVehicle(p.Vehicle),
		Owner:        mongoOwner(p.Owner),
		Premium:      p.Premium,
		StartDate:    p.StartDate.Unix(),
		ExpiryDate:   p.ExpiryDate.Unix(),
		Renewable:    p.Renewable,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt.Unix(),
		UpdatedAt:    p.UpdatedAt.Unix(),
	}
}

func (mp mongoPolicy) toDomain() *domain.Policy {
	return &domain.Policy{
		ID:           mp.ID.Hex(),
		PolicyNumber: mp.PolicyNumber,
		UserID:       mp.UserID,
		OrderID:      mp.OrderID,
		PolicyTypeID: mp.PolicyTypeID,
		PolicyType:   mp.PolicyType,
		Vehicle:      domain.Vehicle(mp.Vehicle),
		Owner:        domain.Owner(mp.Owner),
		Premium:      mp.Premium,
		StartDate:    unixToTime(mp.StartDate),
		ExpiryDate:   unixToTime(mp.ExpiryDate),
		Renewable:    mp.Renewable,
		Status:       domain.PolicyStatus(mp.Status),
		CreatedAt:    unixToTime(mp.CreatedAt),
		UpdatedAt:    unixToTime(mp.UpdatedAt),
	}
}
