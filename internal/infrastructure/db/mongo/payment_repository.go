package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/motorshield/insurance-portal/internal/core/domain"
)

const paymentCollection = "payments"

type MongoPaymentRepository struct {
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *MongoPaymentRepository {
	return &MongoPaymentRepository{coll: db.Collection(paymentCollection)}
}

type mongoPayment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        string             `bson:"user_id"`
	PolicyID      string             `bson:"policy_id"`
	Amount        float64            `bson:"amount"`
	PaymentDate   int64              `bson:"payment_date"`
	PaymentMethod string             `bson:"payment_method"`
	PlanType      string             `bson:"plan_type"`
	Status        string             `bson:"status"`
	CreatedAt     int64              `bson:"created_at"`
}

func (r *MongoPaymentRepository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	doc := mongoPayment{
		UserID:        payment.UserID,
		PolicyID:      payment.PolicyID,
		Amount:        payment.Amount,
		PaymentDate:   payment.PaymentDate.Unix(),
		PaymentMethod: payment.PaymentMethod,
		PlanType:      payment.PlanType,
		Status:        string(payment.Status),
		CreatedAt:     payment.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	out := *payment
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *MongoPaymentRepository) List(ctx context.Context, userID string) ([]*domain.Payment, error) {
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}
	opts := options.Find().SetSort(bson.D{{Key: "payment_date", Value: -1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer cur.Close(ctx)

	var payments []*domain.Payment
	for cur.Next(ctx) {
		var mp mongoPayment
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode payment: %w", err)
		}
		payments = append(payments, mp.toDomain())
	}
	return payments, cur.Err()
}

func (mp mongoPayment) toDomain() *domain.Payment {
	return &domain.Payment{
		ID:            mp.ID.Hex(),
		UserID:        mp.UserID,
		PolicyID:      mp.PolicyID,
		Amount:        mp.Amount,
		PaymentDate:   unixToTime(mp.PaymentDate),
		PaymentMethod: mp.PaymentMethod,
		PlanType:      mp.PlanType,
		Status:        domain.PaymentStatus(mp.Status),
		CreatedAt:     unixToTime(mp.CreatedAt),
	}
}
