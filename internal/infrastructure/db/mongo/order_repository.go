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

const orderCollection = "orders"

type MongoOrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{coll: db.Collection(orderCollection)}
}

type mongoOrder struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	OrderNumber     string             `bson:"order_number"`
	CustomerID      string             `bson:"customer_id"`
	Lines           []mongoOrderLine   `bson:"lines"`
	Total           float64            `bson:"total"`
	DeliveryAddress string             `bson:"delivery_address,omitempty"`
	PhoneNumber     string             `bson:"phone_number,omitempty"`
	ProofOfPayment  string             `bson:"proof_of_payment,omitempty"`
	Status          string             `bson:"status"`
	IdempotencyKey  string             `bson:"idempotency_key,omitempty"`
	CreatedAt       int64              `bson:"created_at"`
	UpdatedAt       int64              `bson:"updated_at"`
}

type mongoOrderLine struct {
	ID          string  `bson:"id"`
	ItemID      string  `bson:"item_id"`
	ItemName    string  `bson:"item_name"`
	Quantity    int     `bson:"quantity"`
	RatePremium float64 `bson:"rate_premium"`
}

func (r *MongoOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	lines := make([]mongoOrderLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, mongoOrderLine(l))
	}

	doc := mongoOrder{
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		Lines:           lines,
		Total:           order.Total,
		DeliveryAddress: order.DeliveryAddress,
		PhoneNumber:     order.PhoneNumber,
		ProofOfPayment:  order.ProofOfPayment,
		Status:          string(order.Status),
		IdempotencyKey:  order.IdempotencyKey,
		CreatedAt:       order.CreatedAt.Unix(),
		UpdatedAt:       order.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid.Hex()
	}
	return nil
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	var mo mongoOrder
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return mo.toDomain(), nil
}

func (r *MongoOrderRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	var mo mongoOrder
	if err := r.coll.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&mo); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order by idempotency key: %w", err)
	}
	return mo.toDomain(), nil
}

func (r *MongoOrderRepository) List(ctx context.Context, customerID string) ([]*domain.Order, error) {
	filter := bson.M{}
	if customerID != "" {
		filter["customer_id"] = customerID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []*domain.Order
	for cur.Next(ctx) {
		var mo mongoOrder
		if err := cur.Decode(&mo); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, mo.toDomain())
	}
	return orders, cur.Err()
}

func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrOrderNotFound
	}

	update := bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().Unix()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (mo mongoOrder) toDomain() *domain.Order {
	lines := make([]domain.OrderLine, 0, len(mo.Lines))
	for _, l := range mo.Lines {
		lines = append(lines, domain.OrderLine(l))
	}
	return &domain.Order{
		ID:              mo.ID.Hex(),
		OrderNumber:     mo.OrderNumber,
		CustomerID:      mo.CustomerID,
		Lines:           lines,
		Total:           mo.Total,
		DeliveryAddress: mo.DeliveryAddress,
		PhoneNumber:     mo.PhoneNumber,
		ProofOfPayment:  mo.ProofOfPayment,
		Status:          domain.OrderStatus(mo.Status),
		IdempotencyKey:  mo.IdempotencyKey,
		CreatedAt:       unixToTime(mo.CreatedAt),
		UpdatedAt:       unixToTime(mo.UpdatedAt),
	}
}
