package handler

import (
	"time"

	"github.com/motorshield/insurance-portal/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type meResponse struct {
	User *domain.User `json:"user"`
	Role string       `json:"role"`
}

// --- Catalog ---

type upsertItemRequest struct {
	Name            string   `json:"name"             validate:"required"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"            validate:"gte=0"`
	DiscountedPrice *float64 `json:"discounted_price"`
	Type            string   `json:"type"             validate:"required"`
	Image           string   `json:"image"`
}

// --- Cart ---

type addCartItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

type updateQuantityRequest struct {
	// Zero or negative removes the entry.
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	Cart       *domain.Cart `json:"cart"`
	TotalItems int          `json:"total_items"`
	TotalPrice float64      `json:"total_price"`
}

// --- Checkout / orders ---

type checkoutRequest struct {
	DeliveryAddress string `json:"delivery_address" validate:"required"`
	PhoneNumber     string `json:"phone_number"     validate:"required"`
	ProofOfPayment  string `json:"proof_of_payment"`
}

type checkoutResponse struct {
	OrderNumber string    `json:"order_number"`
	OrderID     string    `json:"order_id"`
	Total       float64   `json:"total"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected completed"`
}

// --- Policies ---

type vehicleRequest struct {
	Make          string  `json:"make"           validate:"required"`
	Model         string  `json:"model"          validate:"required"`
	Year          int     `json:"year"           validate:"required,gt=1900"`
	RegNumber     string  `json:"reg_number"     validate:"required"`
	Category      string  `json:"category"`
	EngineNumber  string  `json:"engine_number"`
	ChassisNumber string  `json:"chassis_number"`
	EnergyType    string  `json:"energy_type"`
	SeatingCap    int     `json:"seating_capacity"`
	Tonnage       float64 `json:"tonnage"`
}

type ownerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type requestPolicyRequest struct {
	PolicyTypeID string         `json:"policy_type_id"`
	Vehicle      vehicleRequest `json:"vehicle" validate:"required"`
	Owner        ownerRequest   `json:"owner"`
	Premium      float64        `json:"premium" validate:"gte=0"`
	StartDate    time.Time      `json:"start_date"`
	ExpiryDate   time.Time      `json:"expiry_date"`
}

type assignPolicyRequest struct {
	UserID       string         `json:"user_id" validate:"required"`
	PolicyTypeID string         `json:"policy_type_id"`
	Vehicle      vehicleRequest `json:"vehicle" validate:"required"`
	Owner        ownerRequest   `json:"owner"`
	Premium      float64        `json:"premium" validate:"gte=0"`
	StartDate    time.Time      `json:"start_date"`
	ExpiryDate   time.Time      `json:"expiry_date"`
}

type updatePolicyStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active expired cancelled"`
}

// --- Policy types ---

type upsertPolicyTypeRequest struct {
	Name        string  `json:"name"         validate:"required"`
	Description string  `json:"description"`
	BasePremium float64 `json:"base_premium" validate:"gte=0"`
	Active      bool    `json:"active"`
}

// --- Claims ---

type fileClaimRequest struct {
	PolicyID        string    `json:"policy_id"        validate:"required"`
	AccidentDate    time.Time `json:"accident_date"    validate:"required"`
	Description     string    `json:"description"      validate:"required"`
	EstimatedAmount float64   `json:"estimated_amount" validate:"gte=0"`
	Uploads         []string  `json:"uploads"`
}

type reviewClaimRequest struct {
	Status         string   `json:"status" validate:"required,oneof=approved rejected"`
	ApprovedAmount *float64 `json:"approved_amount"`
	AdminNotes     string   `json:"admin_notes"`
}

// --- Payments ---

type recordPaymentRequest struct {
	UserID        string    `json:"user_id"        validate:"required"`
	PolicyID      string    `json:"policy_id"      validate:"required"`
	Amount        float64   `json:"amount"         validate:"required,gt=0"`
	PaymentDate   time.Time `json:"payment_date"`
	PaymentMethod string    `json:"payment_method" validate:"required"`
	PlanType      string    `json:"plan_type"`
	Status        string    `json:"status"         validate:"omitempty,oneof=completed pending failed"`
}

// --- Admin users ---

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type userWithRoleResponse struct {
	User      *domain.User `json:"user"`
	Role      string       `json:"role"`
	RoleFound bool         `json:"role_record_exists"`
}
