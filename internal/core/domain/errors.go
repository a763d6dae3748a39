package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")

	ErrItemNotFound       = errors.New("item not found")
	ErrInvalidItem        = errors.New("invalid item")
	ErrCartNotFound       = errors.New("cart not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrderNotFound      = errors.New("order not found")
	ErrPolicyNotFound     = errors.New("policy not found")
	ErrPolicyTypeNotFound = errors.New("policy type not found")
	ErrClaimNotFound      = errors.New("claim not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
)
