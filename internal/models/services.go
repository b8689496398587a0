package models

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

//go:generate mockgen -destination=mocks/mock_auth.go . AuthService
type AuthService interface {
	Register(ctx context.Context, user UnknownUser) error

	Login(ctx context.Context, user UnknownUser) error

	GetUser(ctx context.Context, login string) (*User, error)
}

//go:generate mockgen -destination=mocks/mock_jwt.go . JWTService
type JWTService interface {
	GenerateJWT(subject string) (string, error)

	ValidateToken(token string) (*jwt.Token, error)
}

//go:generate mockgen -destination=mocks/mock_sync.go . OrderSyncService
type OrderSyncService interface {
	VerifyOrder(order Order) error

	SaveOrder(ctx context.Context, order Order, actingUserID string) (*SaveResult, error)

	SyncPendingOrders(ctx context.Context) error

	Status() SyncStatus
}
