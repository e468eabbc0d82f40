package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	Insert(ctx context.Context, user *User) (*User, error)
	UpdateByEmail(ctx context.Context, email string, fields bson.M) error
	Count(ctx context.Context) (int64, error)
}
