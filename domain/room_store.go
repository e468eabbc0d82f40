package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RoomStore interface {
	// GetAll returns every room, or only the rooms of one category when
	// category is non-empty.
	GetAll(ctx context.Context, category string) ([]*Room, error)
	GetByHost(ctx context.Context, email string) ([]*Room, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Room, error)
	Insert(ctx context.Context, room *Room) (*Room, error)
	Update(ctx context.Context, id primitive.ObjectID, room *Room) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, booked bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// RoomCache caches room listings per category. A Get miss is reported as
// an error, matching the redis client behavior.
type RoomCache interface {
	Get(ctx context.Context, category string) ([]*Room, error)
	Post(ctx context.Context, category string, rooms []*Room) error
	Invalidate(ctx context.Context) error
}
