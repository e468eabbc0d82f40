package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStore interface {
	Insert(ctx context.Context, booking *Booking) (*Booking, error)
	GetAll(ctx context.Context) ([]*Booking, error)
	GetByGuest(ctx context.Context, email string) ([]*Booking, error)
	GetByHost(ctx context.Context, email string) ([]*Booking, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
