package application

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"stayvista_service/domain"
)

type RoomService struct {
	store  domain.RoomStore
	cache  domain.RoomCache
	logger *logrus.Logger
}

func NewRoomService(store domain.RoomStore, cache domain.RoomCache, logger *logrus.Logger) *RoomService {
	return &RoomService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// normalizeCategory maps the "no filter" sentinels to the empty string.
// The frontend sends the literal string "null" when no category is picked.
func normalizeCategory(category string) string {
	if category == "null" {
		return ""
	}
	return category
}

func (service *RoomService) GetAll(ctx context.Context, category string) ([]*domain.Room, error) {
	category = normalizeCategory(category)

	if service.cache != nil {
		if rooms, err := service.cache.Get(ctx, category); err == nil {
			return rooms, nil
		}
	}

	rooms, err := service.store.GetAll(ctx, category)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		if err := service.cache.Post(ctx, category, rooms); err != nil {
			service.logger.Warnf("failed to cache room listing: %s", err)
		}
	}

	return rooms, nil
}

func (service *RoomService) GetByHost(ctx context.Context, email string) ([]*domain.Room, error) {
	return service.store.GetByHost(ctx, email)
}

func (service *RoomService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Room, error) {
	return service.store.Get(ctx, id)
}

func (service *RoomService) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	saved, err := service.store.Insert(ctx, room)
	if err != nil {
		return nil, err
	}
	service.invalidateListings(ctx)
	return saved, nil
}

func (service *RoomService) Update(ctx context.Context, id primitive.ObjectID, room *domain.Room) error {
	if err := service.store.Update(ctx, id, room); err != nil {
		return err
	}
	service.invalidateListings(ctx)
	return nil
}

// SetStatus flips the booked flag of a room. It is not linked to booking
// creation or cancellation; callers drive both sides of the lifecycle.
func (service *RoomService) SetStatus(ctx context.Context, id primitive.ObjectID, booked bool) error {
	if err := service.store.UpdateStatus(ctx, id, booked); err != nil {
		return err
	}
	service.invalidateListings(ctx)
	return nil
}

func (service *RoomService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := service.store.Delete(ctx, id); err != nil {
		return err
	}
	service.invalidateListings(ctx)
	return nil
}

func (service *RoomService) invalidateListings(ctx context.Context) {
	if service.cache == nil {
		return
	}
	if err := service.cache.Invalidate(ctx); err != nil {
		service.logger.Warnf("failed to invalidate room listing cache: %s", err)
	}
}
