package application_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stayvista_service/domain"
	application "stayvista_service/service"
)

func beachRooms() []*domain.Room {
	return []*domain.Room{
		{Title: "Sea view", Category: "Beach", Host: domain.Party{Email: "h@x"}},
		{Title: "Pool house", Category: "Pool", Host: domain.Party{Email: "h@x"}},
		{Title: "Cabin", Category: "Countryside", Host: domain.Party{Email: "other@x"}},
	}
}

func TestRoomService_CategoryFilter(t *testing.T) {
	ctx := context.Background()
	logger := logrus.New()

	t.Run("empty and null sentinels return everything", func(t *testing.T) {
		for _, category := range []string{"", "null"} {
			store := &fakeRoomStore{rooms: beachRooms()}
			service := application.NewRoomService(store, nil, logger)

			rooms, err := service.GetAll(ctx, category)
			require.NoError(t, err)
			assert.Len(t, rooms, 3, "category %q", category)
			assert.Empty(t, store.lastCategory)
		}
	})

	t.Run("a concrete category returns exact matches only", func(t *testing.T) {
		store := &fakeRoomStore{rooms: beachRooms()}
		service := application.NewRoomService(store, nil, logger)

		rooms, err := service.GetAll(ctx, "Beach")
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, "Sea view", rooms[0].Title)
	})
}

func TestRoomService_ListingCache(t *testing.T) {
	ctx := context.Background()
	logger := logrus.New()

	t.Run("second read is served from the cache", func(t *testing.T) {
		store := &fakeRoomStore{rooms: beachRooms()}
		cache := newFakeRoomCache()
		service := application.NewRoomService(store, cache, logger)

		_, err := service.GetAll(ctx, "Beach")
		require.NoError(t, err)

		store.rooms = nil
		rooms, err := service.GetAll(ctx, "Beach")
		require.NoError(t, err)
		assert.Len(t, rooms, 1, "stale store content proves the cache answered")
	})

	t.Run("mutations invalidate cached listings", func(t *testing.T) {
		store := &fakeRoomStore{rooms: beachRooms()}
		cache := newFakeRoomCache()
		service := application.NewRoomService(store, cache, logger)

		_, err := service.GetAll(ctx, "")
		require.NoError(t, err)

		saved, err := service.Create(ctx, &domain.Room{Title: "New", Category: "Beach", Host: domain.Party{Email: "h@x"}})
		require.NoError(t, err)
		assert.Equal(t, 1, cache.invalidated)

		rooms, err := service.GetAll(ctx, "")
		require.NoError(t, err)
		assert.Len(t, rooms, 4)

		require.NoError(t, service.SetStatus(ctx, saved.ID, true))
		assert.Equal(t, 2, cache.invalidated)

		require.NoError(t, service.Delete(ctx, saved.ID))
		assert.Equal(t, 3, cache.invalidated)
	})
}

func TestRoomService_HostScoping(t *testing.T) {
	ctx := context.Background()

	store := &fakeRoomStore{rooms: beachRooms()}
	service := application.NewRoomService(store, nil, logrus.New())

	rooms, err := service.GetByHost(ctx, "h@x")
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	rooms, err = service.GetByHost(ctx, "nobody@x")
	require.NoError(t, err)
	assert.Empty(t, rooms)
}
