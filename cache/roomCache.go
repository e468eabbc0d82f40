package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"stayvista_service/domain"
)

const ttl = 5 * time.Minute

// RoomCache keeps room listings in redis, one entry per category filter.
// Mutations to the rooms collection flush the whole cache, listings are
// cheap to rebuild and stale availability is worse than a cold read.
type RoomCache struct {
	cli    *redis.Client
	logger *logrus.Logger
	tracer trace.Tracer
}

func NewRoomCache(client *redis.Client, logger *logrus.Logger, tracer trace.Tracer) domain.RoomCache {
	return &RoomCache{
		cli:    client,
		logger: logger,
		tracer: tracer,
	}
}

func (rc *RoomCache) Ping() {
	val, _ := rc.cli.Ping().Result()
	rc.logger.Println(val)
}

func (rc *RoomCache) Get(ctx context.Context, category string) ([]*domain.Room, error) {
	ctx, span := rc.tracer.Start(ctx, "RoomCache.Get")
	defer span.End()

	jsonValue, err := rc.cli.Get(constructKey(category)).Result()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var rooms []*domain.Room
	err = json.Unmarshal([]byte(jsonValue), &rooms)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rc.logger.Println(err)
		return nil, err
	}

	rc.logger.Println("Cache hit - room listing")
	return rooms, nil
}

func (rc *RoomCache) Post(ctx context.Context, category string, rooms []*domain.Room) error {
	ctx, span := rc.tracer.Start(ctx, "RoomCache.Post")
	defer span.End()

	jsonValue, err := json.Marshal(rooms)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = rc.cli.Set(constructKey(category), jsonValue, ttl).Err()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rc.logger.Println(err)
	}
	return err
}

func (rc *RoomCache) Invalidate(ctx context.Context) error {
	ctx, span := rc.tracer.Start(ctx, "RoomCache.Invalidate")
	defer span.End()

	keys, err := rc.cli.Keys("rooms:*").Result()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return rc.cli.Del(keys...).Err()
}

func constructKey(category string) string {
	if category == "" {
		return "rooms:all"
	}
	return fmt.Sprintf("rooms:%s", category)
}
