package application

import (
	"context"
	"errors"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"stayvista_service/domain"
)

// StatusRequested is set by a guest asking to become a host; an admin
// later resolves the request by changing the role.
const StatusRequested = "Requested"

type UserService struct {
	store domain.UserStore
}

func NewUserService(store domain.UserStore) *UserService {
	return &UserService{
		store: store,
	}
}

// Save is the upsert behind every sign-in and is deliberately asymmetric.
// A new email is inserted whole with a creation timestamp. An existing
// record is returned untouched, unless the payload is a host request, in
// which case only the status field is applied. Re-login payloads can
// therefore never clobber admin-managed fields like role.
func (service *UserService) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	existing, err := service.store.GetByEmail(ctx, user.Email)
	if err == nil {
		if user.Status == StatusRequested {
			err = service.store.UpdateByEmail(ctx, user.Email, bson.M{"status": user.Status})
			if err != nil {
				return nil, err
			}
			existing.Status = user.Status
		}
		return existing, nil
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	user.Timestamp = time.Now().UnixMilli()
	return service.store.Insert(ctx, user)
}

func (service *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return service.store.GetByEmail(ctx, email)
}

func (service *UserService) GetAll(ctx context.Context) ([]*domain.User, error) {
	return service.store.GetAll(ctx)
}

// UserUpdate is the allow-listed shape of an admin update; anything else
// in the payload is dropped.
type UserUpdate struct {
	Role   string `mapstructure:"role"`
	Status string `mapstructure:"status"`
}

// Update applies an admin role/status change to the record of the given
// email and returns the updated record.
func (service *UserService) Update(ctx context.Context, email string, payload map[string]interface{}) (*domain.User, error) {
	var update UserUpdate
	if err := mapstructure.Decode(payload, &update); err != nil {
		return nil, err
	}

	fields := bson.M{"timestamp": time.Now().UnixMilli()}
	if update.Role != "" {
		fields["role"] = update.Role
	}
	if update.Status != "" {
		fields["status"] = update.Status
	}

	if err := service.store.UpdateByEmail(ctx, email, fields); err != nil {
		return nil, err
	}

	return service.store.GetByEmail(ctx, email)
}
