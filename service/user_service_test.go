package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stayvista_service/domain"
	application "stayvista_service/service"
)

func TestUserService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("first sign-in inserts the full record with a timestamp", func(t *testing.T) {
		store := newFakeUserStore()
		service := application.NewUserService(store)

		saved, err := service.Save(ctx, &domain.User{
			Email: "a@x.com",
			Name:  "Alice",
			Role:  domain.RoleGuest,
		})
		require.NoError(t, err)

		assert.Equal(t, 1, store.inserts)
		assert.Equal(t, domain.RoleGuest, saved.Role)
		assert.NotZero(t, saved.Timestamp)
	})

	t.Run("repeat sign-in returns the existing record untouched", func(t *testing.T) {
		store := newFakeUserStore(&domain.User{
			Email:     "a@x.com",
			Role:      domain.RoleHost,
			Timestamp: 42,
		})
		service := application.NewUserService(store)

		saved, err := service.Save(ctx, &domain.User{
			Email: "a@x.com",
			Role:  domain.RoleGuest,
		})
		require.NoError(t, err)

		assert.Equal(t, 0, store.inserts)
		assert.Empty(t, store.updates)
		assert.Equal(t, domain.RoleHost, saved.Role, "re-login payload must not clobber the stored role")
		assert.EqualValues(t, 42, saved.Timestamp)
	})

	t.Run("host request updates only the status field", func(t *testing.T) {
		store := newFakeUserStore(&domain.User{
			Email: "a@x.com",
			Role:  domain.RoleGuest,
		})
		service := application.NewUserService(store)

		saved, err := service.Save(ctx, &domain.User{
			Email:  "a@x.com",
			Role:   domain.RoleAdmin,
			Status: application.StatusRequested,
		})
		require.NoError(t, err)

		assert.Equal(t, application.StatusRequested, saved.Status)
		assert.Equal(t, domain.RoleGuest, saved.Role)

		require.Len(t, store.updates, 1)
		assert.Len(t, store.updates[0], 1, "only the status field may be written")
		assert.Contains(t, store.updates[0], "status")
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("admin promotes a requested guest to host", func(t *testing.T) {
		store := newFakeUserStore(&domain.User{
			Email:  "a@x.com",
			Role:   domain.RoleGuest,
			Status: application.StatusRequested,
		})
		service := application.NewUserService(store)

		updated, err := service.Update(ctx, "a@x.com", map[string]interface{}{
			"role":   "host",
			"status": "Verified",
		})
		require.NoError(t, err)

		assert.Equal(t, domain.RoleHost, updated.Role)
		assert.Equal(t, "Verified", updated.Status)
	})

	t.Run("unknown payload fields are dropped", func(t *testing.T) {
		store := newFakeUserStore(&domain.User{Email: "a@x.com", Role: domain.RoleGuest})
		service := application.NewUserService(store)

		_, err := service.Update(ctx, "a@x.com", map[string]interface{}{
			"role":  "admin",
			"email": "evil@x.com",
		})
		require.NoError(t, err)

		require.Len(t, store.updates, 1)
		assert.NotContains(t, store.updates[0], "email")
	})
}
