package application_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stayvista_service/domain"
	application "stayvista_service/service"
)

func testBooking() *domain.Booking {
	return &domain.Booking{
		Guest:         domain.Party{Name: "Gina", Email: "g@x"},
		Host:          domain.Party{Name: "Hank", Email: "h@x"},
		RoomID:        "r1",
		Price:         100,
		Date:          "2024-03-10",
		TransactionID: "t1",
	}
}

func receiveNotifications(t *testing.T, notifier *fakeNotifier, count int) []string {
	t.Helper()

	var recipients []string
	for i := 0; i < count; i++ {
		select {
		case to := <-notifier.sent:
			recipients = append(recipients, to)
		case <-time.After(2 * time.Second):
			t.Fatalf("expected %d notifications, got %d", count, len(recipients))
		}
	}
	return recipients
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()
	logger := logrus.New()

	t.Run("persists the booking and notifies both parties", func(t *testing.T) {
		store := &fakeBookingStore{}
		notifier := newFakeNotifier(nil)
		service := application.NewBookingService(store, notifier, logger)

		saved, err := service.Create(ctx, testBooking())
		require.NoError(t, err)
		assert.False(t, saved.ID.IsZero())
		assert.Len(t, store.bookings, 1)

		recipients := receiveNotifications(t, notifier, 2)
		assert.ElementsMatch(t, []string{"g@x", "h@x"}, recipients)
	})

	t.Run("notification failure does not fail the booking", func(t *testing.T) {
		store := &fakeBookingStore{}
		notifier := newFakeNotifier(fmt.Errorf("smtp down"))
		service := application.NewBookingService(store, notifier, logger)

		_, err := service.Create(ctx, testBooking())
		require.NoError(t, err)
		assert.Len(t, store.bookings, 1)

		receiveNotifications(t, notifier, 2)
	})
}

func TestBookingService_Scoping(t *testing.T) {
	ctx := context.Background()
	logger := logrus.New()

	store := &fakeBookingStore{}
	service := application.NewBookingService(store, newFakeNotifier(nil), logger)

	booking, err := service.Create(ctx, testBooking())
	require.NoError(t, err)

	t.Run("booking is visible to its guest and its host", func(t *testing.T) {
		mine, err := service.GetByGuest(ctx, "g@x")
		require.NoError(t, err)
		require.Len(t, mine, 1)

		managed, err := service.GetByHost(ctx, "h@x")
		require.NoError(t, err)
		require.Len(t, managed, 1)
	})

	t.Run("other identities see nothing", func(t *testing.T) {
		other, err := service.GetByGuest(ctx, "h@x")
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("cancel removes it from both views", func(t *testing.T) {
		require.NoError(t, service.Cancel(ctx, booking.ID))

		mine, err := service.GetByGuest(ctx, "g@x")
		require.NoError(t, err)
		assert.Empty(t, mine)

		managed, err := service.GetByHost(ctx, "h@x")
		require.NoError(t, err)
		assert.Empty(t, managed)
	})
}
