package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"stayvista_service/domain"
)

// Notifier delivers a single best-effort message.
type Notifier interface {
	Send(to, subject, body string) error
}

type BookingService struct {
	store    domain.BookingStore
	notifier Notifier
	logger   *logrus.Logger
}

func NewBookingService(store domain.BookingStore, notifier Notifier, logger *logrus.Logger) *BookingService {
	return &BookingService{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Create persists the booking as submitted (price and transaction id are
// the client's, verified against the payment provider on the frontend)
// and then notifies both parties asynchronously. Persistence and
// notification are not transactional: mail failures are logged and never
// affect the stored booking or the response. Concurrent bookings for the
// same room are not serialized here; callers check room status first.
func (service *BookingService) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	saved, err := service.store.Insert(ctx, booking)
	if err != nil {
		return nil, err
	}

	go service.notifyParties(saved)

	return saved, nil
}

func (service *BookingService) GetByGuest(ctx context.Context, email string) ([]*domain.Booking, error) {
	return service.store.GetByGuest(ctx, email)
}

func (service *BookingService) GetByHost(ctx context.Context, email string) ([]*domain.Booking, error) {
	return service.store.GetByHost(ctx, email)
}

// Cancel deletes the booking unconditionally. It does not revert the
// room's booked flag; the room status endpoint stays a separate call.
func (service *BookingService) Cancel(ctx context.Context, id primitive.ObjectID) error {
	return service.store.Delete(ctx, id)
}

func (service *BookingService) notifyParties(booking *domain.Booking) {
	err := service.notifier.Send(
		booking.Guest.Email,
		"Your room booking is successful!",
		fmt.Sprintf("You have successfully booked a room through StayVista. Transaction id: %s", booking.TransactionID),
	)
	if err != nil {
		service.logger.Errorf("guest booking notification failed: %s", err)
	}

	err = service.notifier.Send(
		booking.Host.Email,
		"Your room got booked!",
		fmt.Sprintf("Get ready to welcome %s", booking.Guest.Name),
	)
	if err != nil {
		service.logger.Errorf("host booking notification failed: %s", err)
	}
}
